package brief

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

func testQueries(t *testing.T) *store.Queries {
	t.Helper()

	f, err := os.CreateTemp("", "craftvoice-brief-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	_ = f.Close()

	db, err := store.NewDB(dbPath)
	if err != nil {
		_ = os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}
	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		_ = os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	})

	return store.New(db)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createProfile(t *testing.T, q *store.Queries, name, location string) model.BusinessProfile {
	t.Helper()
	p, err := q.CreateProfile(context.Background(), store.CreateProfileParams{
		Name:     name,
		Location: location,
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return p
}

func TestMaterialize_CrossProduct(t *testing.T) {
	ctx := context.Background()
	q := testQueries(t)

	profiles := []model.BusinessProfile{
		createProfile(t, q, "Old Mill Winery", "Walla Walla, Washington"),
		createProfile(t, q, "Basalt Cellars", "Walla Walla, Washington"),
	}

	candidates := []model.EventCandidate{
		{Name: "Harvest Festival", Date: "2026-09-12", Location: "Walla Walla, WA", RelevanceScore: 8},
		{Name: "Cider Week", Date: "2026-10-01", Location: "Walla Walla, WA", RelevanceScore: 7},
	}

	outcome := NewMaterializer(q, testLogger()).Materialize(ctx, candidates, profiles)

	if outcome.Created != 4 {
		t.Errorf("Created = %d, want 4 (2 events x 2 profiles)", outcome.Created)
	}
	if outcome.Failed != 0 {
		t.Errorf("Failed = %d, want 0", outcome.Failed)
	}

	for _, profile := range profiles {
		briefs, err := q.ListBriefs(ctx, profile.ID)
		if err != nil {
			t.Fatalf("ListBriefs: %v", err)
		}
		if len(briefs) != 2 {
			t.Errorf("profile %d has %d briefs, want 2", profile.ID, len(briefs))
		}
	}
}

func TestMaterialize_Idempotent(t *testing.T) {
	ctx := context.Background()
	q := testQueries(t)

	profiles := []model.BusinessProfile{
		createProfile(t, q, "Old Mill Winery", "Walla Walla, Washington"),
	}
	candidates := []model.EventCandidate{
		{Name: "Harvest Festival", Date: "2026-09-12", Location: "Walla Walla, WA", RelevanceScore: 8},
	}

	m := NewMaterializer(q, testLogger())

	first := m.Materialize(ctx, candidates, profiles)
	if first.Created != 1 {
		t.Fatalf("first run Created = %d, want 1", first.Created)
	}

	second := m.Materialize(ctx, candidates, profiles)
	if second.Created != 0 {
		t.Errorf("second run Created = %d, want 0", second.Created)
	}
	if second.Deduplicated != 1 {
		t.Errorf("second run Deduplicated = %d, want 1", second.Deduplicated)
	}

	briefs, err := q.ListBriefs(ctx, profiles[0].ID)
	if err != nil {
		t.Fatalf("ListBriefs: %v", err)
	}
	if len(briefs) != 1 {
		t.Errorf("found %d briefs after double run, want 1", len(briefs))
	}
}

func TestMaterialize_LocationGate(t *testing.T) {
	ctx := context.Background()
	q := testQueries(t)

	local := createProfile(t, q, "Old Mill Winery", "Walla Walla, Washington")
	remote := createProfile(t, q, "Coastal Cellars", "Newport, Oregon")

	candidates := []model.EventCandidate{
		{Name: "Harvest Festival", Date: "2026-09-12", Location: "Walla Walla, WA", RelevanceScore: 8},
	}

	outcome := NewMaterializer(q, testLogger()).Materialize(ctx, candidates,
		[]model.BusinessProfile{local, remote})

	if outcome.Created != 1 {
		t.Errorf("Created = %d, want 1 (only the local profile)", outcome.Created)
	}
	if outcome.SkippedIrrelevant != 1 {
		t.Errorf("SkippedIrrelevant = %d, want 1", outcome.SkippedIrrelevant)
	}

	remoteBriefs, err := q.ListBriefs(ctx, remote.ID)
	if err != nil {
		t.Fatalf("ListBriefs: %v", err)
	}
	if len(remoteBriefs) != 0 {
		t.Errorf("out-of-region profile received %d briefs", len(remoteBriefs))
	}
}

func TestSeasonalContext(t *testing.T) {
	tests := []struct {
		date string
		want string
	}{
		{"2026-09-12", "Fall"},
		{"2026-01-15", "Winter"},
		{"2026-04-20", "Spring"},
		{"2026-07-04", "Summer"},
		{"next weekend", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.date, func(t *testing.T) {
			got := seasonalContext(tt.date)
			if tt.want == "" {
				if got != "" {
					t.Errorf("seasonalContext(%q) = %q, want empty", tt.date, got)
				}
				return
			}
			if len(got) == 0 || got[:len(tt.want)] != tt.want {
				t.Errorf("seasonalContext(%q) = %q, want prefix %q", tt.date, got, tt.want)
			}
		})
	}
}

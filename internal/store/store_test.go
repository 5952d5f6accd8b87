package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/craftvoice/craftvoice/internal/model"
)

// testDB creates a temporary test database with migrations applied.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	f, err := os.CreateTemp("", "craftvoice-test-*.db")
	if err != nil {
		t.Fatalf("creating temp file: %v", err)
	}
	dbPath := f.Name()
	f.Close()

	db, err := NewDB(dbPath)
	if err != nil {
		os.Remove(dbPath)
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		os.Remove(dbPath)
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestProfile(t *testing.T, q *Queries, name, location string) model.BusinessProfile {
	t.Helper()
	p, err := q.CreateProfile(context.Background(), CreateProfileParams{
		Name:               name,
		OwnerName:          "Test Owner",
		Location:           location,
		PersonalitySummary: "Warm and approachable",
		ToneWords:          "friendly, rustic",
		PostsPerWeek:       3,
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return p
}

func TestProfileCRUD(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	created := createTestProfile(t, q, "Silver Creek Cidery", "Hood River, Oregon")
	if created.ID == 0 {
		t.Fatal("CreateProfile returned zero ID")
	}

	got, err := q.GetProfile(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProfile: %v", err)
	}
	if got.Name != "Silver Creek Cidery" {
		t.Errorf("Name = %q, want %q", got.Name, "Silver Creek Cidery")
	}
	if got.PostsPerWeek != 3 {
		t.Errorf("PostsPerWeek = %d, want 3", got.PostsPerWeek)
	}

	got.ToneWords = "crisp, adventurous"
	updated, err := q.UpdateProfile(ctx, UpdateProfileParams{
		ID:                 got.ID,
		Name:               got.Name,
		OwnerName:          got.OwnerName,
		Location:           got.Location,
		PersonalitySummary: got.PersonalitySummary,
		ToneWords:          got.ToneWords,
		PostsPerWeek:       5,
		WordPressURL:       "https://silvercreek.example.com",
		WordPressUsername:  "press",
		WordPressPassword:  "app-password",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}
	if updated.ToneWords != "crisp, adventurous" {
		t.Errorf("ToneWords = %q after update", updated.ToneWords)
	}
	if updated.PostsPerWeek != 5 {
		t.Errorf("PostsPerWeek = %d, want 5", updated.PostsPerWeek)
	}
	if !updated.HasWordPressCredentials() {
		t.Error("HasWordPressCredentials() = false after storing all three fields")
	}

	all, err := q.ListProfiles(ctx)
	if err != nil {
		t.Fatalf("ListProfiles: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("ListProfiles returned %d profiles, want 1", len(all))
	}
}

func TestContentItemBodyRoundTrip(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	profile := createTestProfile(t, q, "Barrel & Vine", "Sonoma, California")

	// HTML with entities, nested tags and odd whitespace must survive
	// storage and retrieval byte-for-byte.
	body := "<h2>Harvest&nbsp;Notes</h2>\n<p>Our 2026 vintage &amp; what it means — <em>unfiltered</em>.</p>\n\t<ul><li>Tannins &lt; expected</li></ul>"

	created, err := q.CreateContentItem(ctx, CreateContentItemParams{
		ProfileID:        profile.ID,
		Title:            "Harvest Notes",
		Body:             body,
		ContentType:      model.ContentTypeBlogPost,
		Status:           model.ContentStatusDraft,
		GenerationMethod: model.GenerationMethodManual,
	})
	if err != nil {
		t.Fatalf("CreateContentItem: %v", err)
	}

	got, err := q.GetContentItem(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetContentItem: %v", err)
	}
	if got.Body != body {
		t.Errorf("body mutated on round-trip:\n got: %q\nwant: %q", got.Body, body)
	}
}

func TestContentItemFilters(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	profile := createTestProfile(t, q, "Hop Theory", "Bend, Oregon")

	for _, c := range []struct {
		title, ctype, status string
	}{
		{"IPA drop", model.ContentTypeSocialMedia, model.ContentStatusDraft},
		{"Taproom news", model.ContentTypeNewsletter, model.ContentStatusPublished},
		{"Fresh hop blog", model.ContentTypeBlogPost, model.ContentStatusDraft},
	} {
		_, err := q.CreateContentItem(ctx, CreateContentItemParams{
			ProfileID:        profile.ID,
			Title:            c.title,
			Body:             "body",
			ContentType:      c.ctype,
			Status:           c.status,
			GenerationMethod: model.GenerationMethodManual,
		})
		if err != nil {
			t.Fatalf("CreateContentItem(%s): %v", c.title, err)
		}
	}

	drafts, err := q.ListContentItems(ctx, ListContentItemsParams{Status: model.ContentStatusDraft})
	if err != nil {
		t.Fatalf("ListContentItems: %v", err)
	}
	if len(drafts) != 2 {
		t.Errorf("draft filter returned %d items, want 2", len(drafts))
	}

	social, err := q.ListContentItems(ctx, ListContentItemsParams{ContentType: model.ContentTypeSocialMedia})
	if err != nil {
		t.Fatalf("ListContentItems: %v", err)
	}
	if len(social) != 1 {
		t.Errorf("social filter returned %d items, want 1", len(social))
	}
}

func TestUpsertBriefIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	profile := createTestProfile(t, q, "Old Mill Winery", "Walla Walla, Washington")

	params := UpsertBriefParams{
		ProfileID:      profile.ID,
		SuggestedTheme: "Harvest Festival tie-in",
		KeyPoints:      []string{"Festival runs Sep 12-14", "Source: https://events.example.com/harvest"},
		EventName:      "Harvest Festival",
		EventDate:      "2026-09-12",
		EventLocation:  "Walla Walla, WA",
	}

	first, created, err := q.UpsertBrief(ctx, params)
	if err != nil {
		t.Fatalf("UpsertBrief (first): %v", err)
	}
	if !created {
		t.Fatal("first upsert reported created=false")
	}

	second, created, err := q.UpsertBrief(ctx, params)
	if err != nil {
		t.Fatalf("UpsertBrief (second): %v", err)
	}
	if created {
		t.Error("second upsert with identical input reported created=true")
	}
	if second.ID != first.ID {
		t.Errorf("second upsert returned different brief: id %d vs %d", second.ID, first.ID)
	}

	briefs, err := q.ListBriefs(ctx, profile.ID)
	if err != nil {
		t.Fatalf("ListBriefs: %v", err)
	}
	if len(briefs) != 1 {
		t.Fatalf("found %d briefs after double upsert, want 1", len(briefs))
	}
	if len(briefs[0].KeyPoints) != 2 {
		t.Errorf("key points = %v, want 2 entries", briefs[0].KeyPoints)
	}
}

func TestDeleteBriefCascades(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	profile := createTestProfile(t, q, "Cedar Bluff Brewing", "Boise, Idaho")

	brief, _, err := q.UpsertBrief(ctx, UpsertBriefParams{
		ProfileID: profile.ID,
		EventName: "Oktoberfest",
		EventDate: "2026-10-03",
	})
	if err != nil {
		t.Fatalf("UpsertBrief: %v", err)
	}

	for i := 0; i < 2; i++ {
		_, err := q.CreateContentItem(ctx, CreateContentItemParams{
			ProfileID:        profile.ID,
			BriefID:          sql.NullInt64{Int64: brief.ID, Valid: true},
			Title:            "Oktoberfest post",
			Body:             "<p>Prost!</p>",
			ContentType:      model.ContentTypeEventPromotion,
			Status:           model.ContentStatusDraft,
			GenerationMethod: model.GenerationMethodDemoTemplate,
		})
		if err != nil {
			t.Fatalf("CreateContentItem: %v", err)
		}
	}

	deleted, err := q.DeleteBrief(ctx, brief.ID)
	if err != nil {
		t.Fatalf("DeleteBrief: %v", err)
	}
	if deleted != 2 {
		t.Errorf("DeleteBrief reported %d dependent items deleted, want 2", deleted)
	}

	if _, err := q.GetBrief(ctx, brief.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetBrief after delete: err = %v, want sql.ErrNoRows", err)
	}

	remaining, err := q.ListContentItems(ctx, ListContentItemsParams{ProfileID: profile.ID})
	if err != nil {
		t.Fatalf("ListContentItems: %v", err)
	}
	if len(remaining) != 0 {
		t.Errorf("%d content items survived brief deletion, want 0", len(remaining))
	}
}

func TestRawEventLifecycle(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	rec, err := q.CreateRawEvent(ctx, CreateRawEventParams{
		SourceName: "visitwallawalla",
		SourceURL:  "https://visitwallawalla.example.com/events",
		RawText:    "Harvest Festival Sep 12 at the fairgrounds",
	})
	if err != nil {
		t.Fatalf("CreateRawEvent: %v", err)
	}
	if rec.Processed {
		t.Error("new raw event created with processed=true")
	}

	pending, err := q.ListUnprocessedRawEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnprocessedRawEvents: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("found %d unprocessed records, want 1", len(pending))
	}

	if err := q.MarkRawEventProcessed(ctx, rec.ID); err != nil {
		t.Fatalf("MarkRawEventProcessed: %v", err)
	}

	pending, err = q.ListUnprocessedRawEvents(ctx, 10)
	if err != nil {
		t.Fatalf("ListUnprocessedRawEvents: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("found %d unprocessed records after marking, want 0", len(pending))
	}

	if err := q.MarkRawEventProcessed(ctx, 9999); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("MarkRawEventProcessed(missing) err = %v, want sql.ErrNoRows", err)
	}
}

func TestMetricSummary(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	profile := createTestProfile(t, q, "North Fork Meadery", "Missoula, Montana")

	item, err := q.CreateContentItem(ctx, CreateContentItemParams{
		ProfileID:        profile.ID,
		Title:            "Mead 101",
		Body:             "<p>Honey wine basics</p>",
		ContentType:      model.ContentTypeEducationalContent,
		Status:           model.ContentStatusPublished,
		GenerationMethod: model.GenerationMethodOpenAI,
	})
	if err != nil {
		t.Fatalf("CreateContentItem: %v", err)
	}

	for _, m := range []RecordMetricParams{
		{ContentID: item.ID, Views: 120, Clicks: 14, Signups: 2},
		{ContentID: item.ID, Views: 80, Clicks: 6, Signups: 1},
	} {
		if _, err := q.RecordMetric(ctx, m); err != nil {
			t.Fatalf("RecordMetric: %v", err)
		}
	}

	summary, err := q.GetMetricSummary(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetMetricSummary: %v", err)
	}
	if summary.TotalViews != 200 || summary.TotalClicks != 20 || summary.TotalSignups != 3 {
		t.Errorf("summary = %+v, want 200/20/3", summary)
	}

	// No samples means a zero summary, not an error.
	empty, err := q.GetMetricSummary(ctx, 42424242)
	if err != nil {
		t.Fatalf("GetMetricSummary (no samples): %v", err)
	}
	if empty.TotalViews != 0 {
		t.Errorf("empty summary views = %d, want 0", empty.TotalViews)
	}
}

func TestActivityLog(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	_, err := q.CreateActivity(ctx, CreateActivityParams{
		Level:    model.ActivityLevelInfo,
		Category: model.ActivityCategoryPipeline,
		Message:  "pipeline run complete",
		Metadata: `{"events_final": 4}`,
	})
	if err != nil {
		t.Fatalf("CreateActivity: %v", err)
	}

	entries, err := q.ListRecentActivity(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecentActivity: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("found %d activity entries, want 1", len(entries))
	}
	if entries[0].Category != model.ActivityCategoryPipeline {
		t.Errorf("Category = %q, want %q", entries[0].Category, model.ActivityCategoryPipeline)
	}
}

package api

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

func seedBrief(t *testing.T, q *store.Queries, profileID int64, eventName string) model.ResearchBrief {
	t.Helper()
	b, created, err := q.UpsertBrief(context.Background(), store.UpsertBriefParams{
		ProfileID:      profileID,
		EventName:      eventName,
		EventDate:      "2026-09-26",
		EventLocation:  "Bend, OR",
		SuggestedTheme: "Local event tie-in: " + eventName,
		KeyPoints:      []string{"family friendly", "live music"},
	})
	if err != nil {
		t.Fatalf("UpsertBrief: %v", err)
	}
	if !created {
		t.Fatalf("brief %q already existed", eventName)
	}
	return b
}

func TestListAndGetBriefs(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.queries)
	seeded := seedBrief(t, env.queries, profile.ID, "Fall Festival")

	rec := env.do(t, http.MethodGet, "/api/v1/briefs?profile_id="+itoa(profile.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var briefs []model.ResearchBrief
	decodeData(t, rec, &briefs)
	if len(briefs) != 1 {
		t.Fatalf("briefs = %d", len(briefs))
	}

	rec = env.do(t, http.MethodGet, "/api/v1/briefs/"+itoa(seeded.ID), nil)
	mustStatus(t, rec, http.StatusOK)
	var got model.ResearchBrief
	decodeData(t, rec, &got)
	if got.EventName != "Fall Festival" {
		t.Errorf("event name = %q", got.EventName)
	}
	if len(got.KeyPoints) != 2 {
		t.Errorf("key points = %v", got.KeyPoints)
	}
}

func TestDeleteBrief_CascadesAndReportsCount(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.queries)
	seeded := seedBrief(t, env.queries, profile.ID, "Fall Festival")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := env.queries.CreateContentItem(ctx, store.CreateContentItemParams{
			ProfileID:        profile.ID,
			BriefID:          sql.NullInt64{Int64: seeded.ID, Valid: true},
			Title:            "dependent",
			ContentType:      model.ContentTypeEventPromotion,
			Status:           model.ContentStatusDraft,
			GenerationMethod: model.GenerationMethodDemoTemplate,
		}); err != nil {
			t.Fatalf("CreateContentItem: %v", err)
		}
	}

	rec := env.do(t, http.MethodDelete, "/api/v1/briefs/"+itoa(seeded.ID), nil)
	mustStatus(t, rec, http.StatusOK)

	var out struct {
		Deleted             bool  `json:"deleted"`
		ContentItemsDeleted int64 `json:"content_items_deleted"`
	}
	decodeData(t, rec, &out)
	if !out.Deleted || out.ContentItemsDeleted != 2 {
		t.Errorf("delete report = %+v, want deleted with 2 content items", out)
	}

	items, err := env.queries.ListContentItems(ctx, store.ListContentItemsParams{ProfileID: profile.ID})
	if err != nil {
		t.Fatalf("ListContentItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("dependent content survived: %d items", len(items))
	}
}

func TestDeleteBrief_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodDelete, "/api/v1/briefs/999", nil)
	mustStatus(t, rec, http.StatusNotFound)
}

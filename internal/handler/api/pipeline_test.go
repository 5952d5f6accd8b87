package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/craftvoice/craftvoice/internal/discovery"
	"github.com/craftvoice/craftvoice/internal/generator"
	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/pipeline"
	"github.com/craftvoice/craftvoice/internal/publisher"
)

func TestStatus(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/status", nil)
	mustStatus(t, rec, http.StatusOK)

	var status StatusResponse
	decodeData(t, rec, &status)
	if status.Status != "ok" || status.Version != "test" {
		t.Errorf("status = %+v", status)
	}
}

func TestScanLocalEvents_DemoRun(t *testing.T) {
	env := newTestEnv(t)
	createTestProfile(t, env.queries)

	env.adapter.report = &discovery.Report{
		Blobs: []discovery.Blob{{
			Source: "listing-a",
			Text:   "Wine Festival Saturday June 2026 tasting downtown celebration",
		}},
		Statuses:  []discovery.SourceStatus{{Source: "listing-a", OK: true, Chars: 60}},
		Succeeded: 1,
	}

	rec := env.do(t, http.MethodPost, "/api/v1/pipeline/scan-local-events", ScanRequest{ManualTrigger: true})
	mustStatus(t, rec, http.StatusOK)

	var summary pipeline.RunSummary
	decodeData(t, rec, &summary)
	if !summary.IsDemoData {
		t.Error("run without an LLM must be tagged demo")
	}
	if summary.ScrapedSources != 1 {
		t.Errorf("scraped_sources = %d", summary.ScrapedSources)
	}
	if summary.RunID == "" {
		t.Error("missing run_id")
	}
}

func TestScanLocalEvents_AllSourcesFailed(t *testing.T) {
	env := newTestEnv(t)

	env.adapter.report = &discovery.Report{
		Statuses: []discovery.SourceStatus{
			{Source: "listing-a", Error: "timeout"},
			{Source: "listing-b", Error: "dns"},
		},
		Failed: 2,
	}
	env.adapter.err = discovery.ErrAllSourcesFailed

	rec := env.do(t, http.MethodPost, "/api/v1/pipeline/scan-local-events", nil)
	mustStatus(t, rec, http.StatusBadGateway)

	detail := decodeError(t, rec)
	if detail.Code != "all_sources_failed" {
		t.Errorf("code = %q", detail.Code)
	}
	if detail.Details["scraped_sources"] != "0" {
		t.Errorf("scraped_sources detail = %q", detail.Details["scraped_sources"])
	}
}

func TestIngestRawEvents(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ingest/raw-events", IngestRequest{
		Events: []RawEventInput{
			{Title: "Cider Week", Link: "https://example.com/cider-week", Description: "Seven days of cider", PubDate: "2026-10-01"},
			{Title: "", Description: ""}, // nothing usable, skipped
		},
	})
	mustStatus(t, rec, http.StatusOK)

	var out IngestResponse
	decodeData(t, rec, &out)
	if !out.Success || out.EventsProcessed != 1 {
		t.Errorf("ingest = %+v, want 1 processed", out)
	}

	records, err := env.queries.ListUnprocessedRawEvents(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListUnprocessedRawEvents: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d", len(records))
	}
	if records[0].SourceURL != "https://example.com/cider-week" {
		t.Errorf("source url = %q", records[0].SourceURL)
	}
}

func TestIngestRawEvents_EmptyArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ingest/raw-events", IngestRequest{})
	mustStatus(t, rec, http.StatusOK)

	var out IngestResponse
	decodeData(t, rec, &out)
	if !out.Success || out.EventsProcessed != 0 {
		t.Errorf("empty ingest = %+v", out)
	}
}

func TestGenerateContent_DemoTagged(t *testing.T) {
	env := newTestEnv(t)
	profile := createTestProfile(t, env.queries)

	rec := env.do(t, http.MethodPost, "/api/v1/content/generate", GenerateContentRequest{
		ProfileID: profile.ID,
		ContentRequest: generator.ContentRequest{
			ContentType:  model.ContentTypeBlogPost,
			PrimaryTopic: "Harvest season",
		},
	})
	mustStatus(t, rec, http.StatusCreated)

	var out generator.Output
	decodeData(t, rec, &out)
	if out.GenerationMethod != model.GenerationMethodDemoTemplate {
		t.Errorf("method = %q, want demo_template without an LLM", out.GenerationMethod)
	}
	if out.Item.ID == 0 {
		t.Error("content item not persisted")
	}
}

func TestAnalyzeBrandVoice(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/brand-voice/analyze", AnalyzeVoiceRequest{
		DocumentText: "short",
	})
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	rec = env.do(t, http.MethodPost, "/api/v1/brand-voice/analyze", AnalyzeVoiceRequest{
		DocumentText: "We pour honest pints for honest people, and we have been doing it since the orchard was planted.",
	})
	mustStatus(t, rec, http.StatusOK)

	var out generator.VoiceAnalysis
	decodeData(t, rec, &out)
	if !out.IsDemoData {
		t.Error("analysis without an LLM must be tagged demo")
	}
	if out.Voice.ToneWords == "" {
		t.Error("empty voice analysis")
	}
}

func TestTestWordPress(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/wordpress/test", TestWordPressRequest{})
	mustStatus(t, rec, http.StatusUnprocessableEntity)

	env.pub.connResult = publisher.ConnectionResult{
		Success: false,
		Message: "WordPress rejected the credentials",
		Details: "upstream status 401",
	}
	rec = env.do(t, http.MethodPost, "/api/v1/wordpress/test", TestWordPressRequest{
		WordPressURL:      "https://example.com",
		WordPressUsername: "sam",
		WordPressPassword: "wrong",
	})
	// Credential rejection is a result, not a transport error.
	mustStatus(t, rec, http.StatusOK)

	var result publisher.ConnectionResult
	decodeData(t, rec, &result)
	if result.Success {
		t.Error("expected failed connection result")
	}
	if !contains(result.Details, "401") {
		t.Errorf("details = %q, want upstream status", result.Details)
	}
}

func TestScanLocalEvents_MalformedBody(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/pipeline/scan-local-events",
		strings.NewReader(`{"manual_trigger": tru`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	mustStatus(t, rec, http.StatusBadRequest)
	detail := decodeError(t, rec)
	if detail.Code != "bad_request" {
		t.Errorf("code = %q", detail.Code)
	}
	if detail.Details["body"] == "" {
		t.Error("missing body field message")
	}
}

package discovery

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const eventPageHTML = `<!DOCTYPE html>
<html><head><title>Events</title><script>var x = "noise";</script>
<style>.hidden{display:none}</style></head>
<body>
<nav>Home | About | Contact</nav>
<h1>Upcoming Events</h1>
<p>Join us for the Harvest Festival on Saturday, September 12, 2026 at the fairgrounds.</p>
<p>Weekly wine tasting every Friday evening in the tasting room downtown.</p>
<p>Our privacy policy was updated recently to comply with regulations worldwide.</p>
<footer>Copyright</footer>
</body></html>`

const eventFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Regional Events</title>
<item><title>Cider Week Kickoff</title><link>https://example.com/cider</link>
<description>&lt;p&gt;A week of tastings and tours across the valley.&lt;/p&gt;</description>
<pubDate>Mon, 07 Sep 2026 09:00:00 GMT</pubDate></item>
</channel></rss>`

func TestDirectAdapter_MixedOutcomes(t *testing.T) {
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(eventPageHTML))
	}))
	defer good.Close()

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer bad.Close()

	feed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(eventFeedXML))
	}))
	defer feed.Close()

	sources := []Source{
		{Name: "good-page", URL: good.URL, Kind: SourceKindHTML},
		{Name: "blocked-page", URL: bad.URL, Kind: SourceKindHTML},
		{Name: "regional-feed", URL: feed.URL, Kind: SourceKindRSS},
	}

	adapter := NewDirectAdapter(sources, testLogger())
	report, err := adapter.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	// Succeeded + failed must equal the configured source count.
	if report.Succeeded+report.Failed != len(sources) {
		t.Errorf("succeeded(%d) + failed(%d) != total sources (%d)",
			report.Succeeded, report.Failed, len(sources))
	}
	if report.Succeeded != 2 {
		t.Errorf("Succeeded = %d, want 2", report.Succeeded)
	}
	if report.Failed != 1 {
		t.Errorf("Failed = %d, want 1", report.Failed)
	}

	var combined strings.Builder
	for _, blob := range report.Blobs {
		combined.WriteString(blob.Text)
		combined.WriteString(" ")
	}
	text := combined.String()

	if !strings.Contains(text, "Harvest Festival") {
		t.Error("extracted text lost the Harvest Festival sentence")
	}
	if !strings.Contains(text, "Cider Week Kickoff") {
		t.Error("feed title missing from blobs")
	}
	if strings.Contains(text, "noise") {
		t.Error("script content leaked into extracted text")
	}
	if strings.Contains(text, "privacy policy") {
		t.Error("non-event sentence survived the keyword pre-filter")
	}
}

func TestDirectAdapter_AllSourcesFail(t *testing.T) {
	down := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer down.Close()

	sources := []Source{
		{Name: "down-a", URL: down.URL + "/a", Kind: SourceKindHTML},
		{Name: "down-b", URL: down.URL + "/b", Kind: SourceKindHTML},
	}

	adapter := NewDirectAdapter(sources, testLogger())
	report, err := adapter.Discover(context.Background())
	if err != ErrAllSourcesFailed {
		t.Fatalf("err = %v, want ErrAllSourcesFailed", err)
	}
	if report == nil {
		t.Fatal("report is nil alongside ErrAllSourcesFailed; callers need the per-source detail")
	}
	if report.Succeeded != 0 {
		t.Errorf("Succeeded = %d, want 0", report.Succeeded)
	}
	if report.Failed != 2 {
		t.Errorf("Failed = %d, want 2", report.Failed)
	}
}

func TestScrapeAPIAdapter_DelegatesFetch(t *testing.T) {
	var sawKey, sawTarget string
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawKey = r.URL.Query().Get("api_key")
		sawTarget = r.URL.Query().Get("url")
		_, _ = w.Write([]byte(eventPageHTML))
	}))
	defer service.Close()

	sources := []Source{
		{Name: "events-page", URL: "https://events.example.com/list", Kind: SourceKindHTML},
	}

	adapter := NewScrapeAPIAdapter(sources, service.URL, "secret-key", testLogger())
	report, err := adapter.Discover(context.Background())
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if sawKey != "secret-key" {
		t.Errorf("api_key sent = %q, want %q", sawKey, "secret-key")
	}
	if sawTarget != "https://events.example.com/list" {
		t.Errorf("url sent = %q, want the source URL", sawTarget)
	}
	if report.Succeeded != 1 || report.Failed != 0 {
		t.Errorf("report = %d/%d, want 1/0", report.Succeeded, report.Failed)
	}
}

func TestFilterEventText(t *testing.T) {
	in := "The Harvest Festival returns September 12 with live music and local wine. " +
		"We use cookies to improve your browsing experience on this site. " +
		"Tickets for the barrel tasting go on sale Friday morning at the door."

	out := FilterEventText(in)

	if !strings.Contains(out, "Harvest Festival") {
		t.Error("festival sentence dropped")
	}
	if !strings.Contains(out, "barrel tasting") {
		t.Error("tasting sentence dropped")
	}
	if strings.Contains(out, "cookies") {
		t.Error("cookie banner sentence kept")
	}
}

func TestFilterEventText_YearOnly(t *testing.T) {
	out := FilterEventText("Celebrating two decades of winemaking since 2006 right here in town.")
	if out == "" {
		t.Error("sentence with a 4-digit year was dropped")
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

const (
	// perSourceTimeout bounds each fetch; a slow source fails alone.
	perSourceTimeout = 15 * time.Second

	// browserUserAgent keeps event sites from serving us their bot wall.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	maxResponseBytes = 2 << 20 // 2MB per page is plenty of event listing
)

// DirectAdapter fetches each configured source itself: GET with a
// browser-like signature, tag stripping for HTML, gofeed for RSS.
type DirectAdapter struct {
	sources   []Source
	client    *http.Client
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewDirectAdapter creates the direct-fetch adapter over the given sources.
func NewDirectAdapter(sources []Source, logger *slog.Logger) *DirectAdapter {
	return &DirectAdapter{
		sources:   sources,
		client:    &http.Client{Timeout: perSourceTimeout},
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// Name implements Adapter.
func (a *DirectAdapter) Name() string { return "direct" }

// Discover fans out over the source list concurrently and fans the results
// into one report. Individual failures are recorded per source; only a pass
// where every source failed returns ErrAllSourcesFailed.
func (a *DirectAdapter) Discover(ctx context.Context) (*Report, error) {
	type outcome struct {
		status SourceStatus
		blob   Blob
		err    error
	}

	results := make([]outcome, len(a.sources))
	var wg sync.WaitGroup

	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()

			text, err := a.fetchSource(ctx, src)
			status := SourceStatus{Source: src.Name, URL: src.URL, Chars: len(text)}
			if err != nil {
				a.logger.Warn("source fetch failed", "category", "discovery",
					"source", src.Name, "error", err)
				results[i] = outcome{status: status, err: err}
				return
			}
			results[i] = outcome{
				status: status,
				blob:   Blob{Source: src.Name, URL: src.URL, Text: text},
			}
		}(i, src)
	}
	wg.Wait()

	report := &Report{}
	for _, res := range results {
		if res.err != nil {
			report.addFailure(res.status, res.err)
			continue
		}
		report.addSuccess(res.status, res.blob)
	}

	if report.Failed == len(a.sources) && len(a.sources) > 0 {
		return report, ErrAllSourcesFailed
	}
	return report, nil
}

// fetchSource fetches and extracts event-related text from one source.
func (a *DirectAdapter) fetchSource(ctx context.Context, src Source) (string, error) {
	if src.Kind == SourceKindRSS {
		return a.fetchFeed(ctx, src)
	}
	return a.fetchPage(ctx, src)
}

func (a *DirectAdapter) fetchPage(ctx context.Context, src Source) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, perSourceTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return a.ExtractText(string(body)), nil
}

func (a *DirectAdapter) fetchFeed(ctx context.Context, src Source) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, perSourceTimeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.UserAgent = browserUserAgent

	feed, err := parser.ParseURLWithContext(src.URL, ctx)
	if err != nil {
		return "", fmt.Errorf("parsing feed: %w", err)
	}

	var sb strings.Builder
	for _, item := range feed.Items {
		sb.WriteString(item.Title)
		sb.WriteString(". ")
		if item.Description != "" {
			sb.WriteString(a.sanitizer.Sanitize(item.Description))
			sb.WriteString(". ")
		}
		if item.Published != "" {
			sb.WriteString(item.Published)
			sb.WriteString(". ")
		}
	}

	return FilterEventText(sb.String()), nil
}

// ExtractText strips an HTML document down to event-related plain text:
// scripts, styles and chrome removed, entities decoded, sentences
// pre-filtered by event keywords.
func (a *DirectAdapter) ExtractText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		// Fall back to brute-force tag stripping.
		return FilterEventText(a.sanitizer.Sanitize(html))
	}

	doc.Find("script, style, noscript, nav, header, footer, iframe").Remove()
	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}

	return FilterEventText(text)
}

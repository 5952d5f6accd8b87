// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// scrapeTimeout allows for the scrape service's JS rendering overhead.
const scrapeTimeout = 60 * time.Second

// ScrapeAPIAdapter delegates fetching to a key-gated scraping service that
// renders JavaScript and rotates IPs. The downstream contract is identical
// to the direct adapter.
type ScrapeAPIAdapter struct {
	sources   []Source
	apiURL    string
	apiKey    string
	client    *http.Client
	extractor *DirectAdapter // reused for HTML-to-text extraction
	logger    *slog.Logger
}

// NewScrapeAPIAdapter creates the scrape-service adapter.
func NewScrapeAPIAdapter(sources []Source, apiURL, apiKey string, logger *slog.Logger) *ScrapeAPIAdapter {
	return &ScrapeAPIAdapter{
		sources:   sources,
		apiURL:    apiURL,
		apiKey:    apiKey,
		client:    &http.Client{Timeout: scrapeTimeout},
		extractor: NewDirectAdapter(nil, logger),
		logger:    logger,
	}
}

// Name implements Adapter.
func (a *ScrapeAPIAdapter) Name() string { return "scrapeapi" }

// Discover fans out over the source list through the scrape service.
func (a *ScrapeAPIAdapter) Discover(ctx context.Context) (*Report, error) {
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

			text, err := a.fetchViaService(ctx, src)
			status := SourceStatus{Source: src.Name, URL: src.URL, Chars: len(text)}
			if err != nil {
				a.logger.Warn("scrape service fetch failed", "category", "discovery",
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

func (a *ScrapeAPIAdapter) fetchViaService(ctx context.Context, src Source) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, scrapeTimeout)
	defer cancel()

	query := url.Values{}
	query.Set("api_key", a.apiKey)
	query.Set("url", src.URL)
	query.Set("render", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.apiURL+"/?"+query.Encode(), nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling scrape service: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("scrape service returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}

	return a.extractor.ExtractText(string(body)), nil
}

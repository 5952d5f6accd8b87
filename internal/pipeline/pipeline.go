// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package pipeline orchestrates one event-discovery run: scrape, classify,
// filter, materialize briefs, and optionally generate draft content.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/craftvoice/craftvoice/internal/brief"
	"github.com/craftvoice/craftvoice/internal/classifier"
	"github.com/craftvoice/craftvoice/internal/discovery"
	"github.com/craftvoice/craftvoice/internal/generator"
	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

// Options control an individual run.
type Options struct {
	// GenerateContent drafts one content item per newly created brief.
	GenerateContent bool

	// ProfileID limits brief materialization to a single profile.
	// Zero means all profiles.
	ProfileID int64

	// DateStart/DateEnd bound candidate event dates (inclusive,
	// ISO yyyy-mm-dd). Candidates without a date pass the filter;
	// the materializer already treats them as CTA-ineligible.
	DateStart string
	DateEnd   string
}

// SourceDetail is the per-source outcome included in the run summary.
type SourceDetail struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Chars  int    `json:"chars"`
}

// RunSummary is the full accounting of one pipeline run.
type RunSummary struct {
	RunID                   string         `json:"run_id"`
	StartedAt               time.Time      `json:"started_at"`
	FinishedAt              time.Time      `json:"finished_at"`
	ScrapedSources          int            `json:"scraped_sources"`
	FailedSources           int            `json:"failed_sources"`
	Sources                 []SourceDetail `json:"sources"`
	EventsExtracted         int            `json:"events_extracted"`
	EventsFinal             int            `json:"events_final"`
	CompetitorEventsDropped int            `json:"competitor_events_filtered"`
	BriefsCreated           int            `json:"briefs_created"`
	BriefsDeduplicated      int            `json:"briefs_deduplicated"`
	SkippedIrrelevant       int            `json:"skipped_irrelevant"`
	RawEventsProcessed      int            `json:"raw_events_processed"`
	ContentGenerated        int            `json:"content_generated"`
	IsDemoData              bool           `json:"is_demo_data"`
	TotalTokens             int64          `json:"total_tokens"`
}

// Pipeline wires the run stages together.
type Pipeline struct {
	adapter      discovery.Adapter
	classifier   *classifier.Classifier
	materializer *brief.Materializer
	generator    *generator.Generator
	queries      *store.Queries
	limiter      *rate.Limiter
	logger       *slog.Logger
}

// New creates a Pipeline. requestsPerMinute paces LLM calls across the run.
func New(adapter discovery.Adapter, cls *classifier.Classifier, mat *brief.Materializer,
	gen *generator.Generator, queries *store.Queries, requestsPerMinute int, logger *slog.Logger) *Pipeline {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}
	return &Pipeline{
		adapter:      adapter,
		classifier:   cls,
		materializer: mat,
		generator:    gen,
		queries:      queries,
		limiter:      rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		logger:       logger,
	}
}

// Run executes one discovery pass. A run where every source failed returns
// an error alongside the summary so the caller still sees the per-source
// breakdown.
func (p *Pipeline) Run(ctx context.Context, opts Options) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC(),
	}
	logger := p.logger.With("run_id", summary.RunID, "category", "pipeline")
	logger.Info("pipeline run started", "adapter", p.adapter.Name())

	report, err := p.adapter.Discover(ctx)
	if report != nil {
		summary.ScrapedSources = report.Succeeded
		summary.FailedSources = report.Failed
		for _, s := range report.Statuses {
			summary.Sources = append(summary.Sources, SourceDetail{
				Source: s.Source, OK: s.OK, Error: s.Error, Chars: s.Chars,
			})
		}
	}
	if err != nil {
		summary.FinishedAt = time.Now().UTC()
		if errors.Is(err, discovery.ErrAllSourcesFailed) {
			logger.Error("pipeline run failed: no source reachable",
				"failed_sources", summary.FailedSources)
			return summary, fmt.Errorf("discovery produced nothing: %w", err)
		}
		return summary, err
	}

	candidates, err := p.classifyBlobs(ctx, logger, report.Blobs, summary)
	if err != nil {
		summary.FinishedAt = time.Now().UTC()
		return summary, err
	}
	summary.EventsExtracted = len(candidates)

	kept, dropped := classifier.FilterRelevant(candidates)
	summary.CompetitorEventsDropped = len(dropped)
	kept = filterDateRange(kept, opts.DateStart, opts.DateEnd)
	summary.EventsFinal = len(kept)

	profiles, err := p.queries.ListProfiles(ctx)
	if err != nil {
		summary.FinishedAt = time.Now().UTC()
		return summary, fmt.Errorf("listing profiles: %w", err)
	}
	if opts.ProfileID != 0 {
		var matched []model.BusinessProfile
		for _, pr := range profiles {
			if pr.ID == opts.ProfileID {
				matched = append(matched, pr)
			}
		}
		profiles = matched
	}

	outcome := p.materializer.Materialize(ctx, kept, profiles)
	summary.BriefsCreated = outcome.Created
	summary.BriefsDeduplicated = outcome.Deduplicated
	summary.SkippedIrrelevant = outcome.SkippedIrrelevant

	if opts.GenerateContent {
		summary.ContentGenerated = p.generateForBriefs(ctx, logger, outcome.BriefIDs)
	}

	summary.FinishedAt = time.Now().UTC()
	logger.Info("pipeline run finished",
		"scraped_sources", summary.ScrapedSources,
		"events_extracted", summary.EventsExtracted,
		"events_final", summary.EventsFinal,
		"briefs_created", summary.BriefsCreated,
		"briefs_deduplicated", summary.BriefsDeduplicated,
		"content_generated", summary.ContentGenerated,
		"is_demo_data", summary.IsDemoData)
	return summary, nil
}

// filterDateRange drops candidates whose ISO yyyy-mm-dd date falls outside
// [start, end]. Empty bounds are open. The classifier is allowed to emit
// free-text dates ("first weekend of June"); anything that does not parse
// as yyyy-mm-dd passes the filter like an empty date does.
func filterDateRange(candidates []model.EventCandidate, start, end string) []model.EventCandidate {
	if start == "" && end == "" {
		return candidates
	}
	var out []model.EventCandidate
	for _, c := range candidates {
		if _, err := time.Parse("2006-01-02", c.Date); err == nil {
			if start != "" && c.Date < start {
				continue
			}
			if end != "" && c.Date > end {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// classifyBlobs runs LLM classification over each blob, paced by the rate
// limiter. Push-sourced blobs are marked processed once classified, and also
// when the pre-filter empties their text (otherwise a keyword-free push would
// be re-drained on every run and clog the oldest-first queue). Only a failed
// classification leaves the record unprocessed for the next run.
func (p *Pipeline) classifyBlobs(ctx context.Context, logger *slog.Logger, blobs []discovery.Blob, summary *RunSummary) ([]model.EventCandidate, error) {
	now := time.Now()
	var candidates []model.EventCandidate

	for _, blob := range blobs {
		text := discovery.FilterEventText(blob.Text)
		if text == "" {
			p.markProcessed(ctx, logger, blob, summary)
			continue
		}

		if err := p.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}

		result, err := p.classifier.Classify(ctx, text, now)
		if err != nil {
			logger.Warn("classification failed for source",
				"source", blob.Source, "error", err)
			continue
		}

		candidates = append(candidates, result.Candidates...)
		summary.TotalTokens += result.TotalTokens
		if result.IsDemoData {
			summary.IsDemoData = true
		}

		p.markProcessed(ctx, logger, blob, summary)
	}
	return candidates, nil
}

// markProcessed flips the processed flag on a push-sourced blob's record.
// No-op for scraped blobs, which have no backing record.
func (p *Pipeline) markProcessed(ctx context.Context, logger *slog.Logger, blob discovery.Blob, summary *RunSummary) {
	if blob.RecordID == 0 {
		return
	}
	if err := p.queries.MarkRawEventProcessed(ctx, blob.RecordID); err != nil {
		logger.Warn("failed to mark raw event processed",
			"record_id", blob.RecordID, "error", err)
		return
	}
	summary.RawEventsProcessed++
}

func (p *Pipeline) generateForBriefs(ctx context.Context, logger *slog.Logger, briefIDs []int64) int {
	generated := 0
	for _, id := range briefIDs {
		b, err := p.queries.GetBrief(ctx, id)
		if err != nil {
			logger.Warn("brief disappeared before generation", "brief_id", id, "error", err)
			continue
		}
		profile, err := p.queries.GetProfile(ctx, b.ProfileID)
		if err != nil {
			logger.Warn("profile missing for brief", "brief_id", id, "error", err)
			continue
		}
		if err := p.limiter.Wait(ctx); err != nil {
			logger.Warn("rate limit wait aborted during generation", "error", err)
			return generated
		}
		if _, err := p.generator.Generate(ctx, profile, generator.RequestFromBrief(b), &b); err != nil {
			logger.Warn("content generation failed for brief",
				"brief_id", id, "profile_id", profile.ID, "error", err)
			continue
		}
		generated++
	}
	return generated
}

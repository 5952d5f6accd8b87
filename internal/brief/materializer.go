// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package brief materializes accepted event candidates into research briefs,
// one per (event, business) pair.
package brief

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

// Outcome summarizes one materialization batch.
type Outcome struct {
	Created           int     `json:"created"`
	Deduplicated      int     `json:"deduplicated"`
	SkippedIrrelevant int     `json:"skipped_irrelevant"`
	Failed            int     `json:"failed"`
	BriefIDs          []int64 `json:"-"`
}

// Materializer writes research briefs for event candidates.
type Materializer struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewMaterializer creates a Materializer.
func NewMaterializer(queries *store.Queries, logger *slog.Logger) *Materializer {
	return &Materializer{queries: queries, logger: logger}
}

// Materialize walks the (candidates x profiles) cross-product. Pairs are
// gated by location relevance, deduplicated by the brief's dedup key, and
// each insert is independent: a failure is logged and skipped, never aborts
// the batch.
func (m *Materializer) Materialize(ctx context.Context, candidates []model.EventCandidate, profiles []model.BusinessProfile) *Outcome {
	outcome := &Outcome{}

	for _, cand := range candidates {
		for _, profile := range profiles {
			if !profile.MatchesLocation(cand.Location) {
				outcome.SkippedIrrelevant++
				continue
			}

			created, id, err := m.materializeOne(ctx, cand, profile)
			if err != nil {
				outcome.Failed++
				m.logger.Error("brief materialization failed",
					"category", "pipeline",
					"event", cand.Name,
					"profile_id", profile.ID,
					"error", err)
				continue
			}
			if created {
				outcome.Created++
				outcome.BriefIDs = append(outcome.BriefIDs, id)
			} else {
				outcome.Deduplicated++
			}
		}
	}

	return outcome
}

func (m *Materializer) materializeOne(ctx context.Context, cand model.EventCandidate, profile model.BusinessProfile) (bool, int64, error) {
	keyPoints := []string{
		fmt.Sprintf("Event: %s on %s", cand.Name, displayDate(cand.Date)),
	}
	if cand.Location != "" {
		keyPoints = append(keyPoints, "Location: "+cand.Location)
	}
	if cand.Description != "" {
		keyPoints = append(keyPoints, cand.Description)
	}

	brief, created, err := m.queries.UpsertBrief(ctx, store.UpsertBriefParams{
		ProfileID:       profile.ID,
		SuggestedTheme:  fmt.Sprintf("Local event tie-in: %s", cand.Name),
		KeyPoints:       keyPoints,
		EventName:       cand.Name,
		EventDate:       cand.Date,
		EventLocation:   cand.Location,
		SeasonalContext: seasonalContext(cand.Date),
	})
	if err != nil {
		return false, 0, err
	}
	return created, brief.ID, nil
}

func displayDate(date string) string {
	if date == "" {
		return "an upcoming date"
	}
	return date
}

// seasonalContext derives a short seasonal blurb from an ISO date, giving
// the generator something to hang seasonal language on. Unparseable dates
// yield an empty context.
func seasonalContext(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	switch t.Month() {
	case time.December, time.January, time.February:
		return "Winter season: cozy tasting-room visits, barrel-aged releases, holiday gifting."
	case time.March, time.April, time.May:
		return "Spring season: new releases, patio re-openings, spring barrel tastings."
	case time.June, time.July, time.August:
		return "Summer season: outdoor events, live music, chilled pours and picnic pairings."
	default:
		return "Fall season: harvest, crush, fresh-hop and vintage-release storytelling."
	}
}

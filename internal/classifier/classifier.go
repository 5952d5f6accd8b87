// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package classifier turns raw scraped text into scored event candidates via
// a single LLM completion constrained to JSON output.
package classifier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/craftvoice/craftvoice/internal/llm"
	"github.com/craftvoice/craftvoice/internal/model"
)

// Result is the tagged outcome of a classification pass. IsDemoData marks
// the canned fallback set; callers must branch on it rather than treating
// demo and real candidates as the same thing.
type Result struct {
	Candidates  []model.EventCandidate
	IsDemoData  bool
	Model       string
	TotalTokens int64
}

// Classifier scores raw event text for relevance to craft-beverage marketing.
type Classifier struct {
	client llm.Client // nil means no LLM configured
	logger *slog.Logger
}

// New creates a classifier. A nil client selects the demo fallback path.
func New(client llm.Client, logger *slog.Logger) *Classifier {
	return &Classifier{client: client, logger: logger}
}

const systemPrompt = `You are an event analyst for craft-beverage marketing. You extract real-world local events from scraped web text.

You must respond with a valid JSON object (no markdown code fences, no extra text) of exactly this shape:

{
  "events": [
    {
      "name": "Event name",
      "date": "YYYY-MM-DD if determinable, otherwise the date text as written",
      "location": "City, State if determinable",
      "description": "One-sentence summary",
      "relevance_score": 7
    }
  ]
}

Scoring guide: relevance_score is 1-10. Score 8-10 for events squarely about wine, beer, cider, spirits, or food pairings; 6-7 for adjacent community events a tasting room could tie into; 5 and below for everything else. Do not include events run by a competing winery or brewery under its own brand. Respond ONLY with the JSON object.`

// Classify extracts event candidates from combined source text. The model
// sees today's date so it can resolve relative date references.
func (c *Classifier) Classify(ctx context.Context, sourceText string, today time.Time) (*Result, error) {
	if c.client == nil {
		c.logger.Warn("no LLM configured; returning demo event candidates", "category", "pipeline")
		return demoResult(today), nil
	}

	userPrompt := fmt.Sprintf("Today's date is %s.\n\nExtract events from the following text:\n\n%s",
		today.Format("2006-01-02"), sourceText)

	resp, err := c.client.ChatCompletion(ctx, llm.ChatRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens:   4096,
		Temperature: 0.2,
	})
	if err != nil {
		return nil, fmt.Errorf("classification call failed: %w", err)
	}

	var payload struct {
		Events []model.EventCandidate `json:"events"`
	}
	if err := llm.DecodeJSON(resp.Content, &payload); err != nil {
		return nil, fmt.Errorf("parsing classifier response: %w", err)
	}

	return &Result{
		Candidates:  payload.Events,
		Model:       resp.Model,
		TotalTokens: resp.TotalTokens,
	}, nil
}

// FilterRelevant applies the relevance threshold in code. The prompt states
// the scoring policy, but a model response is never trusted to self-enforce
// a numeric cutoff.
func FilterRelevant(candidates []model.EventCandidate) (kept, dropped []model.EventCandidate) {
	for _, cand := range candidates {
		if cand.RelevanceScore >= model.RelevanceThreshold {
			kept = append(kept, cand)
		} else {
			dropped = append(dropped, cand)
		}
	}
	return kept, dropped
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package generator produces draft content items from a business profile's
// brand voice and a content request, via an LLM or a deterministic template
// fallback.
package generator

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/craftvoice/craftvoice/internal/llm"
	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

// ContentRequest describes what the caller wants written.
type ContentRequest struct {
	ContentType      string `json:"content_type"`
	PrimaryTopic     string `json:"primary_topic"`
	KeyTalkingPoints string `json:"key_talking_points"`
	CallToAction     string `json:"call_to_action"`
}

// Output is one generation result: the persisted draft plus a short summary
// of the voice applied and the method discriminator.
type Output struct {
	Item             model.ContentItem `json:"content_item"`
	VoiceSummary     string            `json:"voice_summary"`
	GenerationMethod string            `json:"generation_method"`
}

// Generator creates draft content items.
type Generator struct {
	client  llm.Client // nil means template fallback
	queries *store.Queries
	logger  *slog.Logger
}

// New creates a Generator. A nil client selects the demo template path.
func New(client llm.Client, queries *store.Queries, logger *slog.Logger) *Generator {
	return &Generator{client: client, queries: queries, logger: logger}
}

// RequestFromBrief derives a content request from a research brief. The
// call-to-action claims a date only when the brief is CTA-eligible: a named
// event without a date never produces a dated CTA.
func RequestFromBrief(b model.ResearchBrief) ContentRequest {
	req := ContentRequest{
		ContentType:      model.ContentTypeEventPromotion,
		PrimaryTopic:     b.SuggestedTheme,
		KeyTalkingPoints: strings.Join(b.KeyPoints, "; "),
	}
	if b.SuggestedTheme == "" && b.EventName != "" {
		req.PrimaryTopic = b.EventName
	}
	if b.CTAEligible() {
		req.CallToAction = fmt.Sprintf("Visit us around %s on %s", b.EventName, b.EventDate)
	} else {
		req.CallToAction = "Stop by the tasting room this week"
	}
	return req
}

// Generate produces one draft content item. LLM failures are surfaced with
// the upstream message attached; nothing is retried.
func (g *Generator) Generate(ctx context.Context, profile model.BusinessProfile, req ContentRequest, brief *model.ResearchBrief) (*Output, error) {
	if req.ContentType == "" {
		req.ContentType = model.ContentTypeBlogPost
	}
	if !model.IsValidContentType(req.ContentType) {
		return nil, fmt.Errorf("unsupported content type %q", req.ContentType)
	}

	var (
		title, body string
		method      string
	)

	if g.client == nil {
		title, body = renderTemplate(profile, req, brief)
		method = model.GenerationMethodDemoTemplate
		g.logger.Warn("no LLM configured; content generated from demo template",
			"category", "content", "profile_id", profile.ID)
	} else {
		var err error
		title, body, err = g.generateWithLLM(ctx, profile, req, brief)
		if err != nil {
			return nil, err
		}
		method = model.GenerationMethodOpenAI
	}

	var briefID sql.NullInt64
	if brief != nil {
		briefID = sql.NullInt64{Int64: brief.ID, Valid: true}
	}

	item, err := g.queries.CreateContentItem(ctx, store.CreateContentItemParams{
		ProfileID:        profile.ID,
		BriefID:          briefID,
		Title:            title,
		Body:             body,
		ContentType:      req.ContentType,
		Status:           model.ContentStatusDraft,
		GenerationMethod: method,
	})
	if err != nil {
		return nil, fmt.Errorf("persisting content item: %w", err)
	}

	return &Output{
		Item:             item,
		VoiceSummary:     voiceSummary(profile),
		GenerationMethod: method,
	}, nil
}

func (g *Generator) generateWithLLM(ctx context.Context, profile model.BusinessProfile, req ContentRequest, brief *model.ResearchBrief) (string, string, error) {
	resp, err := g.client.ChatCompletion(ctx, llm.ChatRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: buildSystemPrompt(req.ContentType)},
			{Role: "user", Content: buildUserPrompt(profile, req, brief)},
		},
		MaxTokens:   4096,
		Temperature: 0.7,
	})
	if err != nil {
		return "", "", fmt.Errorf("content generation failed: %w", err)
	}

	var payload struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := llm.DecodeJSON(resp.Content, &payload); err != nil {
		return "", "", fmt.Errorf("parsing generation response: %w", err)
	}
	if payload.Title == "" || payload.Body == "" {
		return "", "", fmt.Errorf("incomplete generation response: title and body are required")
	}

	return payload.Title, payload.Body, nil
}

// voiceSummary is the short human-readable description of the voice applied,
// returned alongside the generated item.
func voiceSummary(profile model.BusinessProfile) string {
	var parts []string
	if profile.PersonalitySummary != "" {
		parts = append(parts, profile.PersonalitySummary)
	}
	if profile.ToneWords != "" {
		parts = append(parts, "tone: "+profile.ToneWords)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Written in %s's house style", profile.Name)
	}
	return fmt.Sprintf("Written in %s's voice (%s)", profile.Name, strings.Join(parts, "; "))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/craftvoice/craftvoice/internal/llm"
	"github.com/craftvoice/craftvoice/internal/model"
)

const minVoiceSampleChars = 50

// VoiceAnalysis is a brand voice profile plus the demo-data discriminator.
type VoiceAnalysis struct {
	Voice      model.BrandVoice `json:"voice"`
	IsDemoData bool             `json:"is_demo_data"`
}

const voiceSystemPrompt = `You analyze writing samples from small craft beverage businesses and describe their brand voice.

Respond with a JSON object only, all values plain strings:
{
  "personality_summary": "2-3 sentences describing the brand personality",
  "tone_words": "comma-separated adjectives",
  "messaging_style": "how they structure and pace their messaging",
  "vocabulary_use": "comma-separated words and phrases they favor",
  "vocabulary_avoid": "comma-separated words and phrases that would ring false",
  "ai_guidelines": "instructions for a writer imitating this voice"
}`

// AnalyzeVoice derives a brand voice profile from sample marketing text.
// Samples under 50 characters are rejected before any LLM call.
func (g *Generator) AnalyzeVoice(ctx context.Context, sample string) (*VoiceAnalysis, error) {
	if len(strings.TrimSpace(sample)) < minVoiceSampleChars {
		return nil, fmt.Errorf("sample text too short: need at least %d characters", minVoiceSampleChars)
	}

	if g.client == nil {
		g.logger.Warn("no LLM configured; returning demo brand voice analysis",
			"category", "content")
		return &VoiceAnalysis{Voice: demoVoice(), IsDemoData: true}, nil
	}

	resp, err := g.client.ChatCompletion(ctx, llm.ChatRequest{
		Messages: []llm.ChatMessage{
			{Role: "system", Content: voiceSystemPrompt},
			{Role: "user", Content: "Writing sample:\n\n" + sample},
		},
		MaxTokens:   1024,
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("brand voice analysis failed: %w", err)
	}

	var voice model.BrandVoice
	if err := llm.DecodeJSON(resp.Content, &voice); err != nil {
		return nil, fmt.Errorf("parsing voice analysis: %w", err)
	}
	return &VoiceAnalysis{Voice: voice}, nil
}

func demoVoice() model.BrandVoice {
	return model.BrandVoice{
		PersonalitySummary: "Warm and unpretentious, proud of craft without taking itself too seriously.",
		ToneWords:          "friendly, genuine, playful, knowledgeable",
		MessagingStyle:     "Short conversational paragraphs that lead with the product and end with an invitation.",
		VocabularyUse:      "small batch, taproom, neighbors, pour, crafted",
		VocabularyAvoid:    "synergy, world-class, disrupt, luxury",
		AIGuidelines:       "Write like a regular talking to regulars. Name specific drinks. Keep sentences short and never oversell.",
	}
}

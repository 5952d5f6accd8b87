// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package generator

import (
	"fmt"
	"strings"

	"github.com/craftvoice/craftvoice/internal/model"
)

// typeGuidance adjusts length and format per content type.
var typeGuidance = map[string]string{
	model.ContentTypeBlogPost:            "Write 400-700 words of HTML using <h2>, <p> and <ul> tags. No <html> or <body> wrapper.",
	model.ContentTypeSocialMedia:         "Write a single plain-text post under 280 characters. Include 2-3 relevant hashtags at the end.",
	model.ContentTypeEventPromotion:      "Write 150-300 words of HTML promoting the event. Lead with what makes it worth attending, close with the call to action.",
	model.ContentTypeNewsletter:          "Write 250-450 words of HTML suitable for an email newsletter. Short paragraphs, one clear call to action.",
	model.ContentTypePressRelease:        "Write 250-400 words of HTML in inverted-pyramid press release form. Factual first paragraph, quote in the middle.",
	model.ContentTypeProductAnnouncement: "Write 200-400 words of HTML announcing the release. Describe flavor and occasion, not process trivia.",
	model.ContentTypeEducationalContent:  "Write 400-700 words of HTML teaching one thing about the craft. Approachable, no jargon without explanation.",
}

func buildSystemPrompt(contentType string) string {
	var b strings.Builder
	b.WriteString("You are a marketing copywriter for small craft beverage businesses. ")
	b.WriteString("You write in the business's own voice, never in generic marketing speak. ")
	b.WriteString(typeGuidance[contentType])
	b.WriteString("\n\nRespond with a JSON object only, no prose before or after:\n")
	b.WriteString(`{"title": "...", "body": "..."}`)
	return b.String()
}

func buildUserPrompt(profile model.BusinessProfile, req ContentRequest, brief *model.ResearchBrief) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Business: %s in %s\n", profile.Name, profile.Location)

	// Only populated voice fields go into the prompt.
	voice := []struct{ label, value string }{
		{"Personality", profile.PersonalitySummary},
		{"Tone words", profile.ToneWords},
		{"Messaging style", profile.MessagingStyle},
		{"Vocabulary to use", profile.VocabularyUse},
		{"Vocabulary to avoid", profile.VocabularyAvoid},
		{"Writing guidelines", profile.AIGuidelines},
	}
	b.WriteString("\nBrand voice:\n")
	for _, v := range voice {
		if v.value != "" {
			fmt.Fprintf(&b, "- %s: %s\n", v.label, v.value)
		}
	}

	fmt.Fprintf(&b, "\nContent type: %s\n", req.ContentType)
	if req.PrimaryTopic != "" {
		fmt.Fprintf(&b, "Topic: %s\n", req.PrimaryTopic)
	}
	if req.KeyTalkingPoints != "" {
		fmt.Fprintf(&b, "Talking points: %s\n", req.KeyTalkingPoints)
	}
	if req.CallToAction != "" {
		fmt.Fprintf(&b, "Call to action: %s\n", req.CallToAction)
	}

	if brief != nil {
		b.WriteString("\nLocal event context:\n")
		if brief.EventName != "" {
			fmt.Fprintf(&b, "- Event: %s\n", brief.EventName)
		}
		if brief.EventDate != "" {
			fmt.Fprintf(&b, "- Date: %s\n", brief.EventDate)
		}
		if brief.EventLocation != "" {
			fmt.Fprintf(&b, "- Location: %s\n", brief.EventLocation)
		}
		if brief.SeasonalContext != "" {
			fmt.Fprintf(&b, "- Season: %s\n", brief.SeasonalContext)
		}
	}

	return b.String()
}

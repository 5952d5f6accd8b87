// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines domain models and types used throughout the application.
package model

import (
	"strings"
	"time"
)

// BusinessProfile describes one craft-beverage business: its identity, the
// brand voice applied to generated content, and optional publishing
// credentials. One profile exists per account; profiles are created at
// onboarding and mutated via settings, never deleted in-app.
type BusinessProfile struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	OwnerName string `json:"owner_name"`
	Location  string `json:"location"`

	// Brand voice attributes
	PersonalitySummary string `json:"personality_summary"`
	ToneWords          string `json:"tone_words"`
	MessagingStyle     string `json:"messaging_style"`
	VocabularyUse      string `json:"vocabulary_use"`
	VocabularyAvoid    string `json:"vocabulary_avoid"`
	AIGuidelines       string `json:"ai_guidelines"`

	// Content cadence goal in posts per week.
	PostsPerWeek int `json:"posts_per_week"`

	// Optional WordPress publishing credentials.
	WordPressURL      string `json:"wordpress_url,omitempty"`
	WordPressUsername string `json:"wordpress_username,omitempty"`
	WordPressPassword string `json:"-"` // Never expose in JSON

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasWordPressCredentials returns true if all three publishing credential
// fields are present.
func (p BusinessProfile) HasWordPressCredentials() bool {
	return p.WordPressURL != "" && p.WordPressUsername != "" && p.WordPressPassword != ""
}

// MatchesLocation reports whether an event location is plausibly relevant to
// this profile. An empty event location matches everything (the event gave us
// nothing to gate on); otherwise at least one location token has to appear on
// both sides, compared case-insensitively.
func (p BusinessProfile) MatchesLocation(eventLocation string) bool {
	if strings.TrimSpace(eventLocation) == "" {
		return true
	}
	if strings.TrimSpace(p.Location) == "" {
		return true
	}

	eventTokens := locationTokens(eventLocation)
	for tok := range locationTokens(p.Location) {
		if _, ok := eventTokens[tok]; ok {
			return true
		}
	}
	return false
}

// locationTokens splits a location string into a set of lowercase tokens,
// dropping short filler words like "of" and state abbreviations' punctuation.
func locationTokens(loc string) map[string]struct{} {
	tokens := make(map[string]struct{})
	for _, tok := range strings.FieldsFunc(strings.ToLower(loc), func(r rune) bool {
		return r == ' ' || r == ',' || r == '.' || r == '/' || r == '-'
	}) {
		if len(tok) < 3 {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// BrandVoice is the flat six-field result of brand-voice analysis.
type BrandVoice struct {
	PersonalitySummary string `json:"personality_summary"`
	ToneWords          string `json:"tone_words"`
	MessagingStyle     string `json:"messaging_style"`
	VocabularyUse      string `json:"vocabulary_use"`
	VocabularyAvoid    string `json:"vocabulary_avoid"`
	AIGuidelines       string `json:"ai_guidelines"`
}

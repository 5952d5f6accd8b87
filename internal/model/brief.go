// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// ResearchBrief is a materialized, business-specific note about a candidate
// real-world event, used to seed content generation. Briefs are created only
// by the event pipeline and deleted by the user; deletion cascades to
// dependent content items.
type ResearchBrief struct {
	ID             int64    `json:"id"`
	ProfileID      int64    `json:"profile_id"`
	SuggestedTheme string   `json:"suggested_theme"`
	KeyPoints      []string `json:"key_points"`

	// Optional structured event fields.
	EventName      string `json:"local_event_name,omitempty"`
	EventDate      string `json:"local_event_date,omitempty"` // YYYY-MM-DD or free text from the source
	EventLocation  string `json:"local_event_location,omitempty"`
	SeasonalContext string `json:"seasonal_context,omitempty"`

	// DedupKey uniquely identifies the (event, business) pair so re-running
	// discovery against the same source data cannot create duplicates.
	DedupKey string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

// BriefDedupKey derives the stable identifier for an (event, business) pair.
// The store upserts on this key.
func BriefDedupKey(eventName, eventDate string, profileID int64) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", eventName, eventDate, profileID)))
	return hex.EncodeToString(sum[:])
}

// CTAEligible reports whether content generated from this brief may claim a
// date-based call-to-action. A named event without a date is not eligible.
func (b ResearchBrief) CTAEligible() bool {
	if b.EventName == "" {
		return false
	}
	return b.EventDate != ""
}

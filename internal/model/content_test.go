// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestStatusLabel(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{ContentStatusDraft, "Draft"},
		{ContentStatusReadyForReview, "Ready for Review"},
		{ContentStatusScheduled, "Scheduled"},
		{ContentStatusPublished, "Published"},
		{"archived", "Unknown"},
		{"", "Unknown"},
		{"DRAFT", "Unknown"}, // statuses are case-sensitive
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			if got := StatusLabel(tt.status); got != tt.want {
				t.Errorf("StatusLabel(%q) = %q, want %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestIsValidContentStatus(t *testing.T) {
	for _, s := range AllContentStatuses() {
		if !IsValidContentStatus(s) {
			t.Errorf("IsValidContentStatus(%q) = false for defined status", s)
		}
	}
	for _, s := range []string{"", "deleted", "Draft"} {
		if IsValidContentStatus(s) {
			t.Errorf("IsValidContentStatus(%q) = true for undefined status", s)
		}
	}
}

func TestIsValidContentType(t *testing.T) {
	for _, ct := range AllContentTypes() {
		if !IsValidContentType(ct) {
			t.Errorf("IsValidContentType(%q) = false for supported type", ct)
		}
	}
	if IsValidContentType("tiktok_video") {
		t.Error("IsValidContentType accepted an unsupported type")
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// Content item statuses. The lifecycle is draft -> ready_for_review ->
// scheduled -> published, but transitions are not ordered: the pipeline
// board allows moving an item to any status.
const (
	ContentStatusDraft          = "draft"
	ContentStatusReadyForReview = "ready_for_review"
	ContentStatusScheduled      = "scheduled"
	ContentStatusPublished      = "published"
)

// Content types.
const (
	ContentTypeBlogPost            = "blog_post"
	ContentTypeSocialMedia         = "social_media"
	ContentTypeNewsletter          = "newsletter"
	ContentTypePressRelease        = "press_release"
	ContentTypeEventPromotion      = "event_promotion"
	ContentTypeProductAnnouncement = "product_announcement"
	ContentTypeEducationalContent  = "educational_content"
)

// Generation method discriminators. Downstream consumers branch on these to
// tell AI output from the deterministic demo fallback and manual entry.
const (
	GenerationMethodOpenAI       = "openai_gpt4"
	GenerationMethodDemoTemplate = "demo_template"
	GenerationMethodManual       = "manual"
)

// ContentItem is one piece of publishable marketing content.
type ContentItem struct {
	ID               int64         `json:"id"`
	ProfileID        int64         `json:"profile_id"`
	BriefID          sql.NullInt64 `json:"-"`
	Title            string        `json:"title"`
	Body             string        `json:"body"` // HTML, stored byte-for-byte
	ContentType      string        `json:"content_type"`
	Status           string        `json:"status"`
	GenerationMethod string        `json:"generation_method"`
	ScheduledAt      sql.NullTime  `json:"-"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// AllContentStatuses returns the defined lifecycle statuses in display order.
func AllContentStatuses() []string {
	return []string{
		ContentStatusDraft,
		ContentStatusReadyForReview,
		ContentStatusScheduled,
		ContentStatusPublished,
	}
}

// AllContentTypes returns the supported content types.
func AllContentTypes() []string {
	return []string{
		ContentTypeBlogPost,
		ContentTypeSocialMedia,
		ContentTypeNewsletter,
		ContentTypePressRelease,
		ContentTypeEventPromotion,
		ContentTypeProductAnnouncement,
		ContentTypeEducationalContent,
	}
}

// IsValidContentStatus reports whether s is one of the defined statuses.
func IsValidContentStatus(s string) bool {
	switch s {
	case ContentStatusDraft, ContentStatusReadyForReview, ContentStatusScheduled, ContentStatusPublished:
		return true
	}
	return false
}

// IsValidContentType reports whether t is one of the supported content types.
func IsValidContentType(t string) bool {
	for _, ct := range AllContentTypes() {
		if t == ct {
			return true
		}
	}
	return false
}

// StatusLabel returns the human-readable label for a status. An unrecognized
// status string renders as a distinct "Unknown" label rather than breaking
// the caller.
func StatusLabel(status string) string {
	switch status {
	case ContentStatusDraft:
		return "Draft"
	case ContentStatusReadyForReview:
		return "Ready for Review"
	case ContentStatusScheduled:
		return "Scheduled"
	case ContentStatusPublished:
		return "Published"
	default:
		return "Unknown"
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "time"

// EngagementMetric holds view/click/signup counters for a content item.
// Rows are written by an external analytics feed; this system only reads
// them. Deleting a content item orphans its metrics unless the caller also
// deletes them.
type EngagementMetric struct {
	ID         int64     `json:"id"`
	ContentID  int64     `json:"content_id"`
	Views      int64     `json:"views"`
	Clicks     int64     `json:"clicks"`
	Signups    int64     `json:"signups"`
	RecordedAt time.Time `json:"recorded_at"`
}

// MetricSummary aggregates engagement counters for one content item.
type MetricSummary struct {
	ContentID    int64 `json:"content_id"`
	TotalViews   int64 `json:"total_views"`
	TotalClicks  int64 `json:"total_clicks"`
	TotalSignups int64 `json:"total_signups"`
}

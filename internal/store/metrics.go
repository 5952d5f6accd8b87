// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

// RecordMetricParams holds one engagement sample from the external analytics feed.
type RecordMetricParams struct {
	ContentID int64
	Views     int64
	Clicks    int64
	Signups   int64
}

// RecordMetric appends an engagement sample for a content item.
func (q *Queries) RecordMetric(ctx context.Context, arg RecordMetricParams) (model.EngagementMetric, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO engagement_metrics (content_id, views, clicks, signups, recorded_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, content_id, views, clicks, signups, recorded_at`,
		arg.ContentID, arg.Views, arg.Clicks, arg.Signups, time.Now().UTC())

	var m model.EngagementMetric
	err := row.Scan(&m.ID, &m.ContentID, &m.Views, &m.Clicks, &m.Signups, &m.RecordedAt)
	return m, err
}

// GetMetricSummary aggregates all samples for one content item. A content
// item with no samples yields a zero summary, not an error.
func (q *Queries) GetMetricSummary(ctx context.Context, contentID int64) (model.MetricSummary, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(views), 0), COALESCE(SUM(clicks), 0), COALESCE(SUM(signups), 0)
		FROM engagement_metrics WHERE content_id = ?`, contentID)

	summary := model.MetricSummary{ContentID: contentID}
	err := row.Scan(&summary.TotalViews, &summary.TotalClicks, &summary.TotalSignups)
	return summary, err
}

// DeleteMetricsForContent removes all samples for a content item and returns
// how many were deleted.
func (q *Queries) DeleteMetricsForContent(ctx context.Context, contentID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM engagement_metrics WHERE content_id = ?`, contentID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

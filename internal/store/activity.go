// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

// CreateActivityParams holds the fields for an activity log entry.
type CreateActivityParams struct {
	Level    string
	Category string
	Message  string
	Metadata string // JSON string
}

// CreateActivity inserts an activity log entry.
func (q *Queries) CreateActivity(ctx context.Context, arg CreateActivityParams) (model.Activity, error) {
	if arg.Metadata == "" {
		arg.Metadata = "{}"
	}
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO activity_log (level, category, message, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, level, category, message, metadata, created_at`,
		arg.Level, arg.Category, arg.Message, arg.Metadata, time.Now().UTC())

	var a model.Activity
	err := row.Scan(&a.ID, &a.Level, &a.Category, &a.Message, &a.Metadata, &a.CreatedAt)
	return a, err
}

// ListRecentActivity returns the newest activity entries, capped at limit.
func (q *Queries) ListRecentActivity(ctx context.Context, limit int) ([]model.Activity, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT id, level, category, message, metadata, created_at
		FROM activity_log ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.Activity
	for rows.Next() {
		var a model.Activity
		if err := rows.Scan(&a.ID, &a.Level, &a.Category, &a.Message, &a.Metadata, &a.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, a)
	}
	return entries, rows.Err()
}

// DeleteOldActivity removes activity entries older than the cutoff.
func (q *Queries) DeleteOldActivity(ctx context.Context, cutoff time.Time) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM activity_log WHERE created_at < ?`, cutoff)
	return err
}

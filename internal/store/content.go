// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

const contentColumns = `id, profile_id, brief_id, title, body, content_type, status,
	generation_method, scheduled_at, created_at, updated_at`

// CreateContentItemParams holds the fields for creating a content item.
type CreateContentItemParams struct {
	ProfileID        int64
	BriefID          sql.NullInt64
	Title            string
	Body             string
	ContentType      string
	Status           string
	GenerationMethod string
	ScheduledAt      sql.NullTime
}

// CreateContentItem inserts a new content item. The body is stored exactly as
// given; no sanitization or re-encoding happens on write or read.
func (q *Queries) CreateContentItem(ctx context.Context, arg CreateContentItemParams) (model.ContentItem, error) {
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO content_items (profile_id, brief_id, title, body, content_type,
			status, generation_method, scheduled_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+contentColumns,
		arg.ProfileID, arg.BriefID, arg.Title, arg.Body, arg.ContentType,
		arg.Status, arg.GenerationMethod, arg.ScheduledAt, now, now)
	return scanContentItem(row)
}

// GetContentItem returns a content item by ID.
func (q *Queries) GetContentItem(ctx context.Context, id int64) (model.ContentItem, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+contentColumns+` FROM content_items WHERE id = ?`, id)
	return scanContentItem(row)
}

// ListContentItemsParams filters the content listing. Zero values mean no filter.
type ListContentItemsParams struct {
	ProfileID   int64
	Status      string
	ContentType string
}

// ListContentItems returns content items newest-first, optionally filtered.
func (q *Queries) ListContentItems(ctx context.Context, arg ListContentItemsParams) ([]model.ContentItem, error) {
	query := `SELECT ` + contentColumns + ` FROM content_items WHERE 1=1`
	var args []any
	if arg.ProfileID != 0 {
		query += ` AND profile_id = ?`
		args = append(args, arg.ProfileID)
	}
	if arg.Status != "" {
		query += ` AND status = ?`
		args = append(args, arg.Status)
	}
	if arg.ContentType != "" {
		query += ` AND content_type = ?`
		args = append(args, arg.ContentType)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// UpdateContentItemParams holds the fields for updating a content item.
type UpdateContentItemParams struct {
	ID          int64
	Title       string
	Body        string
	ContentType string
	Status      string
	ScheduledAt sql.NullTime
}

// UpdateContentItem updates a content item and returns the updated row.
func (q *Queries) UpdateContentItem(ctx context.Context, arg UpdateContentItemParams) (model.ContentItem, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE content_items
		SET title = ?, body = ?, content_type = ?, status = ?, scheduled_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+contentColumns,
		arg.Title, arg.Body, arg.ContentType, arg.Status, arg.ScheduledAt,
		time.Now().UTC(), arg.ID)
	return scanContentItem(row)
}

// UpdateContentStatus moves a content item to a new status.
func (q *Queries) UpdateContentStatus(ctx context.Context, id int64, status string) (model.ContentItem, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE content_items SET status = ?, updated_at = ? WHERE id = ?
		RETURNING `+contentColumns,
		status, time.Now().UTC(), id)
	return scanContentItem(row)
}

// DeleteContentItem deletes a content item. Engagement metrics referencing it
// are left in place; the caller decides whether to delete them too.
func (q *Queries) DeleteContentItem(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM content_items WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeleteContentByBrief deletes all content items that reference a brief and
// returns how many were removed.
func (q *Queries) DeleteContentByBrief(ctx context.Context, briefID int64) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM content_items WHERE brief_id = ?`, briefID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// ListScheduledContentDue returns items with status=scheduled whose
// scheduled_at is at or before the given time.
func (q *Queries) ListScheduledContentDue(ctx context.Context, now time.Time) ([]model.ContentItem, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+contentColumns+` FROM content_items
		WHERE status = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?`,
		model.ContentStatusScheduled, now)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var items []model.ContentItem
	for rows.Next() {
		item, err := scanContentItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func scanContentItem(row rowScanner) (model.ContentItem, error) {
	var item model.ContentItem
	err := row.Scan(&item.ID, &item.ProfileID, &item.BriefID, &item.Title, &item.Body,
		&item.ContentType, &item.Status, &item.GenerationMethod, &item.ScheduledAt,
		&item.CreatedAt, &item.UpdatedAt)
	return item, err
}

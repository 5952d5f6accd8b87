// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

const rawEventColumns = `id, source_name, source_url, raw_text, processed, created_at, processed_at`

// CreateRawEventParams holds the fields for persisting a pushed event record.
type CreateRawEventParams struct {
	SourceName string
	SourceURL  string
	RawText    string
}

// CreateRawEvent inserts an unprocessed raw event record.
func (q *Queries) CreateRawEvent(ctx context.Context, arg CreateRawEventParams) (model.RawEventRecord, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO raw_event_records (source_name, source_url, raw_text, processed, created_at)
		VALUES (?, ?, ?, 0, ?)
		RETURNING `+rawEventColumns,
		arg.SourceName, arg.SourceURL, arg.RawText, time.Now().UTC())
	return scanRawEvent(row)
}

// ListUnprocessedRawEvents returns raw event records awaiting classification,
// oldest first, capped at limit.
func (q *Queries) ListUnprocessedRawEvents(ctx context.Context, limit int) ([]model.RawEventRecord, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+rawEventColumns+` FROM raw_event_records
		WHERE processed = 0 ORDER BY created_at LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []model.RawEventRecord
	for rows.Next() {
		rec, err := scanRawEvent(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// MarkRawEventProcessed flips the processed flag on a raw event record.
func (q *Queries) MarkRawEventProcessed(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `
		UPDATE raw_event_records SET processed = 1, processed_at = ? WHERE id = ?`,
		time.Now().UTC(), id)
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

func scanRawEvent(row rowScanner) (model.RawEventRecord, error) {
	var rec model.RawEventRecord
	err := row.Scan(&rec.ID, &rec.SourceName, &rec.SourceURL, &rec.RawText,
		&rec.Processed, &rec.CreatedAt, &rec.ProcessedAt)
	return rec, err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

const briefColumns = `id, profile_id, suggested_theme, key_points, event_name,
	event_date, event_location, seasonal_context, dedup_key, created_at`

// UpsertBriefParams holds the fields for creating a research brief.
type UpsertBriefParams struct {
	ProfileID       int64
	SuggestedTheme  string
	KeyPoints       []string
	EventName       string
	EventDate       string
	EventLocation   string
	SeasonalContext string
}

// UpsertBrief inserts a research brief keyed by its (event, business) dedup
// key. If a brief with the same key already exists the insert is a no-op and
// the existing row is returned with created=false.
func (q *Queries) UpsertBrief(ctx context.Context, arg UpsertBriefParams) (model.ResearchBrief, bool, error) {
	dedupKey := model.BriefDedupKey(arg.EventName, arg.EventDate, arg.ProfileID)

	keyPoints, err := json.Marshal(arg.KeyPoints)
	if err != nil {
		return model.ResearchBrief{}, false, fmt.Errorf("marshaling key points: %w", err)
	}

	res, err := q.db.ExecContext(ctx, `
		INSERT INTO research_briefs (profile_id, suggested_theme, key_points, event_name,
			event_date, event_location, seasonal_context, dedup_key, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(dedup_key) DO NOTHING`,
		arg.ProfileID, arg.SuggestedTheme, string(keyPoints), arg.EventName,
		arg.EventDate, arg.EventLocation, arg.SeasonalContext, dedupKey, time.Now().UTC())
	if err != nil {
		return model.ResearchBrief{}, false, err
	}

	inserted, err := res.RowsAffected()
	if err != nil {
		return model.ResearchBrief{}, false, err
	}

	row := q.db.QueryRowContext(ctx,
		`SELECT `+briefColumns+` FROM research_briefs WHERE dedup_key = ?`, dedupKey)
	brief, err := scanBrief(row)
	if err != nil {
		return model.ResearchBrief{}, false, err
	}
	return brief, inserted > 0, nil
}

// GetBrief returns a research brief by ID.
func (q *Queries) GetBrief(ctx context.Context, id int64) (model.ResearchBrief, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+briefColumns+` FROM research_briefs WHERE id = ?`, id)
	return scanBrief(row)
}

// ListBriefs returns research briefs newest-first, optionally filtered by profile.
func (q *Queries) ListBriefs(ctx context.Context, profileID int64) ([]model.ResearchBrief, error) {
	query := `SELECT ` + briefColumns + ` FROM research_briefs`
	var args []any
	if profileID != 0 {
		query += ` WHERE profile_id = ?`
		args = append(args, profileID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var briefs []model.ResearchBrief
	for rows.Next() {
		b, err := scanBrief(rows)
		if err != nil {
			return nil, err
		}
		briefs = append(briefs, b)
	}
	return briefs, rows.Err()
}

// DeleteBrief deletes a research brief together with its dependent content
// items and returns how many content items were removed with it.
func (q *Queries) DeleteBrief(ctx context.Context, id int64) (int64, error) {
	contentDeleted, err := q.DeleteContentByBrief(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("deleting dependent content: %w", err)
	}

	res, err := q.db.ExecContext(ctx, `DELETE FROM research_briefs WHERE id = ?`, id)
	if err != nil {
		return contentDeleted, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return contentDeleted, err
	}
	if n == 0 {
		return contentDeleted, sql.ErrNoRows
	}
	return contentDeleted, nil
}

func scanBrief(row rowScanner) (model.ResearchBrief, error) {
	var b model.ResearchBrief
	var keyPoints string
	err := row.Scan(&b.ID, &b.ProfileID, &b.SuggestedTheme, &keyPoints, &b.EventName,
		&b.EventDate, &b.EventLocation, &b.SeasonalContext, &b.DedupKey, &b.CreatedAt)
	if err != nil {
		return b, err
	}
	if err := json.Unmarshal([]byte(keyPoints), &b.KeyPoints); err != nil {
		return b, fmt.Errorf("unmarshaling key points: %w", err)
	}
	return b, nil
}

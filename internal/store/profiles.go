// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
)

const profileColumns = `id, name, owner_name, location, personality_summary, tone_words,
	messaging_style, vocabulary_use, vocabulary_avoid, ai_guidelines, posts_per_week,
	wordpress_url, wordpress_username, wordpress_password, created_at, updated_at`

// CreateProfileParams holds the fields for creating a business profile.
type CreateProfileParams struct {
	Name               string
	OwnerName          string
	Location           string
	PersonalitySummary string
	ToneWords          string
	MessagingStyle     string
	VocabularyUse      string
	VocabularyAvoid    string
	AIGuidelines       string
	PostsPerWeek       int
}

// CreateProfile inserts a new business profile.
func (q *Queries) CreateProfile(ctx context.Context, arg CreateProfileParams) (model.BusinessProfile, error) {
	if arg.PostsPerWeek <= 0 {
		arg.PostsPerWeek = 3
	}
	now := time.Now().UTC()
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO business_profiles (name, owner_name, location, personality_summary,
			tone_words, messaging_style, vocabulary_use, vocabulary_avoid, ai_guidelines,
			posts_per_week, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+profileColumns,
		arg.Name, arg.OwnerName, arg.Location, arg.PersonalitySummary, arg.ToneWords,
		arg.MessagingStyle, arg.VocabularyUse, arg.VocabularyAvoid, arg.AIGuidelines,
		arg.PostsPerWeek, now, now)
	return scanProfile(row)
}

// GetProfile returns a business profile by ID.
func (q *Queries) GetProfile(ctx context.Context, id int64) (model.BusinessProfile, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+profileColumns+` FROM business_profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// ListProfiles returns all business profiles ordered by name.
func (q *Queries) ListProfiles(ctx context.Context) ([]model.BusinessProfile, error) {
	rows, err := q.db.QueryContext(ctx, `SELECT `+profileColumns+` FROM business_profiles ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var profiles []model.BusinessProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// UpdateProfileParams holds the fields for updating a business profile.
// All fields are written; callers load the current row first.
type UpdateProfileParams struct {
	ID                 int64
	Name               string
	OwnerName          string
	Location           string
	PersonalitySummary string
	ToneWords          string
	MessagingStyle     string
	VocabularyUse      string
	VocabularyAvoid    string
	AIGuidelines       string
	PostsPerWeek       int
	WordPressURL       string
	WordPressUsername  string
	WordPressPassword  string
}

// UpdateProfile updates a business profile and returns the updated row.
func (q *Queries) UpdateProfile(ctx context.Context, arg UpdateProfileParams) (model.BusinessProfile, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE business_profiles
		SET name = ?, owner_name = ?, location = ?, personality_summary = ?,
			tone_words = ?, messaging_style = ?, vocabulary_use = ?, vocabulary_avoid = ?,
			ai_guidelines = ?, posts_per_week = ?, wordpress_url = ?, wordpress_username = ?,
			wordpress_password = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+profileColumns,
		arg.Name, arg.OwnerName, arg.Location, arg.PersonalitySummary, arg.ToneWords,
		arg.MessagingStyle, arg.VocabularyUse, arg.VocabularyAvoid, arg.AIGuidelines,
		arg.PostsPerWeek, arg.WordPressURL, arg.WordPressUsername, arg.WordPressPassword,
		time.Now().UTC(), arg.ID)
	return scanProfile(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (model.BusinessProfile, error) {
	var p model.BusinessProfile
	err := row.Scan(&p.ID, &p.Name, &p.OwnerName, &p.Location, &p.PersonalitySummary,
		&p.ToneWords, &p.MessagingStyle, &p.VocabularyUse, &p.VocabularyAvoid,
		&p.AIGuidelines, &p.PostsPerWeek, &p.WordPressURL, &p.WordPressUsername,
		&p.WordPressPassword, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import (
	"database/sql"
	"time"
)

// RawEventRecord is an unclassified text blob pushed in by an external
// automation. Records form a shared pool with no business ownership; the
// classifier pass consumes unprocessed rows and flips the flag.
type RawEventRecord struct {
	ID         int64        `json:"id"`
	SourceName string       `json:"source_name"`
	SourceURL  string       `json:"source_url"`
	RawText    string       `json:"raw_text"`
	Processed  bool         `json:"processed"`
	CreatedAt  time.Time    `json:"created_at"`
	ProcessedAt sql.NullTime `json:"-"`
}

// EventCandidate is one structured event extracted by the classifier from
// raw source text. Relevance is scored 1-10 by the model; the pipeline
// enforces the keep threshold in code.
type EventCandidate struct {
	Name           string `json:"name"`
	Date           string `json:"date"`
	Location       string `json:"location"`
	Description    string `json:"description"`
	RelevanceScore int    `json:"relevance_score"`
}

// RelevanceThreshold is the minimum relevance score a candidate needs to
// reach brief materialization. Scores of 8 and above are considered squarely
// on-topic; 6-7 are adjacent but worth a brief.
const RelevanceThreshold = 6

// Activity log levels.
const (
	ActivityLevelInfo    = "info"
	ActivityLevelWarning = "warning"
	ActivityLevelError   = "error"
)

// Activity log categories.
const (
	ActivityCategoryPipeline  = "pipeline"
	ActivityCategoryDiscovery = "discovery"
	ActivityCategoryContent   = "content"
	ActivityCategoryPublish   = "publish"
	ActivityCategorySystem    = "system"
)

// Activity is a system activity log entry.
type Activity struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Category  string    `json:"category"`
	Message   string    `json:"message"`
	Metadata  string    `json:"metadata"` // JSON string
	CreatedAt time.Time `json:"created_at"`
}

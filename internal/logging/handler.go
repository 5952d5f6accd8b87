// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that integrates with the
// activity log. It forwards logs at WARN level and above to the
// database-backed activity log for the dashboard's activity feed.
package logging

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

// ActivityLogHandler is a slog.Handler that wraps another handler and also
// writes WARN and ERROR level logs to the activity log table.
type ActivityLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level // Minimum level to forward to the activity log
}

// NewActivityLogHandler creates a handler that tees WARN and above into the
// activity log while forwarding everything to the wrapped handler.
func NewActivityLogHandler(inner slog.Handler, db *sql.DB) *ActivityLogHandler {
	return &ActivityLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// Enabled implements slog.Handler.
func (h *ActivityLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *ActivityLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}

	if r.Level >= h.level {
		h.writeToActivityLog(r)
	}

	return nil
}

// WithAttrs implements slog.Handler.
func (h *ActivityLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ActivityLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *ActivityLogHandler) WithGroup(name string) slog.Handler {
	return &ActivityLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

// writeToActivityLog persists a log record. A background context is used so
// the entry survives cancellation of the request that produced it.
func (h *ActivityLogHandler) writeToActivityLog(r slog.Record) {
	_, _ = h.queries.CreateActivity(context.Background(), store.CreateActivityParams{
		Level:    slogLevelToActivityLevel(r.Level),
		Category: extractCategory(r),
		Message:  r.Message,
		Metadata: extractMetadata(r),
	})
}

func slogLevelToActivityLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.ActivityLevelError
	case level >= slog.LevelWarn:
		return model.ActivityLevelWarning
	default:
		return model.ActivityLevelInfo
	}
}

// extractCategory looks for a "category" attribute, falling back to
// inference from the message text.
func extractCategory(r slog.Record) string {
	var category string

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})

	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "pipeline") || strings.Contains(msg, "scan"):
		return model.ActivityCategoryPipeline
	case strings.Contains(msg, "discover") || strings.Contains(msg, "source") || strings.Contains(msg, "fetch"):
		return model.ActivityCategoryDiscovery
	case strings.Contains(msg, "content") || strings.Contains(msg, "generat"):
		return model.ActivityCategoryContent
	case strings.Contains(msg, "publish") || strings.Contains(msg, "wordpress"):
		return model.ActivityCategoryPublish
	default:
		return model.ActivityCategorySystem
	}
}

// extractMetadata collects log attributes into a JSON object string.
func extractMetadata(r slog.Record) string {
	if r.NumAttrs() == 0 {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true

	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true // Already extracted
		}
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(fmt.Sprintf("%q:%q", a.Key, a.Value.String()))
		return true
	})

	sb.WriteString("}")
	return sb.String()
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/craftvoice/craftvoice/internal/store"
)

// RecordMetricRequest is one engagement sample from the analytics feed.
type RecordMetricRequest struct {
	ContentID int64 `json:"content_id"`
	Views     int64 `json:"views"`
	Clicks    int64 `json:"clicks"`
	Signups   int64 `json:"signups"`
}

// RecordMetric handles POST /api/v1/metrics.
func (h *Handler) RecordMetric(w http.ResponseWriter, r *http.Request) {
	var req RecordMetricRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.ContentID == 0 {
		WriteValidationError(w, map[string]string{"content_id": "Content ID is required"})
		return
	}

	ctx := r.Context()
	if _, err := h.queries.GetContentItem(ctx, req.ContentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content item not found")
		} else {
			WriteInternalError(w, "Failed to verify content item")
		}
		return
	}

	metric, err := h.queries.RecordMetric(ctx, store.RecordMetricParams{
		ContentID: req.ContentID,
		Views:     req.Views,
		Clicks:    req.Clicks,
		Signups:   req.Signups,
	})
	if err != nil {
		WriteInternalError(w, "Failed to record metric")
		return
	}
	WriteCreated(w, metric)
}

// GetMetricSummary handles GET /api/v1/metrics?content_id=N. A content item
// with no samples yields a zero summary.
func (h *Handler) GetMetricSummary(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("content_id")
	if raw == "" {
		WriteBadRequest(w, "content_id query parameter is required", nil)
		return
	}
	contentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		WriteBadRequest(w, "Invalid content_id", nil)
		return
	}

	summary, err := h.queries.GetMetricSummary(r.Context(), contentID)
	if err != nil {
		WriteInternalError(w, "Failed to summarize metrics")
		return
	}
	WriteSuccess(w, summary, nil)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
)

// ListBriefs handles GET /api/v1/briefs with an optional profile_id filter.
func (h *Handler) ListBriefs(w http.ResponseWriter, r *http.Request) {
	var profileID int64
	if raw := r.URL.Query().Get("profile_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			WriteBadRequest(w, "Invalid profile_id", nil)
			return
		}
		profileID = id
	}

	briefs, err := h.queries.ListBriefs(r.Context(), profileID)
	if err != nil {
		WriteInternalError(w, "Failed to list briefs")
		return
	}
	WriteSuccess(w, briefs, &Meta{Total: int64(len(briefs))})
}

// GetBrief handles GET /api/v1/briefs/{id}.
func (h *Handler) GetBrief(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid brief ID", nil)
		return
	}

	brief, err := h.queries.GetBrief(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Brief not found")
		} else {
			WriteInternalError(w, "Failed to retrieve brief")
		}
		return
	}
	WriteSuccess(w, brief, nil)
}

// DeleteBrief handles DELETE /api/v1/briefs/{id}. Content items generated
// from the brief are deleted with it; the response reports how many.
func (h *Handler) DeleteBrief(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid brief ID", nil)
		return
	}

	deleted, err := h.queries.DeleteBrief(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Brief not found")
		} else {
			WriteInternalError(w, "Failed to delete brief")
		}
		return
	}

	WriteSuccess(w, map[string]any{
		"deleted":               true,
		"content_items_deleted": deleted,
	}, nil)
}

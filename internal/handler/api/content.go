// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/store"
)

// CreateContentRequest is the request body for manually creating a content item.
type CreateContentRequest struct {
	ProfileID   int64   `json:"profile_id"`
	BriefID     *int64  `json:"brief_id,omitempty"`
	Title       string  `json:"title"`
	Body        string  `json:"body"`
	ContentType string  `json:"content_type"`
	Status      string  `json:"status,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
}

// UpdateContentRequest is the request body for updating a content item.
// Absent fields keep their current value.
type UpdateContentRequest struct {
	Title       *string `json:"title,omitempty"`
	Body        *string `json:"body,omitempty"`
	ContentType *string `json:"content_type,omitempty"`
	Status      *string `json:"status,omitempty"`
	ScheduledAt *string `json:"scheduled_at,omitempty"`
}

// UpdateStatusRequest is the request body for PATCH /content/{id}/status.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func parseScheduledAt(raw string) (sql.NullTime, error) {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return sql.NullTime{}, err
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}, nil
}

// CreateContent handles POST /api/v1/content.
func (h *Handler) CreateContent(w http.ResponseWriter, r *http.Request) {
	var req CreateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := map[string]string{}
	if req.ProfileID == 0 {
		fieldErrors["profile_id"] = "Profile ID is required"
	}
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if !model.IsValidContentType(req.ContentType) {
		fieldErrors["content_type"] = "Unknown content type"
	}
	status := req.Status
	if status == "" {
		status = model.ContentStatusDraft
	}
	if !model.IsValidContentStatus(status) {
		fieldErrors["status"] = "Unknown status"
	}

	var scheduledAt sql.NullTime
	if req.ScheduledAt != nil {
		var err error
		scheduledAt, err = parseScheduledAt(*req.ScheduledAt)
		if err != nil {
			fieldErrors["scheduled_at"] = "Must be RFC3339"
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	if _, err := h.queries.GetProfile(ctx, req.ProfileID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
		} else {
			WriteInternalError(w, "Failed to verify profile")
		}
		return
	}

	var briefID sql.NullInt64
	if req.BriefID != nil {
		briefID = sql.NullInt64{Int64: *req.BriefID, Valid: true}
	}

	item, err := h.queries.CreateContentItem(ctx, store.CreateContentItemParams{
		ProfileID:        req.ProfileID,
		BriefID:          briefID,
		Title:            req.Title,
		Body:             req.Body,
		ContentType:      req.ContentType,
		Status:           status,
		GenerationMethod: model.GenerationMethodManual,
		ScheduledAt:      scheduledAt,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create content item")
		return
	}

	WriteCreated(w, item)
}

// ListContent handles GET /api/v1/content with optional status, type and
// profile filters.
func (h *Handler) ListContent(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	params := store.ListContentItemsParams{
		Status:      q.Get("status"),
		ContentType: q.Get("type"),
	}
	if raw := q.Get("profile_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			WriteBadRequest(w, "Invalid profile_id", nil)
			return
		}
		params.ProfileID = id
	}
	if params.Status != "" && !model.IsValidContentStatus(params.Status) {
		WriteBadRequest(w, "Unknown status filter", nil)
		return
	}

	items, err := h.queries.ListContentItems(r.Context(), params)
	if err != nil {
		WriteInternalError(w, "Failed to list content")
		return
	}
	WriteSuccess(w, items, &Meta{Total: int64(len(items))})
}

// GetContent handles GET /api/v1/content/{id}.
func (h *Handler) GetContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	item, err := h.queries.GetContentItem(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content item not found")
		} else {
			WriteInternalError(w, "Failed to retrieve content item")
		}
		return
	}
	WriteSuccess(w, item, nil)
}

// UpdateContent handles PUT /api/v1/content/{id}.
func (h *Handler) UpdateContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	var req UpdateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	ctx := r.Context()
	current, err := h.queries.GetContentItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content item not found")
		} else {
			WriteInternalError(w, "Failed to retrieve content item")
		}
		return
	}

	params := store.UpdateContentItemParams{
		ID:          current.ID,
		Title:       current.Title,
		Body:        current.Body,
		ContentType: current.ContentType,
		Status:      current.Status,
		ScheduledAt: current.ScheduledAt,
	}

	fieldErrors := map[string]string{}
	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			fieldErrors["title"] = "Title cannot be empty"
		}
		params.Title = *req.Title
	}
	if req.Body != nil {
		params.Body = *req.Body
	}
	if req.ContentType != nil {
		if !model.IsValidContentType(*req.ContentType) {
			fieldErrors["content_type"] = "Unknown content type"
		}
		params.ContentType = *req.ContentType
	}
	if req.Status != nil {
		if !model.IsValidContentStatus(*req.Status) {
			fieldErrors["status"] = "Unknown status"
		}
		params.Status = *req.Status
	}
	if req.ScheduledAt != nil {
		if *req.ScheduledAt == "" {
			params.ScheduledAt = sql.NullTime{}
		} else {
			scheduled, err := parseScheduledAt(*req.ScheduledAt)
			if err != nil {
				fieldErrors["scheduled_at"] = "Must be RFC3339"
			}
			params.ScheduledAt = scheduled
		}
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	item, err := h.queries.UpdateContentItem(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update content item")
		return
	}
	WriteSuccess(w, item, nil)
}

// UpdateContentStatus handles PATCH /api/v1/content/{id}/status.
func (h *Handler) UpdateContentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if !model.IsValidContentStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Unknown status"})
		return
	}

	item, err := h.queries.UpdateContentStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content item not found")
		} else {
			WriteInternalError(w, "Failed to update status")
		}
		return
	}
	WriteSuccess(w, item, nil)
}

// DeleteContent handles DELETE /api/v1/content/{id}.
func (h *Handler) DeleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	if err := h.queries.DeleteContentItem(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content item not found")
		} else {
			WriteInternalError(w, "Failed to delete content item")
		}
		return
	}
	WriteSuccess(w, map[string]any{"deleted": true}, nil)
}

// PublishContent handles POST /api/v1/content/{id}/publish.
func (h *Handler) PublishContent(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid content ID", nil)
		return
	}

	ctx := r.Context()
	item, err := h.queries.GetContentItem(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Content item not found")
		} else {
			WriteInternalError(w, "Failed to retrieve content item")
		}
		return
	}

	profile, err := h.profiles.Get(ctx, item.ProfileID)
	if err != nil {
		WriteInternalError(w, "Failed to retrieve profile")
		return
	}
	if !profile.HasWordPressCredentials() {
		WriteBadRequest(w, "Profile has no WordPress credentials", nil)
		return
	}

	result, err := h.pub.Publish(ctx, profile, item)
	if err != nil {
		h.logger.Error("publish failed", "category", "publish",
			"content_id", item.ID, "error", err)
		WriteError(w, http.StatusBadGateway, "publish_failed", "WordPress publish failed",
			map[string]string{"reason": err.Error()})
		return
	}

	updated, err := h.queries.UpdateContentStatus(ctx, item.ID, model.ContentStatusPublished)
	if err != nil {
		WriteInternalError(w, "Published but failed to update status")
		return
	}

	WriteSuccess(w, map[string]any{
		"content_item": updated,
		"remote_id":    result.RemoteID,
		"remote_url":   result.RemoteURL,
		"slug":         result.Slug,
	}, nil)
}

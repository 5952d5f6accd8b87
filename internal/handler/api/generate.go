// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/craftvoice/craftvoice/internal/generator"
	"github.com/craftvoice/craftvoice/internal/model"
)

// GenerateContentRequest is the request body for POST /api/v1/content/generate.
type GenerateContentRequest struct {
	ProfileID       int64                    `json:"profile_id"`
	ContentRequest  generator.ContentRequest `json:"content_request"`
	ResearchBriefID *int64                   `json:"research_brief_id,omitempty"`
}

// GenerateContent handles POST /api/v1/content/generate.
func (h *Handler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	var req GenerateContentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}
	if req.ProfileID == 0 {
		WriteValidationError(w, map[string]string{"profile_id": "Profile ID is required"})
		return
	}

	ctx := r.Context()
	profile, err := h.profiles.Get(ctx, req.ProfileID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
		} else {
			WriteInternalError(w, "Failed to retrieve profile")
		}
		return
	}

	contentReq := req.ContentRequest
	var brief *model.ResearchBrief
	if req.ResearchBriefID != nil {
		b, err := h.queries.GetBrief(ctx, *req.ResearchBriefID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				WriteNotFound(w, "Brief not found")
			} else {
				WriteInternalError(w, "Failed to retrieve brief")
			}
			return
		}
		brief = &b
		if contentReq.ContentType == "" && contentReq.PrimaryTopic == "" {
			contentReq = generator.RequestFromBrief(b)
		}
	}

	out, err := h.gen.Generate(ctx, profile, contentReq, brief)
	if err != nil {
		if strings.Contains(err.Error(), "unsupported content type") {
			WriteValidationError(w, map[string]string{"content_type": err.Error()})
			return
		}
		h.logger.Error("content generation failed", "category", "content",
			"profile_id", profile.ID, "error", err)
		WriteError(w, http.StatusBadGateway, "generation_failed",
			"Content generation failed", map[string]string{"reason": err.Error()})
		return
	}

	WriteCreated(w, out)
}

// AnalyzeVoiceRequest is the request body for POST /api/v1/brand-voice/analyze.
type AnalyzeVoiceRequest struct {
	DocumentText string `json:"document_text"`
}

// AnalyzeBrandVoice handles POST /api/v1/brand-voice/analyze.
func (h *Handler) AnalyzeBrandVoice(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeVoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	analysis, err := h.gen.AnalyzeVoice(r.Context(), req.DocumentText)
	if err != nil {
		if strings.Contains(err.Error(), "too short") {
			WriteValidationError(w, map[string]string{"document_text": "At least 50 characters of sample text are required"})
			return
		}
		h.logger.Error("brand voice analysis failed", "category", "content", "error", err)
		WriteError(w, http.StatusBadGateway, "analysis_failed",
			"Brand voice analysis failed", map[string]string{"reason": err.Error()})
		return
	}

	WriteSuccess(w, analysis, nil)
}

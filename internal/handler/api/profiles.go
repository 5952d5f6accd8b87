// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/craftvoice/craftvoice/internal/store"
)

// CreateProfileRequest is the request body for creating a business profile.
type CreateProfileRequest struct {
	Name               string `json:"name"`
	OwnerName          string `json:"owner_name"`
	Location           string `json:"location"`
	PersonalitySummary string `json:"personality_summary"`
	ToneWords          string `json:"tone_words"`
	MessagingStyle     string `json:"messaging_style"`
	VocabularyUse      string `json:"vocabulary_use"`
	VocabularyAvoid    string `json:"vocabulary_avoid"`
	AIGuidelines       string `json:"ai_guidelines"`
	PostsPerWeek       int    `json:"posts_per_week"`
}

// UpdateProfileRequest is the request body for updating a profile. Absent
// fields keep their current value.
type UpdateProfileRequest struct {
	Name               *string `json:"name,omitempty"`
	OwnerName          *string `json:"owner_name,omitempty"`
	Location           *string `json:"location,omitempty"`
	PersonalitySummary *string `json:"personality_summary,omitempty"`
	ToneWords          *string `json:"tone_words,omitempty"`
	MessagingStyle     *string `json:"messaging_style,omitempty"`
	VocabularyUse      *string `json:"vocabulary_use,omitempty"`
	VocabularyAvoid    *string `json:"vocabulary_avoid,omitempty"`
	AIGuidelines       *string `json:"ai_guidelines,omitempty"`
	PostsPerWeek       *int    `json:"posts_per_week,omitempty"`
	WordPressURL       *string `json:"wordpress_url,omitempty"`
	WordPressUsername  *string `json:"wordpress_username,omitempty"`
	WordPressPassword  *string `json:"wordpress_password,omitempty"`
}

// CreateProfile handles POST /api/v1/profiles.
func (h *Handler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.Name) == "" {
		fieldErrors["name"] = "Name is required"
	}
	if strings.TrimSpace(req.Location) == "" {
		fieldErrors["location"] = "Location is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	profile, err := h.queries.CreateProfile(r.Context(), store.CreateProfileParams{
		Name:               req.Name,
		OwnerName:          req.OwnerName,
		Location:           req.Location,
		PersonalitySummary: req.PersonalitySummary,
		ToneWords:          req.ToneWords,
		MessagingStyle:     req.MessagingStyle,
		VocabularyUse:      req.VocabularyUse,
		VocabularyAvoid:    req.VocabularyAvoid,
		AIGuidelines:       req.AIGuidelines,
		PostsPerWeek:       req.PostsPerWeek,
	})
	if err != nil {
		WriteInternalError(w, "Failed to create profile")
		return
	}

	WriteCreated(w, profile)
}

// ListProfiles handles GET /api/v1/profiles.
func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.queries.ListProfiles(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list profiles")
		return
	}
	WriteSuccess(w, profiles, &Meta{Total: int64(len(profiles))})
}

// GetProfile handles GET /api/v1/profiles/{id}.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid profile ID", nil)
		return
	}

	profile, err := h.profiles.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
		} else {
			WriteInternalError(w, "Failed to retrieve profile")
		}
		return
	}
	WriteSuccess(w, profile, nil)
}

// UpdateProfile handles PUT /api/v1/profiles/{id}.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid profile ID", nil)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	ctx := r.Context()
	current, err := h.queries.GetProfile(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Profile not found")
		} else {
			WriteInternalError(w, "Failed to retrieve profile")
		}
		return
	}

	params := store.UpdateProfileParams{
		ID:                 current.ID,
		Name:               current.Name,
		OwnerName:          current.OwnerName,
		Location:           current.Location,
		PersonalitySummary: current.PersonalitySummary,
		ToneWords:          current.ToneWords,
		MessagingStyle:     current.MessagingStyle,
		VocabularyUse:      current.VocabularyUse,
		VocabularyAvoid:    current.VocabularyAvoid,
		AIGuidelines:       current.AIGuidelines,
		PostsPerWeek:       current.PostsPerWeek,
		WordPressURL:       current.WordPressURL,
		WordPressUsername:  current.WordPressUsername,
		WordPressPassword:  current.WordPressPassword,
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			WriteValidationError(w, map[string]string{"name": "Name cannot be empty"})
			return
		}
		params.Name = *req.Name
	}
	if req.OwnerName != nil {
		params.OwnerName = *req.OwnerName
	}
	if req.Location != nil {
		params.Location = *req.Location
	}
	if req.PersonalitySummary != nil {
		params.PersonalitySummary = *req.PersonalitySummary
	}
	if req.ToneWords != nil {
		params.ToneWords = *req.ToneWords
	}
	if req.MessagingStyle != nil {
		params.MessagingStyle = *req.MessagingStyle
	}
	if req.VocabularyUse != nil {
		params.VocabularyUse = *req.VocabularyUse
	}
	if req.VocabularyAvoid != nil {
		params.VocabularyAvoid = *req.VocabularyAvoid
	}
	if req.AIGuidelines != nil {
		params.AIGuidelines = *req.AIGuidelines
	}
	if req.PostsPerWeek != nil {
		if *req.PostsPerWeek <= 0 {
			WriteValidationError(w, map[string]string{"posts_per_week": "Must be positive"})
			return
		}
		params.PostsPerWeek = *req.PostsPerWeek
	}
	if req.WordPressURL != nil {
		params.WordPressURL = *req.WordPressURL
	}
	if req.WordPressUsername != nil {
		params.WordPressUsername = *req.WordPressUsername
	}
	if req.WordPressPassword != nil {
		params.WordPressPassword = *req.WordPressPassword
	}

	profile, err := h.queries.UpdateProfile(ctx, params)
	if err != nil {
		WriteInternalError(w, "Failed to update profile")
		return
	}

	h.profiles.Invalidate(ctx, id)
	WriteSuccess(w, profile, nil)
}

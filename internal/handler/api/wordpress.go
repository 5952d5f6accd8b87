// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/craftvoice/craftvoice/internal/model"
)

// TestWordPressRequest carries the credentials to verify. Credentials are
// tested as given, without touching any stored profile.
type TestWordPressRequest struct {
	WordPressURL      string `json:"wordpress_url"`
	WordPressUsername string `json:"wordpress_username"`
	WordPressPassword string `json:"wordpress_password"`
}

// TestWordPress handles POST /api/v1/wordpress/test. The result is always a
// 200 with success true or false; upstream rejection detail rides along in
// the result, never as a transport error.
func (h *Handler) TestWordPress(w http.ResponseWriter, r *http.Request) {
	var req TestWordPressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	fieldErrors := map[string]string{}
	if strings.TrimSpace(req.WordPressURL) == "" {
		fieldErrors["wordpress_url"] = "URL is required"
	}
	if strings.TrimSpace(req.WordPressUsername) == "" {
		fieldErrors["wordpress_username"] = "Username is required"
	}
	if strings.TrimSpace(req.WordPressPassword) == "" {
		fieldErrors["wordpress_password"] = "Application password is required"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	result := h.pub.TestConnection(r.Context(), model.BusinessProfile{
		WordPressURL:      req.WordPressURL,
		WordPressUsername: req.WordPressUsername,
		WordPressPassword: req.WordPressPassword,
	})
	WriteSuccess(w, result, nil)
}

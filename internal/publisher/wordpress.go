// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package publisher pushes approved content items to external platforms.
// WordPress is the only adapter today; the Publisher interface keeps room
// for others.
package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/mozillazg/go-unidecode"

	"github.com/craftvoice/craftvoice/internal/model"
)

// HTTP client configuration constants
const (
	RequestTimeout = 30 * time.Second // HTTP request timeout
	MaxResponseLen = 10 * 1024        // Maximum response body to report (10KB)
	UserAgent      = "CraftVoice/1.0" // User-Agent header value
)

// Publisher pushes a content item to one external platform.
type Publisher interface {
	// TestConnection verifies credentials without writing anything. It
	// reports failure in the result rather than as an error: only context
	// cancellation escapes.
	TestConnection(ctx context.Context, profile model.BusinessProfile) ConnectionResult

	// Publish creates a post on the platform and returns its remote URL.
	Publish(ctx context.Context, profile model.BusinessProfile, item model.ContentItem) (*PublishResult, error)
}

// ConnectionResult reports a credential check.
type ConnectionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    string `json:"user,omitempty"`
	Details string `json:"details,omitempty"`
}

// PublishResult reports a successful publish.
type PublishResult struct {
	RemoteID  int64  `json:"remote_id"`
	RemoteURL string `json:"remote_url"`
	Slug      string `json:"slug"`
}

// httpClient is the shared HTTP client with appropriate timeouts.
var httpClient = &http.Client{
	Timeout: RequestTimeout,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	},
}

// WordPress publishes via the wp-json/wp/v2 REST API with application
// password basic auth.
type WordPress struct {
	client *http.Client
	logger *slog.Logger
}

// NewWordPress creates a WordPress publisher. A nil client uses the shared
// default.
func NewWordPress(client *http.Client, logger *slog.Logger) *WordPress {
	if client == nil {
		client = httpClient
	}
	return &WordPress{client: client, logger: logger}
}

func (w *WordPress) TestConnection(ctx context.Context, profile model.BusinessProfile) ConnectionResult {
	if !profile.HasWordPressCredentials() {
		return ConnectionResult{
			Success: false,
			Message: "WordPress credentials are not configured for this profile",
		}
	}

	url := strings.TrimSuffix(profile.WordPressURL, "/") + "/wp-json/wp/v2/users/me"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ConnectionResult{Success: false, Message: "invalid WordPress URL", Details: err.Error()}
	}
	req.SetBasicAuth(profile.WordPressUsername, profile.WordPressPassword)
	req.Header.Set("User-Agent", UserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return ConnectionResult{Success: false, Message: "could not reach WordPress site", Details: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode != http.StatusOK {
		w.logger.Warn("wordpress connection test failed",
			"category", "publish",
			"profile_id", profile.ID,
			"status_code", resp.StatusCode)
		return ConnectionResult{
			Success: false,
			Message: "WordPress rejected the credentials",
			Details: fmt.Sprintf("upstream status %d: %s", resp.StatusCode, truncate(string(body), 200)),
		}
	}

	var user struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(body, &user); err != nil {
		return ConnectionResult{Success: false, Message: "unexpected response from WordPress", Details: err.Error()}
	}

	return ConnectionResult{
		Success: true,
		Message: "connected to WordPress",
		User:    user.Name,
	}
}

func (w *WordPress) Publish(ctx context.Context, profile model.BusinessProfile, item model.ContentItem) (*PublishResult, error) {
	if !profile.HasWordPressCredentials() {
		return nil, fmt.Errorf("profile %d has no WordPress credentials", profile.ID)
	}

	slug := Slugify(item.Title)
	payload, err := json.Marshal(map[string]any{
		"title":   item.Title,
		"content": item.Body,
		"slug":    slug,
		"status":  "publish",
	})
	if err != nil {
		return nil, fmt.Errorf("encoding post payload: %w", err)
	}

	url := strings.TrimSuffix(profile.WordPressURL, "/") + "/wp-json/wp/v2/posts"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building publish request: %w", err)
	}
	req.SetBasicAuth(profile.WordPressUsername, profile.WordPressPassword)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("publishing to WordPress: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, MaxResponseLen))

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("WordPress publish failed: status %d: %s",
			resp.StatusCode, truncate(string(body), 200))
	}

	var post struct {
		ID   int64  `json:"id"`
		Link string `json:"link"`
	}
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, fmt.Errorf("parsing publish response: %w", err)
	}

	w.logger.Info("content published to WordPress",
		"category", "publish",
		"content_id", item.ID,
		"remote_id", post.ID,
		"url", post.Link)

	return &PublishResult{RemoteID: post.ID, RemoteURL: post.Link, Slug: slug}, nil
}

var slugCleanup = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns a title into a URL slug, transliterating non-ASCII runes.
func Slugify(title string) string {
	s := strings.ToLower(unidecode.Unidecode(title))
	s = slugCleanup.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

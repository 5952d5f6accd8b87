// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/craftvoice/craftvoice/internal/discovery"
	"github.com/craftvoice/craftvoice/internal/pipeline"
	"github.com/craftvoice/craftvoice/internal/store"
)

// ScanRequest is the request body for triggering a discovery run.
type ScanRequest struct {
	ManualTrigger   bool       `json:"manual_trigger,omitempty"`
	GenerateContent bool       `json:"generate_content,omitempty"`
	ProfileID       int64      `json:"profile_id,omitempty"`
	DateRange       *DateRange `json:"date_range,omitempty"`
}

// DateRange bounds candidate event dates, inclusive, as yyyy-mm-dd.
type DateRange struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ScanLocalEvents handles POST /api/v1/pipeline/scan-local-events. The run
// is synchronous; the response is the full run report.
func (h *Handler) ScanLocalEvents(w http.ResponseWriter, r *http.Request) {
	// An empty body is a valid trigger; malformed JSON is not.
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteBadRequest(w, "Invalid JSON in request body", map[string]string{
			"body": err.Error(),
		})
		return
	}

	opts := pipeline.Options{
		GenerateContent: req.GenerateContent,
		ProfileID:       req.ProfileID,
	}
	if req.DateRange != nil {
		opts.DateStart = req.DateRange.StartDate
		opts.DateEnd = req.DateRange.EndDate
	}

	summary, err := h.pipe.Run(r.Context(), opts)
	if err != nil {
		if errors.Is(err, discovery.ErrAllSourcesFailed) {
			WriteJSON(w, http.StatusBadGateway, ErrorResponse{
				Error: ErrorDetail{
					Code:    "all_sources_failed",
					Message: "Every discovery source failed; nothing was scraped",
					Details: map[string]string{
						"failed_sources":  strconv.Itoa(summary.FailedSources),
						"scraped_sources": strconv.Itoa(summary.ScrapedSources),
						"run_id":          summary.RunID,
					},
				},
			})
			return
		}
		WriteInternalError(w, "Pipeline run failed")
		return
	}

	WriteSuccess(w, summary, nil)
}

// RawEventInput is one pushed event in an ingest request.
type RawEventInput struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Description string `json:"description"`
	PubDate     string `json:"pubDate"`
}

// IngestRequest is the request body for POST /api/v1/ingest/raw-events.
type IngestRequest struct {
	Events []RawEventInput `json:"events"`
}

// IngestResponse reports how many pushed events were stored.
type IngestResponse struct {
	Success         bool `json:"success"`
	EventsProcessed int  `json:"events_processed"`
}

// IngestRawEvents handles POST /api/v1/ingest/raw-events. Pushed events are
// stored unprocessed; the next pipeline run in push mode classifies them. An
// empty or missing events array succeeds with a zero count.
func (h *Handler) IngestRawEvents(w http.ResponseWriter, r *http.Request) {
	var req IngestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return
	}

	ctx := r.Context()
	processed := 0
	for _, ev := range req.Events {
		text := rawEventText(ev)
		if text == "" {
			continue
		}
		if _, err := h.queries.CreateRawEvent(ctx, store.CreateRawEventParams{
			SourceName: "push",
			SourceURL:  ev.Link,
			RawText:    text,
		}); err != nil {
			h.logger.Error("failed to store pushed event",
				"category", "discovery", "title", ev.Title, "error", err)
			continue
		}
		processed++
	}

	WriteSuccess(w, IngestResponse{Success: true, EventsProcessed: processed}, nil)
}

func rawEventText(ev RawEventInput) string {
	var parts []string
	if strings.TrimSpace(ev.Title) != "" {
		parts = append(parts, ev.Title)
	}
	if strings.TrimSpace(ev.Description) != "" {
		parts = append(parts, ev.Description)
	}
	if strings.TrimSpace(ev.PubDate) != "" {
		parts = append(parts, fmt.Sprintf("Published: %s", ev.PubDate))
	}
	return strings.Join(parts, "\n")
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"
)

// Routes mounts all /api/v1 routes on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/status", h.Status)

	r.Post("/pipeline/scan-local-events", h.ScanLocalEvents)
	r.Post("/ingest/raw-events", h.IngestRawEvents)
	r.Post("/brand-voice/analyze", h.AnalyzeBrandVoice)
	r.Post("/wordpress/test", h.TestWordPress)

	r.Route("/profiles", func(r chi.Router) {
		r.Post("/", h.CreateProfile)
		r.Get("/", h.ListProfiles)
		r.Get("/{id}", h.GetProfile)
		r.Put("/{id}", h.UpdateProfile)
	})

	r.Route("/content", func(r chi.Router) {
		r.Post("/", h.CreateContent)
		r.Get("/", h.ListContent)
		r.Post("/generate", h.GenerateContent)
		r.Get("/{id}", h.GetContent)
		r.Put("/{id}", h.UpdateContent)
		r.Patch("/{id}/status", h.UpdateContentStatus)
		r.Delete("/{id}", h.DeleteContent)
		r.Post("/{id}/publish", h.PublishContent)
	})

	r.Route("/briefs", func(r chi.Router) {
		r.Get("/", h.ListBriefs)
		r.Get("/{id}", h.GetBrief)
		r.Delete("/{id}", h.DeleteBrief)
	})

	r.Route("/metrics", func(r chi.Router) {
		r.Post("/", h.RecordMetric)
		r.Get("/", h.GetMetricSummary)
	})
}

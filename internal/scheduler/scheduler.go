// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background jobs: publishing scheduled content
// every minute and the daily event-discovery scan.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/pipeline"
	"github.com/craftvoice/craftvoice/internal/publisher"
	"github.com/craftvoice/craftvoice/internal/store"
)

// Scheduler owns the cron instance and its jobs.
type Scheduler struct {
	queries  *store.Queries
	pub      publisher.Publisher
	pipe     *pipeline.Pipeline
	cron     *cron.Cron
	schedule string
	logger   *slog.Logger
}

// New creates a scheduler. schedule is the cron expression for the discovery
// scan; an empty string disables it.
func New(queries *store.Queries, pub publisher.Publisher, pipe *pipeline.Pipeline, schedule string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		queries:  queries,
		pub:      pub,
		pipe:     pipe,
		cron:     cron.New(),
		schedule: schedule,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() error {
	_, err := s.cron.AddFunc("* * * * *", func() {
		if err := s.processScheduledContent(); err != nil {
			s.logger.Error("failed to process scheduled content",
				"category", "publish", "error", err)
		}
	})
	if err != nil {
		return err
	}

	if s.schedule != "" && s.pipe != nil {
		_, err = s.cron.AddFunc(s.schedule, func() {
			s.runDiscoveryScan()
		})
		if err != nil {
			return err
		}
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "category", "system",
		"jobs", len(s.cron.Entries()), "scan_schedule", s.schedule)
	return nil
}

// Stop waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped", "category", "system")
}

// processScheduledContent publishes every item whose scheduled time has
// passed. Items on profiles with WordPress credentials go out over the
// publisher first; a failed external publish moves the item back to
// ready_for_review so it does not retry blindly every minute.
func (s *Scheduler) processScheduledContent() error {
	ctx := context.Background()
	now := time.Now().UTC()

	items, err := s.queries.ListScheduledContentDue(ctx, now)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	s.logger.Info("processing scheduled content", "category", "publish", "count", len(items))

	for _, item := range items {
		s.publishItem(ctx, item)
	}
	return nil
}

func (s *Scheduler) publishItem(ctx context.Context, item model.ContentItem) {
	profile, err := s.queries.GetProfile(ctx, item.ProfileID)
	if err != nil {
		s.logger.Error("profile lookup failed for scheduled item",
			"category", "publish", "content_id", item.ID, "error", err)
		return
	}

	if profile.HasWordPressCredentials() && s.pub != nil {
		result, err := s.pub.Publish(ctx, profile, item)
		if err != nil {
			s.logger.Error("scheduled publish failed, returning item for review",
				"category", "publish", "content_id", item.ID,
				"content_title", item.Title, "error", err)
			if _, err := s.queries.UpdateContentStatus(ctx, item.ID, model.ContentStatusReadyForReview); err != nil {
				s.logger.Error("failed to reset content status",
					"category", "publish", "content_id", item.ID, "error", err)
			}
			return
		}
		s.logger.Info("scheduled content published to WordPress",
			"category", "publish", "content_id", item.ID,
			"remote_url", result.RemoteURL)
	}

	if _, err := s.queries.UpdateContentStatus(ctx, item.ID, model.ContentStatusPublished); err != nil {
		s.logger.Error("failed to mark content published",
			"category", "publish", "content_id", item.ID, "error", err)
		return
	}

	s.logger.Info("scheduled content published",
		"category", "publish", "content_id", item.ID,
		"content_title", item.Title,
		"scheduled_at", item.ScheduledAt.Time)
}

func (s *Scheduler) runDiscoveryScan() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	summary, err := s.pipe.Run(ctx, pipeline.Options{})
	if err != nil {
		s.logger.Error("scheduled discovery scan failed",
			"category", "pipeline", "error", err)
		return
	}
	s.logger.Info("scheduled discovery scan finished",
		"category", "pipeline",
		"run_id", summary.RunID,
		"events_final", summary.EventsFinal,
		"briefs_created", summary.BriefsCreated)
}

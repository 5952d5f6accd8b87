// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package discovery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/craftvoice/craftvoice/internal/store"
)

// pushBatchLimit caps how many raw records one pass consumes.
const pushBatchLimit = 100

// PushAdapter does no fetching of its own. It drains the shared pool of
// RawEventRecords persisted by the inbound webhook; classification happens
// in the caller's decoupled pass, which then marks the records processed
// via their RecordIDs.
type PushAdapter struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewPushAdapter creates the push-ingestion adapter.
func NewPushAdapter(queries *store.Queries, logger *slog.Logger) *PushAdapter {
	return &PushAdapter{queries: queries, logger: logger}
}

// Name implements Adapter.
func (a *PushAdapter) Name() string { return "push" }

// Discover returns unprocessed raw event records as blobs. An empty pool is
// a successful pass with nothing to do, not a failure: the webhook simply
// has not delivered anything new.
func (a *PushAdapter) Discover(ctx context.Context) (*Report, error) {
	records, err := a.queries.ListUnprocessedRawEvents(ctx, pushBatchLimit)
	if err != nil {
		return nil, fmt.Errorf("listing unprocessed raw events: %w", err)
	}

	report := &Report{}
	for _, rec := range records {
		report.addSuccess(
			SourceStatus{Source: rec.SourceName, URL: rec.SourceURL, Chars: len(rec.RawText)},
			Blob{Source: rec.SourceName, URL: rec.SourceURL, Text: rec.RawText, RecordID: rec.ID},
		)
	}

	a.logger.Info("push adapter drained raw event pool", "records", len(records))
	return report, nil
}

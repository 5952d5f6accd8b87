// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package discovery fetches candidate local-event text for the pipeline.
// One Adapter contract, three interchangeable implementations: direct HTTP
// fetch, a third-party scrape API, and a push pool fed by an inbound webhook.
// The deployment picks exactly one via configuration.
package discovery

import (
	"context"
	"errors"
)

// Source kinds.
const (
	SourceKindHTML = "html"
	SourceKindRSS  = "rss"
)

// Source is one configured event listing.
type Source struct {
	Name string
	URL  string
	Kind string
}

// Blob is raw event text from one source. RecordID is set only by the push
// adapter, pointing at the RawEventRecord to flip after classification.
type Blob struct {
	Source   string
	URL      string
	Text     string
	RecordID int64
}

// SourceStatus records the per-source outcome of one discovery pass.
type SourceStatus struct {
	Source string `json:"source"`
	URL    string `json:"url"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
	Chars  int    `json:"chars"`
}

// Report aggregates a discovery pass. Succeeded+Failed always equals the
// number of statuses; callers rely on that to distinguish "found nothing
// relevant" from "could not fetch".
type Report struct {
	Blobs     []Blob
	Statuses  []SourceStatus
	Succeeded int
	Failed    int
}

// ErrAllSourcesFailed is returned when not a single source could be fetched.
// An empty-but-successful pass never carries this error.
var ErrAllSourcesFailed = errors.New("discovery: all sources failed")

// Adapter produces raw event text. Individual source failures never raise;
// they are aggregated into the report. Only the total loss of every source
// is an error.
type Adapter interface {
	Name() string
	Discover(ctx context.Context) (*Report, error)
}

// DefaultSources is the fixed list of public event listings fetched by the
// direct and scrape-API adapters.
func DefaultSources() []Source {
	return []Source{
		{Name: "visit-walla-walla", URL: "https://www.visitwallawalla.com/events/", Kind: SourceKindHTML},
		{Name: "walla-walla-wine", URL: "https://www.wallawallawine.com/events", Kind: SourceKindHTML},
		{Name: "downtown-walla-walla", URL: "https://www.downtownwallawalla.com/events", Kind: SourceKindHTML},
		{Name: "tri-cities-events", URL: "https://www.visittri-cities.com/events/", Kind: SourceKindHTML},
		{Name: "yakima-valley-tourism", URL: "https://www.visityakima.com/events", Kind: SourceKindHTML},
		{Name: "washington-wine", URL: "https://www.washingtonwine.org/events/feed/", Kind: SourceKindRSS},
		{Name: "wine-press-northwest", URL: "https://www.winepressnw.com/news/rss/", Kind: SourceKindRSS},
		{Name: "spokane-events", URL: "https://www.visitspokane.com/events/", Kind: SourceKindHTML},
		{Name: "oregon-wine-board", URL: "https://www.oregonwine.org/events/", Kind: SourceKindHTML},
	}
}

func (r *Report) addSuccess(status SourceStatus, blob Blob) {
	status.OK = true
	r.Statuses = append(r.Statuses, status)
	r.Succeeded++
	if blob.Text != "" {
		r.Blobs = append(r.Blobs, blob)
	}
}

func (r *Report) addFailure(status SourceStatus, err error) {
	status.OK = false
	status.Error = err.Error()
	r.Statuses = append(r.Statuses, status)
	r.Failed++
}

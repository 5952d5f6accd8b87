// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	_ "modernc.org/sqlite"

	"github.com/craftvoice/craftvoice/internal/brief"
	"github.com/craftvoice/craftvoice/internal/cache"
	"github.com/craftvoice/craftvoice/internal/classifier"
	"github.com/craftvoice/craftvoice/internal/discovery"
	"github.com/craftvoice/craftvoice/internal/generator"
	"github.com/craftvoice/craftvoice/internal/model"
	"github.com/craftvoice/craftvoice/internal/pipeline"
	"github.com/craftvoice/craftvoice/internal/publisher"
	"github.com/craftvoice/craftvoice/internal/store"
	"github.com/craftvoice/craftvoice/internal/version"
)

// testDB opens an in-memory SQLite database and applies the real migrations.
// A single connection keeps every query on the same :memory: database.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	if err := store.Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

type fakePublisher struct {
	connResult publisher.ConnectionResult
	pubResult  *publisher.PublishResult
	pubErr     error
}

func (f *fakePublisher) TestConnection(context.Context, model.BusinessProfile) publisher.ConnectionResult {
	return f.connResult
}

func (f *fakePublisher) Publish(context.Context, model.BusinessProfile, model.ContentItem) (*publisher.PublishResult, error) {
	return f.pubResult, f.pubErr
}

type fakeAdapter struct {
	report *discovery.Report
	err    error
}

func (f *fakeAdapter) Name() string { return "fake" }

func (f *fakeAdapter) Discover(context.Context) (*discovery.Report, error) {
	return f.report, f.err
}

type testEnv struct {
	handler *Handler
	queries *store.Queries
	router  chi.Router
	pub     *fakePublisher
	adapter *fakeAdapter
}

// newTestEnv builds a complete API handler on an in-memory database. The LLM
// is left unconfigured, so generation and classification take the demo path.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	queries := store.New(db)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	backend := cache.NewMemoryCache(cache.MemoryCacheOptions{DefaultTTL: time.Minute})
	t.Cleanup(func() { _ = backend.Close() })

	gen := generator.New(nil, queries, logger)
	pub := &fakePublisher{connResult: publisher.ConnectionResult{Success: true, User: "tester"}}
	adapter := &fakeAdapter{report: &discovery.Report{}}

	pipe := pipeline.New(adapter,
		classifier.New(nil, logger),
		brief.NewMaterializer(queries, logger),
		gen, queries, 600, logger)

	h := NewHandler(Deps{
		DB:        db,
		Profiles:  cache.NewProfileCache(backend, queries, time.Minute),
		Generator: gen,
		Publisher: pub,
		Pipeline:  pipe,
		Version:   version.Info{Version: "test"},
		Logger:    logger,
	})

	r := chi.NewRouter()
	r.Route("/api/v1", h.Routes)

	return &testEnv{handler: h, queries: queries, router: r, pub: pub, adapter: adapter}
}

// do performs a request against the test router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(buf)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" field of a success envelope into out.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding envelope: %v\nbody: %s", err, rec.Body.String())
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("decoding data: %v\nbody: %s", err, rec.Body.String())
	}
}

// decodeError unmarshals an error envelope.
func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()

	var envelope ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope.Error
}

func createTestProfile(t *testing.T, q *store.Queries) model.BusinessProfile {
	t.Helper()
	p, err := q.CreateProfile(context.Background(), store.CreateProfileParams{
		Name:     "Juniper Ridge Meadery",
		Location: "Bend, Oregon",
	})
	if err != nil {
		t.Fatalf("CreateProfile: %v", err)
	}
	return p
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d\nbody: %s", rec.Code, want, rec.Body.String())
	}
}

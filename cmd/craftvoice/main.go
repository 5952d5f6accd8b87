// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command craftvoice runs the CraftVoice marketing content server: a REST
// API for business profiles, content items and research briefs, plus the
// scheduled local-event discovery pipeline and WordPress publishing.
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/craftvoice/craftvoice/internal/brief"
	"github.com/craftvoice/craftvoice/internal/cache"
	"github.com/craftvoice/craftvoice/internal/classifier"
	"github.com/craftvoice/craftvoice/internal/config"
	"github.com/craftvoice/craftvoice/internal/discovery"
	"github.com/craftvoice/craftvoice/internal/generator"
	"github.com/craftvoice/craftvoice/internal/handler/api"
	"github.com/craftvoice/craftvoice/internal/llm"
	"github.com/craftvoice/craftvoice/internal/logging"
	"github.com/craftvoice/craftvoice/internal/pipeline"
	"github.com/craftvoice/craftvoice/internal/publisher"
	"github.com/craftvoice/craftvoice/internal/scheduler"
	"github.com/craftvoice/craftvoice/internal/store"
	"github.com/craftvoice/craftvoice/internal/version"
)

// Build-time version information injected via ldflags:
//
//	go build -ldflags "-X main.appVersion=$(git describe --tags) \
//	  -X main.appGitCommit=$(git rev-parse --short HEAD) \
//	  -X main.appBuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	// Parse CLI flags
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "CraftVoice - marketing content server for craft beverage businesses\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_DB_PATH          SQLite database path (default: ./data/craftvoice.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_OPENAI_API_KEY   OpenAI API key (optional; demo fallback without it)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_DISCOVERY_MODE   Event discovery mode: direct|scrapeapi|push (default: direct)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_SCAN_SCHEDULE    Cron expression for scheduled scans (empty disables)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  CRAFTVOICE_REDIS_URL        Redis URL for the profile cache (optional)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("craftvoice %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	// Setup logger
	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Ensure data directory exists
	dbDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	// Initialize database
	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	// Run migrations
	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the activity log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	activityHandler := logging.NewActivityLogHandler(textHandler, db)
	logger = slog.New(activityHandler)
	slog.SetDefault(logger)
	slog.Info("activity log integration enabled", "min_level", "warn")

	queries := store.New(db)

	// Profile cache: Redis when configured, in-process memory otherwise.
	backend := cache.New(cache.Config{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	}, logger)
	defer func() {
		if err := backend.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()
	profiles := cache.NewProfileCache(backend, queries, time.Duration(cfg.CacheTTL)*time.Second)

	// LLM client. Nil switches the classifier and generator to their
	// demo fallbacks, which tag everything they produce as demo data.
	var llmClient llm.Client
	if cfg.LLMEnabled() {
		llmClient = llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
		slog.Info("llm client configured", "model", cfg.OpenAIModel)
	} else {
		slog.Warn("running without an LLM backend; demo fallbacks active")
	}

	// Event discovery adapter
	var adapter discovery.Adapter
	switch cfg.DiscoveryMode {
	case config.DiscoveryScrapeAPI:
		adapter = discovery.NewScrapeAPIAdapter(discovery.DefaultSources(), cfg.ScrapeAPIURL, cfg.ScrapeAPIKey, logger)
	case config.DiscoveryPush:
		adapter = discovery.NewPushAdapter(queries, logger)
	default:
		adapter = discovery.NewDirectAdapter(discovery.DefaultSources(), logger)
	}
	slog.Info("event discovery configured", "mode", cfg.DiscoveryMode)

	gen := generator.New(llmClient, queries, logger)
	pub := publisher.NewWordPress(nil, logger)
	pipe := pipeline.New(adapter,
		classifier.New(llmClient, logger),
		brief.NewMaterializer(queries, logger),
		gen, queries, cfg.LLMRequestsPerMinute, logger)

	// Scheduler: publishes due scheduled content every minute and,
	// when a scan schedule is set, runs the discovery pipeline.
	sched := scheduler.New(queries, pub, pipe, cfg.ScanSchedule, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	// HTTP router
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)

	apiHandler := api.NewHandler(api.Deps{
		DB:        db,
		Profiles:  profiles,
		Generator: gen,
		Publisher: pub,
		Pipeline:  pipe,
		Version:   versionInfo,
		Logger:    logger,
	})
	r.Route("/api/v1", apiHandler.Routes)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

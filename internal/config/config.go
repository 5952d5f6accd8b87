// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Discovery adapter modes.
const (
	DiscoveryDirect    = "direct"
	DiscoveryScrapeAPI = "scrapeapi"
	DiscoveryPush      = "push"
)

// Config holds the application configuration loaded from environment variables.
// It is constructed once at startup and passed into each component; nothing
// else in the codebase reads the process environment directly.
type Config struct {
	DBPath     string `env:"CRAFTVOICE_DB_PATH" envDefault:"./data/craftvoice.db"`
	ServerHost string `env:"CRAFTVOICE_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CRAFTVOICE_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CRAFTVOICE_ENV" envDefault:"development"`
	LogLevel   string `env:"CRAFTVOICE_LOG_LEVEL" envDefault:"info"`

	// LLM configuration. An absent API key is legal: the classifier and
	// generator switch to their tagged demo fallbacks.
	OpenAIAPIKey string `env:"CRAFTVOICE_OPENAI_API_KEY"`
	OpenAIModel  string `env:"CRAFTVOICE_OPENAI_MODEL" envDefault:"gpt-4o"`
	// LLMRequestsPerMinute paces the sequential brief/content loop so a
	// pipeline run cannot burst the upstream API rate limit.
	LLMRequestsPerMinute int `env:"CRAFTVOICE_LLM_RPM" envDefault:"20"`

	// Event discovery configuration
	DiscoveryMode string `env:"CRAFTVOICE_DISCOVERY_MODE" envDefault:"direct"`
	ScrapeAPIKey  string `env:"CRAFTVOICE_SCRAPE_API_KEY"`
	ScrapeAPIURL  string `env:"CRAFTVOICE_SCRAPE_API_URL" envDefault:"https://api.scraperapi.com"`
	// ScanSchedule is a cron expression for automatic discovery runs.
	// Empty disables the scheduled scan; manual triggers still work.
	ScanSchedule string `env:"CRAFTVOICE_SCAN_SCHEDULE" envDefault:"0 6 * * *"`

	// Cache configuration
	RedisURL     string `env:"CRAFTVOICE_REDIS_URL"`                        // Optional Redis URL for the profile cache
	CachePrefix  string `env:"CRAFTVOICE_CACHE_PREFIX" envDefault:"cv:"`    // Redis key prefix
	CacheTTL     int    `env:"CRAFTVOICE_CACHE_TTL" envDefault:"300"`       // Default cache TTL in seconds
	CacheMaxSize int    `env:"CRAFTVOICE_CACHE_MAX_SIZE" envDefault:"1000"` // Max memory cache entries
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// LLMEnabled returns true if a real LLM backend is configured.
func (c Config) LLMEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	switch cfg.DiscoveryMode {
	case DiscoveryDirect, DiscoveryScrapeAPI, DiscoveryPush:
	default:
		return nil, fmt.Errorf("CRAFTVOICE_DISCOVERY_MODE must be one of %q, %q, %q; got %q",
			DiscoveryDirect, DiscoveryScrapeAPI, DiscoveryPush, cfg.DiscoveryMode)
	}

	if cfg.DiscoveryMode == DiscoveryScrapeAPI && cfg.ScrapeAPIKey == "" {
		return nil, fmt.Errorf("CRAFTVOICE_SCRAPE_API_KEY is required when CRAFTVOICE_DISCOVERY_MODE=%s",
			DiscoveryScrapeAPI)
	}

	if cfg.LLMRequestsPerMinute <= 0 {
		return nil, fmt.Errorf("CRAFTVOICE_LLM_RPM must be positive, got %d", cfg.LLMRequestsPerMinute)
	}

	if !cfg.LLMEnabled() {
		slog.Warn("CRAFTVOICE_OPENAI_API_KEY is not set; " +
			"classification and generation will use the demo fallback and tag results accordingly")
	}

	return cfg, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"CAMPUSCMS_DB_PATH" envDefault:"./data/campuscms.db"`
	ServerHost string `env:"CAMPUSCMS_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"CAMPUSCMS_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"CAMPUSCMS_ENV" envDefault:"development"`
	LogLevel   string `env:"CAMPUSCMS_LOG_LEVEL" envDefault:"info"`

	// Cache configuration
	RedisURL     string `env:"CAMPUSCMS_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"CAMPUSCMS_CACHE_PREFIX" envDefault:"ccms:"`   // Redis key prefix
	CacheTTL     int    `env:"CAMPUSCMS_CACHE_TTL" envDefault:"300"`        // Listing cache TTL in seconds
	CacheMaxSize int    `env:"CAMPUSCMS_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Webhook configuration
	WebhookWorkers int `env:"CAMPUSCMS_WEBHOOK_WORKERS" envDefault:"3"`

	// API rate limiting (requests per second per key, with burst)
	RateLimit int `env:"CAMPUSCMS_RATE_LIMIT" envDefault:"20"`
	RateBurst int `env:"CAMPUSCMS_RATE_BURST" envDefault:"40"`

	// Seeding configuration
	DoSeed bool `env:"CAMPUSCMS_DO_SEED" envDefault:"false"` // Enable database seeding
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

// SlogLevel maps the configured log level to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.ServerPort < 1 || cfg.ServerPort > 65535 {
		return nil, fmt.Errorf("CAMPUSCMS_SERVER_PORT out of range: %d", cfg.ServerPort)
	}
	if cfg.WebhookWorkers < 1 {
		return nil, fmt.Errorf("CAMPUSCMS_WEBHOOK_WORKERS must be positive, got %d", cfg.WebhookWorkers)
	}

	return cfg, nil
}

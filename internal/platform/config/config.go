// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, listings) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Yomishelf API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// Public key verifying admin tokens issued by the identity service
	JWTPubKeyPath string `env:"JWT_PUBLIC_KEY_PATH,required"`

	// Cover images
	ImageBaseURL  string `env:"IMAGE_BASE_URL"  envDefault:"http://localhost:3300"`
	FallbackImage string `env:"FALLBACK_IMAGE"  envDefault:"/static/book-group-placeholder.png"`

	// Listings
	PageSize          int           `env:"PAGE_SIZE"                 envDefault:"12"`
	Locale            string        `env:"LOCALE"                    envDefault:"vi"`
	SnapshotTTL       time.Duration `env:"SNAPSHOT_TTL"              envDefault:"1m"`
	SnapshotRefresh   time.Duration `env:"SNAPSHOT_REFRESH_INTERVAL" envDefault:"5m"`
	ListingSessionTTL time.Duration `env:"LISTING_SESSION_TTL"       envDefault:"30m"`

	// Cross-Origin Resource Sharing
	ExtraOrigins string `env:"EXTRA_ORIGINS"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.PageSize <= 0 {
		return nil, fmt.Errorf("config: PAGE_SIZE must be positive, got %d", cfg.PageSize)
	}

	// The refresh interval drives a ticker, which panics on non-positive values.
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"SNAPSHOT_TTL", cfg.SnapshotTTL},
		{"SNAPSHOT_REFRESH_INTERVAL", cfg.SnapshotRefresh},
		{"LISTING_SESSION_TTL", cfg.ListingSessionTTL},
	}
	for _, duration := range durations {
		if duration.value <= 0 {
			return nil, fmt.Errorf("config: %s must be positive, got %s", duration.name, duration.value)
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// AllowedOrigins returns the comma-separated EXTRA_ORIGINS as a trimmed list.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.ExtraOrigins, ",") {
		if trimmed := strings.TrimSpace(origin); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

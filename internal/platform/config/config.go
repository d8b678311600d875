// Copyright (c) 2026 Otakurin. All rights reserved.
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
*/
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// # Configuration Schema

// Config holds all runtime configuration for the Otakurin API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"8080"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATION_PATH" envDefault:"./data/migrations"`

	// Key-Value store (Redis) for sign-in sessions
	RedisURL string `env:"REDIS_URL,required"`

	// Token signing
	JWTSecret      string        `env:"JWT_SECRET,required"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"168h"`

	// Media cache
	MediaStaleAfter     time.Duration `env:"MEDIA_STALE_AFTER"     envDefault:"12h"`
	SearchCacheTTL      time.Duration `env:"SEARCH_CACHE_TTL"      envDefault:"10m"`
	SearchCacheCapacity int           `env:"SEARCH_CACHE_CAPACITY" envDefault:"5000"`

	// Catalog providers
	IGDBClientID      string  `env:"IGDB_CLIENT_ID"`
	IGDBClientSecret  string  `env:"IGDB_CLIENT_SECRET"`
	TMDBAPIKey        string  `env:"TMDB_API_KEY"`
	GoogleBooksAPIKey string  `env:"GOOGLE_BOOKS_API_KEY"`
	CatalogRPS        float64 `env:"CATALOG_RPS"         envDefault:"4"`
	CatalogMaxRetries uint64  `env:"CATALOG_MAX_RETRIES" envDefault:"3"`

	// Cross-Origin Resource Sharing
	AllowedOriginSuffix string `env:"ALLOWED_ORIGIN_SUFFIX" envDefault:"otakurin.app"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if cfg.MediaStaleAfter <= 0 {
		return nil, fmt.Errorf("config: MEDIA_STALE_AFTER must be positive, got %s", cfg.MediaStaleAfter)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// OriginSuffix returns the domain suffix trusted by the CORS middleware.
func (c *Config) OriginSuffix() string {
	return c.AllowedOriginSuffix
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package config

import (
	"time"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Config holds all application configuration.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Candidates CandidatesConfig `koanf:"candidates"`
	Database   DatabaseConfig   `koanf:"database"`
	Cache      CacheConfig      `koanf:"cache"`
	Providers  ProvidersConfig  `koanf:"providers"`
	Ontology   OntologyConfig   `koanf:"ontology"`
	Recommend  recommend.Config `koanf:"recommend"`
	Security   SecurityConfig   `koanf:"security"`
	Supervisor SupervisorConfig `koanf:"supervisor"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`

	// Timeout bounds request reads and writes.
	Timeout time.Duration `koanf:"timeout"`

	// RequestTimeout bounds one recommendation request end to end.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// Environment is "development" or "production".
	Environment string `koanf:"environment"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Candidate pool sources.
const (
	SourceDuckDB = "duckdb"
	SourceStatic = "static"
)

// CandidatesConfig selects where raw venue candidates come from.
type CandidatesConfig struct {
	// Source is "duckdb" or "static".
	Source string `koanf:"source"`

	// StaticFile is a JSON array of candidates for the static source.
	// Empty means an empty pool.
	StaticFile string `koanf:"static_file"`

	// GridCellKm is the spatial grid cell size of the static source.
	GridCellKm float64 `koanf:"grid_cell_km"`
}

// DatabaseConfig holds DuckDB settings for the duckdb candidate source.
type DatabaseConfig struct {
	// Path is the DuckDB file; empty opens an in-memory database.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"`

	// SeedFile optionally loads a JSON array of candidates at startup.
	SeedFile string `koanf:"seed_file"`

	// ReloadInterval polls SeedFile and re-imports it when it changes.
	// Zero disables reloading.
	ReloadInterval time.Duration `koanf:"reload_interval"`
}

// CacheConfig selects the provider response cache.
type CacheConfig struct {
	// Type is "memory", "redis" or "none".
	Type            string        `koanf:"type"`
	TTL             time.Duration `koanf:"ttl"`
	Capacity        int           `koanf:"capacity"`
	RedisURL        string        `koanf:"redis_url"`
	Prefix          string        `koanf:"prefix"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
}

// HTTPProviderConfig configures one external HTTP provider.
type HTTPProviderConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`

	Timeout  time.Duration `koanf:"timeout"`
	RetryMax int           `koanf:"retry_max"`

	// RateLimit is the sustained request rate per second; Burst the bucket size.
	RateLimit float64 `koanf:"rate_limit"`
	Burst     int     `koanf:"burst"`

	// CacheTTL overrides cache.ttl for this provider's responses.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	Breaker BreakerConfig `koanf:"breaker"`
}

// BreakerConfig configures a provider circuit breaker.
type BreakerConfig struct {
	// MinRequests is the number of requests before the failure ratio counts.
	MinRequests uint32 `koanf:"min_requests"`

	// FailureRatio opens the breaker once reached.
	FailureRatio float64 `koanf:"failure_ratio"`

	// Interval resets the counts while closed.
	Interval time.Duration `koanf:"interval"`

	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration `koanf:"open_timeout"`

	// HalfOpenRequests is how many probes are allowed while half-open.
	HalfOpenRequests uint32 `koanf:"half_open_requests"`
}

// ProvidersConfig holds the external collaborators.
type ProvidersConfig struct {
	Venues  HTTPProviderConfig `koanf:"venues"`
	Weather HTTPProviderConfig `koanf:"weather"`
	Intent  HTTPProviderConfig `koanf:"intent"`
}

// OntologyConfig locates the activity catalog.
type OntologyConfig struct {
	// CatalogPath replaces the embedded catalog when set.
	CatalogPath string `koanf:"catalog_path"`
}

// SecurityConfig holds HTTP edge protection.
type SecurityConfig struct {
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`
}

// SupervisorConfig holds suture tree settings.
type SupervisorConfig struct {
	FailureThreshold float64       `koanf:"failure_threshold"`
	FailureDecay     float64       `koanf:"failure_decay"`
	FailureBackoff   time.Duration `koanf:"failure_backoff"`
	ShutdownTimeout  time.Duration `koanf:"shutdown_timeout"`
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

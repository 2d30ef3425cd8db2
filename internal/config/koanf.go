// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/vibecompass/config.yaml",
	"/etc/vibecompass/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config with every default applied. Defaults are
// loaded first and then overridden by the config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			RequestTimeout:  20 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Candidates: CandidatesConfig{
			Source:     SourceDuckDB,
			GridCellKm: 10,
		},
		Database: DatabaseConfig{
			Path:      "/data/vibecompass.duckdb",
			MaxMemory: "1GB",
		},
		Cache: CacheConfig{
			Type:            "memory",
			TTL:             15 * time.Minute,
			Capacity:        10000,
			Prefix:          "vibecompass:",
			CleanupInterval: time.Minute,
		},
		Providers: ProvidersConfig{
			Venues: HTTPProviderConfig{
				Enabled:   false,
				Timeout:   4 * time.Second,
				RetryMax:  2,
				RateLimit: 10,
				Burst:     10,
				CacheTTL:  6 * time.Hour,
				Breaker:   defaultBreaker(),
			},
			Weather: HTTPProviderConfig{
				Enabled:   true,
				BaseURL:   "https://api.open-meteo.com",
				Timeout:   3 * time.Second,
				RetryMax:  2,
				RateLimit: 5,
				Burst:     5,
				CacheTTL:  30 * time.Minute,
				Breaker:   defaultBreaker(),
			},
			Intent: HTTPProviderConfig{
				Enabled:   false,
				Timeout:   3 * time.Second,
				RetryMax:  1,
				RateLimit: 5,
				Burst:     5,
				Breaker:   defaultBreaker(),
			},
		},
		Recommend: *recommend.DefaultConfig(),
		Security: SecurityConfig{
			RateLimitReqs:   60,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
			MaxBodyBytes:    64 << 10,
		},
		Supervisor: SupervisorConfig{
			FailureThreshold: 5,
			FailureDecay:     30,
			FailureBackoff:   15 * time.Second,
			ShutdownTimeout:  10 * time.Second,
		},
	}
}

func defaultBreaker() BreakerConfig {
	return BreakerConfig{
		MinRequests:      10,
		FailureRatio:     0.6,
		Interval:         time.Minute,
		OpenTimeout:      30 * time.Second,
		HalfOpenRequests: 3,
	}
}

// Load loads configuration from layered sources:
//  1. Defaults: built-in values
//  2. Config file: optional YAML file (CONFIG_PATH or DefaultConfigPaths)
//  3. Environment variables: explicit mapping in envTransformFunc
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	return load(findConfigFile())
}

// LoadFile loads configuration with path as the config file layer.
func LoadFile(path string) (*Config, error) {
	return load(path)
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated env values.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated strings to slices for the
// known slice paths. Values that are already slices (YAML) are kept.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("failed to set %s: %w", path, err)
			}
		}
	}
	return nil
}

// envMappings maps environment variable names (lower-cased) to koanf paths.
// Unmapped variables are ignored so the process environment cannot pollute
// the configuration.
var envMappings = map[string]string{
	// Server
	"http_host":        "server.host",
	"http_port":        "server.port",
	"http_timeout":     "server.timeout",
	"request_timeout":  "server.request_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"environment":      "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Candidate source
	"candidate_source":       "candidates.source",
	"candidate_static_file":  "candidates.static_file",
	"candidate_grid_cell_km": "candidates.grid_cell_km",

	// Database
	"duckdb_path":            "database.path",
	"duckdb_max_memory":      "database.max_memory",
	"duckdb_threads":         "database.threads",
	"duckdb_seed_file":       "database.seed_file",
	"duckdb_reload_interval": "database.reload_interval",

	// Cache
	"cache_type":             "cache.type",
	"cache_ttl":              "cache.ttl",
	"cache_capacity":         "cache.capacity",
	"redis_url":              "cache.redis_url",
	"cache_prefix":           "cache.prefix",
	"cache_cleanup_interval": "cache.cleanup_interval",

	// Providers
	"venues_enabled":     "providers.venues.enabled",
	"venues_base_url":    "providers.venues.base_url",
	"venues_api_key":     "providers.venues.api_key",
	"venues_timeout":     "providers.venues.timeout",
	"venues_retry_max":   "providers.venues.retry_max",
	"venues_rate_limit":  "providers.venues.rate_limit",
	"venues_cache_ttl":   "providers.venues.cache_ttl",
	"weather_enabled":    "providers.weather.enabled",
	"weather_base_url":   "providers.weather.base_url",
	"weather_timeout":    "providers.weather.timeout",
	"weather_retry_max":  "providers.weather.retry_max",
	"weather_rate_limit": "providers.weather.rate_limit",
	"weather_cache_ttl":  "providers.weather.cache_ttl",
	"intent_enabled":     "providers.intent.enabled",
	"intent_base_url":    "providers.intent.base_url",
	"intent_api_key":     "providers.intent.api_key",
	"intent_timeout":     "providers.intent.timeout",

	// Ontology
	"ontology_catalog_path": "ontology.catalog_path",

	// Recommendation pipeline
	"recommend_target_size":          "recommend.diversity.target_size",
	"recommend_region_aware":         "recommend.diversity.region_aware",
	"recommend_domain_boost":         "recommend.blend.domain_boost",
	"recommend_default_radius_km":    "recommend.pool.default_radius_km",
	"recommend_max_radius_km":        "recommend.pool.max_radius_km",
	"recommend_max_candidates":       "recommend.pool.max_candidates",
	"challenge_enabled":              "recommend.challenge.enabled",
	"challenge_max":                  "recommend.challenge.max_challenges",
	"challenge_max_total_calls":      "recommend.challenge.budget.max_total_calls",
	"challenge_max_concurrent_calls": "recommend.challenge.budget.max_concurrent_calls",
	"challenge_timeout_per_call":     "recommend.challenge.budget.timeout_per_call",
	"challenge_max_execution_time":   "recommend.challenge.budget.max_total_execution_time",

	// Security
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",
	"cors_origins":        "security.cors_origins",
	"max_body_bytes":      "security.max_body_bytes",
}

// envTransformFunc transforms environment variable names to koanf paths.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - REDIS_URL -> cache.redis_url
//   - CHALLENGE_MAX -> recommend.challenge.max_challenges
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

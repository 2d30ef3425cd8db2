// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/vibecompass/internal/logging"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCandidates(); err != nil {
		return err
	}
	if err := c.validateCache(); err != nil {
		return err
	}
	if err := c.validateProviders(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	if err := c.Recommend.Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %v", c.Server.RequestTimeout)
	}
	switch c.Server.Environment {
	case "development", "production":
	default:
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !logging.ValidLevel(c.Logging.Level) {
		return fmt.Errorf("LOG_LEVEL is invalid: %q", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateCandidates() error {
	switch c.Candidates.Source {
	case SourceDuckDB:
		if c.Database.Threads < 0 {
			return fmt.Errorf("DUCKDB_THREADS must be non-negative, got %d", c.Database.Threads)
		}
		if c.Database.ReloadInterval < 0 {
			return fmt.Errorf("DUCKDB_RELOAD_INTERVAL must be non-negative, got %v", c.Database.ReloadInterval)
		}
	case SourceStatic:
		if c.Candidates.GridCellKm <= 0 {
			return fmt.Errorf("CANDIDATE_GRID_CELL_KM must be positive, got %f", c.Candidates.GridCellKm)
		}
	default:
		return fmt.Errorf("CANDIDATE_SOURCE must be %s or %s, got %q", SourceDuckDB, SourceStatic, c.Candidates.Source)
	}
	return nil
}

func (c *Config) validateCache() error {
	switch c.Cache.Type {
	case "memory":
		if c.Cache.Capacity < 1 {
			return fmt.Errorf("CACHE_CAPACITY must be positive, got %d", c.Cache.Capacity)
		}
	case "redis":
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when CACHE_TYPE=redis")
		}
		if !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
			return fmt.Errorf("REDIS_URL must use redis:// or rediss://")
		}
	case "none":
	default:
		return fmt.Errorf("CACHE_TYPE must be memory, redis or none, got %q", c.Cache.Type)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %v", c.Cache.TTL)
	}
	return nil
}

func (c *Config) validateProviders() error {
	for name, p := range map[string]HTTPProviderConfig{
		"VENUES":  c.Providers.Venues,
		"WEATHER": c.Providers.Weather,
		"INTENT":  c.Providers.Intent,
	} {
		if err := validateProvider(name, p); err != nil {
			return err
		}
	}
	return nil
}

func validateProvider(name string, p HTTPProviderConfig) error {
	if !p.Enabled {
		return nil
	}
	if p.BaseURL == "" {
		return fmt.Errorf("%s_BASE_URL is required when %s_ENABLED=true", name, name)
	}
	if err := validateHTTPURL(p.BaseURL, name+"_BASE_URL"); err != nil {
		return err
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("%s_TIMEOUT must be positive, got %v", name, p.Timeout)
	}
	if p.RetryMax < 0 {
		return fmt.Errorf("%s_RETRY_MAX must be non-negative, got %d", name, p.RetryMax)
	}
	if p.RateLimit < 0 || math.IsNaN(p.RateLimit) {
		return fmt.Errorf("%s_RATE_LIMIT must be non-negative, got %f", name, p.RateLimit)
	}
	if r := p.Breaker.FailureRatio; r <= 0 || r > 1 {
		return fmt.Errorf("%s breaker failure_ratio must be in (0, 1], got %f", name, r)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow <= 0 {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Security.RateLimitWindow)
		}
	}
	if c.Security.MaxBodyBytes < 1 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.Security.MaxBodyBytes)
	}
	if c.IsProduction() {
		for _, o := range c.Security.CORSOrigins {
			if o == "*" {
				return fmt.Errorf("CORS_ORIGINS must not contain * in production")
			}
		}
	}
	return nil
}

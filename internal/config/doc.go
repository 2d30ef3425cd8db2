// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package config loads and validates Vibecompass configuration.

Configuration is layered with koanf, later layers overriding earlier ones:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: CONFIG_PATH, else config.yaml in the working
    directory, else /etc/vibecompass/config.yaml
 3. Environment variables with an explicit name mapping

Example file:

	server:
	  port: 8080
	candidates:
	  source: duckdb
	database:
	  path: /data/venues.duckdb
	cache:
	  type: redis
	  redis_url: redis://redis:6379/0
	providers:
	  venues:
	    enabled: true
	    base_url: https://venues.internal
	recommend:
	  diversity:
	    target_size: 5
	  challenge:
	    max_challenges: 2

Frequently used environment variables:

  - HTTP_PORT, HTTP_HOST, ENVIRONMENT
  - LOG_LEVEL, LOG_FORMAT
  - CANDIDATE_SOURCE (duckdb, static), DUCKDB_PATH, CANDIDATE_STATIC_FILE
  - CACHE_TYPE (memory, redis, none), CACHE_TTL, REDIS_URL
  - VENUES_BASE_URL, WEATHER_BASE_URL, INTENT_BASE_URL and their _ENABLED flags
  - CHALLENGE_ENABLED, CHALLENGE_MAX
  - CORS_ORIGINS (comma-separated), RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW

Load returns an error when validation fails.
*/
package config

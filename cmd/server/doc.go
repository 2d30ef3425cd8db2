// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Command server runs the Vibecompass recommendation API.

# Startup

The server initializes components in this order:

 1. Configuration: defaults, then config.yaml, then environment (koanf v2)
 2. Logging: zerolog global logger
 3. Cache: memory, redis or none, shared by the HTTP providers
 4. Ontology: embedded activity catalog or ONTOLOGY_CATALOG_PATH
 5. Providers: weather, venue search and intent parsing when enabled
 6. Candidate pool: DuckDB (seeded from DUCKDB_SEED_FILE when empty) or a
    static in-memory grid
 7. Engine: scoring, diversity selection and the challenge planner
 8. HTTP server and background services under a suture supervisor tree

# Configuration

Common environment variables:

	HTTP_PORT=8080
	LOG_LEVEL=info
	CANDIDATE_SOURCE=duckdb          # or static
	DUCKDB_PATH=/data/vibecompass.duckdb
	DUCKDB_SEED_FILE=/data/venues.json
	DUCKDB_RELOAD_INTERVAL=5m        # re-import the seed file when it changes
	CACHE_TYPE=redis
	REDIS_URL=redis://localhost:6379/0
	VENUES_ENABLED=true
	VENUES_BASE_URL=https://places.example.com
	VENUES_API_KEY=...
	WEATHER_ENABLED=true

# Signal Handling

SIGINT and SIGTERM cancel the root context. The HTTP server stops accepting
connections and waits up to SHUTDOWN_TIMEOUT for in-flight requests, then
the database and cache connections are closed.
*/
package main

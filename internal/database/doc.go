// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package database stores venue candidates in DuckDB and serves them as a
// recommend.CandidatePool.
//
// # Overview
//
// The recommendation pipeline only reads venues. This package owns the venue
// tables, seeds them from a JSON file on first start and answers proximity
// queries for the candidate pool stage.
//
// Files:
//   - database.go: connection lifecycle and pool configuration
//   - database_schema.go: table creation
//   - venues.go: upsert, seeding and the CandidatePool implementation
//   - query/: parameterized WHERE clause construction
//
// # Database Technology
//
// DuckDB via the CGO driver github.com/duckdb/duckdb-go/v2. Extension
// auto-loading is disabled; only core SQL is used.
//
// # Proximity Queries
//
// Candidates selects rows inside the bounding box of the search circle, then
// applies the exact haversine radius in Go using the same geo.DistanceKm the
// in-memory pool uses. Results are ordered by distance, then id.
//
// # Metrics
//
// Query latency and errors are recorded with metrics.RecordDBQuery under the
// "venues" table label.
package database

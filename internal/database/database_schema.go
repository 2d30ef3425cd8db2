// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package database

import (
	"context"
	"fmt"
)

// schemaStatements create the venue tables. venue_types holds one row per
// lower-cased type tag so that type filters run in SQL. Bounding-box scans
// rely on DuckDB's zone maps; an ART index on latitude/longitude would also
// block INSERT OR REPLACE from updating those columns.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS venues (
		id VARCHAR PRIMARY KEY,
		name VARCHAR NOT NULL,
		bucket VARCHAR NOT NULL,
		subtype VARCHAR,
		latitude DOUBLE NOT NULL,
		longitude DOUBLE NOT NULL,
		region VARCHAR,
		rating DOUBLE,
		review_count INTEGER NOT NULL DEFAULT 0,
		price_level INTEGER,
		types VARCHAR,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS venue_types (
		venue_id VARCHAR NOT NULL,
		type VARCHAR NOT NULL
	)`,
}

// initialize creates tables and indexes if they do not exist.
func (db *DB) initialize(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

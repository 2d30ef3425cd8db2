// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/tomtom215/vibecompass/internal/database/query"
	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/logging"
	"github.com/tomtom215/vibecompass/internal/metrics"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

const venueColumns = `id, name, bucket, subtype, latitude, longitude, region,
	rating, review_count, price_level, types`

// UpsertVenues inserts or replaces candidates in one transaction. Candidates
// without an id or with an invalid location are skipped; the number written
// is returned.
func (db *DB) UpsertVenues(ctx context.Context, candidates []recommend.Candidate) (n int, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("upsert", "venues", time.Since(start), err) }()

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	venueStmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO venues (`+venueColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare venue insert: %w", err)
	}
	defer closeWithLog(venueStmt, "venue insert statement")

	deleteTypes, err := tx.PrepareContext(ctx, `DELETE FROM venue_types WHERE venue_id = ?`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare type delete: %w", err)
	}
	defer closeWithLog(deleteTypes, "type delete statement")

	insertType, err := tx.PrepareContext(ctx, `INSERT INTO venue_types (venue_id, type) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare type insert: %w", err)
	}
	defer closeWithLog(insertType, "type insert statement")

	for i := range candidates {
		c := &candidates[i]
		if c.ID == "" || !c.Location.Valid() {
			logging.Debug().Str("id", c.ID).Msg("Skipping venue without id or valid location")
			continue
		}

		if _, err = venueStmt.ExecContext(ctx,
			c.ID, c.Name, string(recommend.ParseBucket(string(c.Bucket))), nullString(c.Subtype),
			c.Location.Lat, c.Location.Lng, nullString(c.Region),
			nullFloat(c.Rating), c.ReviewCount, nullInt(c.PriceLevel),
			nullString(strings.Join(c.Types, ",")),
		); err != nil {
			return 0, fmt.Errorf("failed to insert venue %s: %w", c.ID, err)
		}

		if _, err = deleteTypes.ExecContext(ctx, c.ID); err != nil {
			return 0, fmt.Errorf("failed to clear types for %s: %w", c.ID, err)
		}
		for _, t := range uniqueLower(c.Types) {
			if _, err = insertType.ExecContext(ctx, c.ID, t); err != nil {
				return 0, fmt.Errorf("failed to insert type %s for %s: %w", t, c.ID, err)
			}
		}
		n++
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit venues: %w", err)
	}
	return n, nil
}

// SeedIfEmpty writes candidates only when the venues table is empty, so that
// restarts do not overwrite edited data. It returns the number written.
func (db *DB) SeedIfEmpty(ctx context.Context, candidates []recommend.Candidate) (int, error) {
	count, err := db.CountVenues(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		logging.Info().Int64("venues", count).Msg("Venue table already populated, skipping seed")
		return 0, nil
	}
	return db.UpsertVenues(ctx, candidates)
}

// CountVenues returns the number of stored venues.
func (db *DB) CountVenues(ctx context.Context) (int64, error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()

	var count int64
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM venues`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count venues: %w", err)
	}
	return count, nil
}

// Candidates implements recommend.CandidatePool. A bounding box selects rows
// in SQL; the exact radius, keyword filter, ordering (distance, then id) and
// limit are applied in Go so that results match the in-memory pool.
func (db *DB) Candidates(ctx context.Context, q recommend.PoolQuery) (out []recommend.Candidate, err error) {
	if !q.Center.Valid() {
		return nil, fmt.Errorf("candidate pool: invalid center %v", q.Center)
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()

	start := time.Now()
	defer func() { metrics.RecordDBQuery("select", "venues", time.Since(start), err) }()

	sw, ne := geo.BoundingBox(q.Center, q.RadiusKm)
	wb := query.NewWhereBuilder().AddBoundingBox(sw, ne)
	if types := uniqueLower(q.Types); len(types) > 0 {
		sub, subArgs := query.NewWhereBuilder().AddIn("type", types).Build()
		wb.AddClause("id IN (SELECT venue_id FROM venue_types WHERE "+sub+")", subArgs...)
	}
	where, args := wb.BuildWithPrefix()

	rows, err := db.conn.QueryContext(ctx, `SELECT `+venueColumns+` FROM venues `+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query venues: %w", err)
	}
	defer rows.Close()

	type hit struct {
		c    recommend.Candidate
		dist float64
	}
	var hits []hit
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		d := geo.DistanceKm(q.Center, c.Location)
		if d > q.RadiusKm || !q.Matches(&c) {
			continue
		}
		hits = append(hits, hit{c: c, dist: d})
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate venues: %w", err)
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].dist != hits[j].dist {
			return hits[i].dist < hits[j].dist
		}
		return hits[i].c.ID < hits[j].c.ID
	})
	if q.Limit > 0 && len(hits) > q.Limit {
		hits = hits[:q.Limit]
	}

	out = make([]recommend.Candidate, len(hits))
	for i := range hits {
		out[i] = hits[i].c
	}
	return out, nil
}

func scanCandidate(rows *sql.Rows) (recommend.Candidate, error) {
	var (
		c                     recommend.Candidate
		bucket                string
		subtype, region, tags sql.NullString
		rating                sql.NullFloat64
		price                 sql.NullInt64
	)
	if err := rows.Scan(
		&c.ID, &c.Name, &bucket, &subtype,
		&c.Location.Lat, &c.Location.Lng, &region,
		&rating, &c.ReviewCount, &price, &tags,
	); err != nil {
		return recommend.Candidate{}, fmt.Errorf("failed to scan venue row: %w", err)
	}

	c.Bucket = recommend.Bucket(bucket)
	c.Subtype = subtype.String
	c.Region = region.String
	if rating.Valid {
		r := rating.Float64
		c.Rating = &r
	}
	if price.Valid {
		p := int(price.Int64)
		c.PriceLevel = &p
	}
	if tags.Valid && tags.String != "" {
		c.Types = strings.Split(tags.String, ",")
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullInt(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func uniqueLower(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

var _ recommend.CandidatePool = (*DB)(nil)

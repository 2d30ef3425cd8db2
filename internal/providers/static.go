// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package providers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// StaticPool is an in-memory recommend.CandidatePool backed by a spatial
// grid. It suits small deployments and tests where running DuckDB is not
// worth it.
type StaticPool struct {
	grid *cache.SpatialGrid[recommend.Candidate]
}

// NewStaticPool indexes candidates in a grid with cells of cellSizeKm.
// Candidates without an id or with an invalid location are skipped; the
// number of skipped candidates is returned.
func NewStaticPool(candidates []recommend.Candidate, cellSizeKm float64) (*StaticPool, int) {
	grid := cache.NewSpatialGrid[recommend.Candidate](cellSizeKm)
	skipped := 0
	for i := range candidates {
		c := candidates[i]
		if c.ID == "" || !grid.Insert(c.ID, c.Location, c) {
			skipped++
		}
	}
	return &StaticPool{grid: grid}, skipped
}

// Len returns the number of indexed candidates.
func (p *StaticPool) Len() int {
	return p.grid.Size()
}

// Candidates implements recommend.CandidatePool. Results are ordered by
// distance from the query center.
func (p *StaticPool) Candidates(ctx context.Context, q recommend.PoolQuery) ([]recommend.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !q.Center.Valid() {
		return nil, fmt.Errorf("candidate pool: invalid center %v", q.Center)
	}

	nearby := p.grid.QueryNearby(q.Center, q.RadiusKm)
	out := make([]recommend.Candidate, 0, len(nearby))
	for i := range nearby {
		c := nearby[i].Value
		if !q.Matches(&c) {
			continue
		}
		out = append(out, c)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// DecodeCandidates reads a JSON array of candidates.
func DecodeCandidates(r io.Reader) ([]recommend.Candidate, error) {
	var candidates []recommend.Candidate
	if err := json.NewDecoder(r).Decode(&candidates); err != nil {
		return nil, fmt.Errorf("decode candidates: %w", err)
	}
	return candidates, nil
}

// LoadCandidatesFile reads a JSON array of candidates from path.
func LoadCandidatesFile(path string) ([]recommend.Candidate, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("open candidates file: %w", err)
	}
	defer f.Close()

	return DecodeCandidates(f)
}

var _ recommend.CandidatePool = (*StaticPool)(nil)

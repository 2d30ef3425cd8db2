// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package diversity implements greedy selection of a fixed-size, bucket
// diverse subset of ranked candidates.
package diversity

import (
	"fmt"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Selector is the three-phase greedy diversity selector:
//
//  1. bucket diversity: the first candidate of every unseen bucket
//  2. subtype diversity: the first candidate of every unseen subtype
//  3. score fill: the best remaining candidates regardless of diversity
//
// Candidates are ranked with recommend.RankLess, so the result is fully
// deterministic. Output length is min(n, |distinct ids|).
type Selector struct{}

// NewSelector creates a diversity selector.
func NewSelector() *Selector {
	return &Selector{}
}

// Name returns the selector identifier.
func (s *Selector) Name() string {
	return "diversity"
}

// Select returns a diverse subset of at most n items.
func (s *Selector) Select(items []recommend.ScoredCandidate, n int) (recommend.SelectionResult, error) {
	if n < 0 {
		return recommend.SelectionResult{}, fmt.Errorf("%w: %d", recommend.ErrInvalidTargetSize, n)
	}
	ranked := rankUnique(items)
	return selectSeeded(ranked, n, nil), nil
}

// rankUnique returns a ranked copy of items with duplicate ids removed
// (the best-ranked occurrence wins).
func rankUnique(items []recommend.ScoredCandidate) []recommend.ScoredCandidate {
	ranked := make([]recommend.ScoredCandidate, len(items))
	copy(ranked, items)
	recommend.SortRanked(ranked)

	seen := make(map[string]struct{}, len(ranked))
	out := ranked[:0]
	for i := range ranked {
		if _, dup := seen[ranked[i].ID]; dup {
			continue
		}
		seen[ranked[i].ID] = struct{}{}
		out = append(out, ranked[i])
	}
	return out
}

// selectSeeded runs the three phases over ranked, starting from seeds.
// seeds must be a subset of ranked and no longer than n.
func selectSeeded(ranked []recommend.ScoredCandidate, n int, seeds []recommend.ScoredCandidate) recommend.SelectionResult {
	target := n
	if len(ranked) < target {
		target = len(ranked)
	}

	selected := make([]recommend.ScoredCandidate, 0, target)
	taken := make(map[string]struct{}, target)
	buckets := make(map[recommend.Bucket]struct{}, target)

	take := func(c *recommend.ScoredCandidate) {
		selected = append(selected, *c)
		taken[c.ID] = struct{}{}
		buckets[c.Bucket] = struct{}{}
	}

	for i := range seeds {
		if len(selected) >= target {
			break
		}
		take(&seeds[i])
	}

	// Phase 1: bucket diversity
	for i := range ranked {
		if len(selected) >= target {
			break
		}
		c := &ranked[i]
		if _, ok := taken[c.ID]; ok {
			continue
		}
		if _, ok := buckets[c.Bucket]; ok {
			continue
		}
		take(c)
	}

	// Phase 2: subtype diversity
	if len(selected) < target {
		subtypes := make(map[string]struct{}, target)
		for i := range selected {
			if selected[i].Subtype != "" {
				subtypes[selected[i].Subtype] = struct{}{}
			}
		}
		for i := range ranked {
			if len(selected) >= target {
				break
			}
			c := &ranked[i]
			if _, ok := taken[c.ID]; ok || c.Subtype == "" {
				continue
			}
			if _, ok := subtypes[c.Subtype]; ok {
				continue
			}
			take(c)
			subtypes[c.Subtype] = struct{}{}
		}
	}

	// Phase 3: score fill
	for i := range ranked {
		if len(selected) >= target {
			break
		}
		if _, ok := taken[ranked[i].ID]; ok {
			continue
		}
		take(&ranked[i])
	}

	return recommend.SelectionResult{
		Items:       selected,
		Stats:       recommend.ComputeDiversityStats(selected, target),
		Denominator: target,
	}
}

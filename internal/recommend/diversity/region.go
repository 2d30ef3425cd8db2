// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package diversity

import (
	"fmt"
	"sort"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// RegionAware seeds the three-phase selector with one candidate from each
// of the most populous regions, so that a pool spanning several regions
// never yields a geographically monotone selection.
type RegionAware struct {
	maxSeeds int
}

// NewRegionAware creates a region-aware selector pre-selecting from up to
// maxSeeds regions. Values below 1 default to 3.
func NewRegionAware(maxSeeds int) *RegionAware {
	if maxSeeds < 1 {
		maxSeeds = 3
	}
	return &RegionAware{maxSeeds: maxSeeds}
}

// Name returns the selector identifier.
func (r *RegionAware) Name() string {
	return "diversity_region_aware"
}

// Select returns a diverse subset of at most n items.
func (r *RegionAware) Select(items []recommend.ScoredCandidate, n int) (recommend.SelectionResult, error) {
	if n < 0 {
		return recommend.SelectionResult{}, fmt.Errorf("%w: %d", recommend.ErrInvalidTargetSize, n)
	}
	ranked := rankUnique(items)
	return selectSeeded(ranked, n, r.seeds(ranked, n)), nil
}

type regionGroup struct {
	name    string
	members []int // indexes into ranked, in rank order
}

// seeds pre-selects, from each of the most populous regions, the best ranked
// candidate whose bucket no earlier seed uses. A region whose candidates all
// repeat a used bucket contributes no seed.
func (r *RegionAware) seeds(ranked []recommend.ScoredCandidate, n int) []recommend.ScoredCandidate {
	groups := groupByRegion(ranked)
	if len(groups) < 2 || n == 0 {
		return nil
	}

	limit := r.maxSeeds
	if limit > len(groups) {
		limit = len(groups)
	}
	if limit > n {
		limit = n
	}

	seeds := make([]recommend.ScoredCandidate, 0, limit)
	used := make(map[recommend.Bucket]struct{}, limit)
	for _, g := range groups[:limit] {
		pick := -1
		for _, idx := range g.members {
			if _, ok := used[ranked[idx].Bucket]; !ok {
				pick = idx
				break
			}
		}
		if pick < 0 {
			continue
		}
		seeds = append(seeds, ranked[pick])
		used[ranked[pick].Bucket] = struct{}{}
	}
	return seeds
}

// groupByRegion groups ranked candidates by non-empty region, ordered by
// population descending, then region name ascending.
func groupByRegion(ranked []recommend.ScoredCandidate) []regionGroup {
	index := make(map[string]int)
	var groups []regionGroup
	for i := range ranked {
		region := ranked[i].Region
		if region == "" {
			continue
		}
		gi, ok := index[region]
		if !ok {
			gi = len(groups)
			index[region] = gi
			groups = append(groups, regionGroup{name: region})
		}
		groups[gi].members = append(groups[gi].members, i)
	}

	sort.SliceStable(groups, func(i, j int) bool {
		if len(groups[i].members) != len(groups[j].members) {
			return len(groups[i].members) > len(groups[j].members)
		}
		return groups[i].name < groups[j].name
	})
	return groups
}

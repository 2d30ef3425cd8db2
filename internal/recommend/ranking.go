// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"math"
	"sort"
)

// RankLess is the total order used by every ranking stage:
// personalized score descending, then candidate id ascending.
func RankLess(a, b *ScoredCandidate) bool {
	if a.PersonalizedScore != b.PersonalizedScore {
		return a.PersonalizedScore > b.PersonalizedScore
	}
	return a.ID < b.ID
}

// SortRanked sorts items in place by RankLess.
func SortRanked(items []ScoredCandidate) {
	sort.SliceStable(items, func(i, j int) bool {
		return RankLess(&items[i], &items[j])
	})
}

// ComputeDiversityStats summarizes a selection. denominator is
// min(N, |input|) of the selection that produced items.
func ComputeDiversityStats(items []ScoredCandidate, denominator int) DiversityStats {
	buckets := make(map[Bucket]struct{}, len(items))
	subtypes := make(map[string]struct{}, len(items))
	regions := make(map[string]struct{}, len(items))

	for i := range items {
		buckets[items[i].Bucket] = struct{}{}
		if items[i].Subtype != "" {
			subtypes[items[i].Subtype] = struct{}{}
		}
		if items[i].Region != "" {
			regions[items[i].Region] = struct{}{}
		}
	}

	stats := DiversityStats{
		UniqueBuckets:  len(buckets),
		UniqueSubtypes: len(subtypes),
		UniqueRegions:  len(regions),
	}
	if denominator > 0 {
		stats.DiversityScore = math.Min(1, float64(stats.UniqueBuckets)/float64(denominator))
	}
	return stats
}

// validScore reports whether x is a finite number.
func validScore(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

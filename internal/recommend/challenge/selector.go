// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"sort"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Less orders challenges by score descending, then id ascending.
func Less(a, b *recommend.ChallengeCandidate) bool {
	if a.ChallengeScore != b.ChallengeScore {
		return a.ChallengeScore > b.ChallengeScore
	}
	return a.ID < b.ID
}

// category is the activity category a challenge is diversified on, or its
// venue bucket when the activity carries none.
func category(c *recommend.ChallengeCandidate) recommend.Bucket {
	if c.Activity.Category != "" {
		return c.Activity.Category
	}
	return c.Bucket
}

// Select picks up to k challenges, one per distinct activity category first,
// then the next-highest remaining regardless of category. The input is not
// modified.
func Select(cands []recommend.ChallengeCandidate, k int) []recommend.ChallengeCandidate {
	if k <= 0 || len(cands) == 0 {
		return []recommend.ChallengeCandidate{}
	}

	sorted := make([]recommend.ChallengeCandidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Less(&sorted[i], &sorted[j])
	})

	out := make([]recommend.ChallengeCandidate, 0, k)
	taken := make(map[string]struct{}, k)
	categories := make(map[recommend.Bucket]struct{}, k)

	for i := range sorted {
		if len(out) == k {
			break
		}
		c := &sorted[i]
		if _, dup := taken[c.ID]; dup {
			continue
		}
		if _, seen := categories[category(c)]; seen {
			continue
		}
		out = append(out, *c)
		taken[c.ID] = struct{}{}
		categories[category(c)] = struct{}{}
	}

	for i := range sorted {
		if len(out) == k {
			break
		}
		if _, dup := taken[sorted[i].ID]; dup {
			continue
		}
		out = append(out, sorted[i])
		taken[sorted[i].ID] = struct{}{}
	}
	return out
}

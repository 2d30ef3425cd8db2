// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"fmt"
)

// FeasibilityRanker scores how reliable and visitable a candidate is from its
// rating, review volume and price.
//
// The score is monotonic non-decreasing in rating for a fixed review count
// and in review count for a fixed rating; review confidence saturates at
// ReviewSaturation reviews.
type FeasibilityRanker struct {
	cfg FeasibilityConfig
}

// NewFeasibilityRanker creates a feasibility ranker.
func NewFeasibilityRanker(cfg FeasibilityConfig) *FeasibilityRanker {
	if cfg.ReviewSaturation < 1 {
		cfg.ReviewSaturation = 1
	}
	return &FeasibilityRanker{cfg: cfg}
}

// Rank returns the feasibility score in [0, 1] and the human-readable
// reasons behind it. budget may be empty when the vibe names none.
func (r *FeasibilityRanker) Rank(c *Candidate, budget BudgetTier) (float64, []string) {
	reasons := make([]string, 0, 3)

	base := r.cfg.NeutralRating
	if c.Rating != nil {
		rating := *c.Rating
		if rating < 0 {
			rating = 0
		}
		if rating > 5 {
			rating = 5
		}
		base = rating / 5
		reasons = append(reasons, fmt.Sprintf("rated %.1f/5", rating))
	} else {
		reasons = append(reasons, "no rating available")
	}

	reviews := c.ReviewCount
	if reviews < 0 {
		reviews = 0
	}
	saturated := reviews
	if saturated > r.cfg.ReviewSaturation {
		saturated = r.cfg.ReviewSaturation
	}
	confidence := r.cfg.MinConfidence + (1-r.cfg.MinConfidence)*float64(saturated)/float64(r.cfg.ReviewSaturation)
	score := base * confidence

	if reviews < r.cfg.LowReviewThreshold {
		if score > r.cfg.LowReviewCap {
			score = r.cfg.LowReviewCap
		}
		reasons = append(reasons, fmt.Sprintf("only %d reviews, confidence capped", reviews))
	} else if reviews >= r.cfg.ReviewSaturation {
		reasons = append(reasons, fmt.Sprintf("%d reviews", reviews))
	}

	if c.PriceLevel != nil && budget != "" && !budget.Allows(*c.PriceLevel) {
		score *= r.cfg.PricePenalty
		reasons = append(reasons, fmt.Sprintf("price level %d outside %s budget", *c.PriceLevel, budget))
	}

	return clamp01(score), reasons
}

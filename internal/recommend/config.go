// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"fmt"
	"math"
	"time"
)

// Config contains all tunables of the recommendation pipeline.
type Config struct {
	// Vibe contains the weights of the vibe compatibility checks.
	Vibe VibeWeights `json:"vibe" koanf:"vibe"`

	// Feasibility contains the reliability scoring parameters.
	Feasibility FeasibilityConfig `json:"feasibility" koanf:"feasibility"`

	// Blend contains the personalized score blend and domain boost.
	Blend BlendConfig `json:"blend" koanf:"blend"`

	// Diversity contains the primary selection parameters.
	Diversity DiversityConfig `json:"diversity" koanf:"diversity"`

	// Challenge contains challenge mining, scoring and assembly parameters.
	Challenge ChallengeConfig `json:"challenge" koanf:"challenge"`

	// Pool contains candidate pool query limits.
	Pool PoolConfig `json:"pool" koanf:"pool"`
}

// VibeWeights are the maximum contributions of each vibe check.
type VibeWeights struct {
	Energy  float64 `json:"energy" koanf:"energy"`
	Social  float64 `json:"social" koanf:"social"`
	Mood    float64 `json:"mood" koanf:"mood"`
	Budget  float64 `json:"budget" koanf:"budget"`
	Quality float64 `json:"quality" koanf:"quality"`

	// QualityMinRating is the rating at which the quality bonus applies.
	// Default: 4.0.
	QualityMinRating float64 `json:"quality_min_rating" koanf:"quality_min_rating"`

	// BudgetMismatchCredit is the fraction of the budget weight awarded when
	// the price tier falls outside the budget. Default: 0.3.
	BudgetMismatchCredit float64 `json:"budget_mismatch_credit" koanf:"budget_mismatch_credit"`
}

// FeasibilityConfig contains the reliability scoring parameters.
type FeasibilityConfig struct {
	// ReviewSaturation is the review count above which more reviews stop
	// adding confidence. Default: 50.
	ReviewSaturation int `json:"review_saturation" koanf:"review_saturation"`

	// LowReviewThreshold is the review count below which the score is capped.
	// Default: 10.
	LowReviewThreshold int `json:"low_review_threshold" koanf:"low_review_threshold"`

	// LowReviewCap is the maximum score of a low-review candidate. Default: 0.6.
	LowReviewCap float64 `json:"low_review_cap" koanf:"low_review_cap"`

	// MinConfidence is the confidence multiplier at zero reviews. Default: 0.7.
	MinConfidence float64 `json:"min_confidence" koanf:"min_confidence"`

	// NeutralRating is the normalized rating assumed when none is known.
	// Default: 0.5.
	NeutralRating float64 `json:"neutral_rating" koanf:"neutral_rating"`

	// PricePenalty multiplies the score when the price tier contradicts the
	// budget. Default: 0.85.
	PricePenalty float64 `json:"price_penalty" koanf:"price_penalty"`
}

// BlendConfig contains the personalized score blend.
type BlendConfig struct {
	VibeWeight        float64 `json:"vibe_weight" koanf:"vibe_weight"`
	FeasibilityWeight float64 `json:"feasibility_weight" koanf:"feasibility_weight"`

	// DomainBoost is added to candidates of an active domain. Default: 0.15.
	DomainBoost float64 `json:"domain_boost" koanf:"domain_boost"`

	// EnsureDomainInTopFive enables the ensure-in-top-five swap. Default: true.
	EnsureDomainInTopFive bool `json:"ensure_domain_in_top_five" koanf:"ensure_domain_in_top_five"`
}

// DiversityConfig contains the primary selection parameters.
type DiversityConfig struct {
	// TargetSize is the number of primary recommendations. Default: 5.
	TargetSize int `json:"target_size" koanf:"target_size"`

	// RegionAware enables region pre-selection. Default: true.
	RegionAware bool `json:"region_aware" koanf:"region_aware"`

	// MaxRegionSeeds is the number of regions pre-selected. Default: 3.
	MaxRegionSeeds int `json:"max_region_seeds" koanf:"max_region_seeds"`
}

// ChallengeWeights are the weights of the challenge sub-scores.
type ChallengeWeights struct {
	Weather  float64 `json:"weather" koanf:"weather"`
	Travel   float64 `json:"travel" koanf:"travel"`
	Novelty  float64 `json:"novelty" koanf:"novelty"`
	Seasonal float64 `json:"seasonal" koanf:"seasonal"`
	Safety   float64 `json:"safety" koanf:"safety"`
}

// BudgetConfig bounds the external calls of challenge assembly.
type BudgetConfig struct {
	MaxTotalCalls         int           `json:"max_total_calls" koanf:"max_total_calls"`
	MaxCallsPerProvider   int           `json:"max_calls_per_provider" koanf:"max_calls_per_provider"`
	MaxConcurrentCalls    int           `json:"max_concurrent_calls" koanf:"max_concurrent_calls"`
	TimeoutPerCall        time.Duration `json:"timeout_per_call" koanf:"timeout_per_call"`
	MaxTotalExecutionTime time.Duration `json:"max_total_execution_time" koanf:"max_total_execution_time"`
}

// ChallengeConfig contains challenge mining, scoring and assembly parameters.
type ChallengeConfig struct {
	// Enabled toggles the challenge pipeline. Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// MaxChallenges is K, the number of challenges returned. Default: 2.
	MaxChallenges int `json:"max_challenges" koanf:"max_challenges"`

	Weights ChallengeWeights `json:"weights" koanf:"weights"`

	// MinExplorationBias and MaxExplorationBias clamp openness/5.
	MinExplorationBias float64 `json:"min_exploration_bias" koanf:"min_exploration_bias"`
	MaxExplorationBias float64 `json:"max_exploration_bias" koanf:"max_exploration_bias"`

	// GateSlack is added to the exploration bias. Default: 0.3.
	GateSlack float64 `json:"gate_slack" koanf:"gate_slack"`

	// VerifyRadiusKm is the search radius sent to the venue verifier.
	VerifyRadiusKm float64 `json:"verify_radius_km" koanf:"verify_radius_km"`

	// MaxFinalists is how many scored challenges are handed to assembly,
	// so that dropped candidates can be replaced. Default: 4.
	MaxFinalists int `json:"max_finalists" koanf:"max_finalists"`

	Budget BudgetConfig `json:"budget" koanf:"budget"`
}

// PoolConfig contains candidate pool query limits.
type PoolConfig struct {
	// DefaultRadiusKm is used when a request has no radius. Default: 25.
	DefaultRadiusKm float64 `json:"default_radius_km" koanf:"default_radius_km"`

	// MaxRadiusKm bounds request radii. Default: 500.
	MaxRadiusKm float64 `json:"max_radius_km" koanf:"max_radius_km"`

	// MaxCandidates bounds the pool size. Default: 300.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// Timeout bounds the pool query. Default: 5s.
	Timeout time.Duration `json:"timeout" koanf:"timeout"`
}

// DefaultConfig returns a Config with production defaults.
func DefaultConfig() *Config {
	return &Config{
		Vibe: VibeWeights{
			Energy:               0.30,
			Social:               0.25,
			Mood:                 0.20,
			Budget:               0.15,
			Quality:              0.10,
			QualityMinRating:     4.0,
			BudgetMismatchCredit: 0.3,
		},
		Feasibility: FeasibilityConfig{
			ReviewSaturation:   50,
			LowReviewThreshold: 10,
			LowReviewCap:       0.6,
			MinConfidence:      0.7,
			NeutralRating:      0.5,
			PricePenalty:       0.85,
		},
		Blend: BlendConfig{
			VibeWeight:            0.6,
			FeasibilityWeight:     0.4,
			DomainBoost:           0.15,
			EnsureDomainInTopFive: true,
		},
		Diversity: DiversityConfig{
			TargetSize:     5,
			RegionAware:    true,
			MaxRegionSeeds: 3,
		},
		Challenge: ChallengeConfig{
			Enabled:       true,
			MaxChallenges: 2,
			Weights: ChallengeWeights{
				Weather:  0.30,
				Travel:   0.20,
				Novelty:  0.25,
				Seasonal: 0.15,
				Safety:   0.10,
			},
			MinExplorationBias: 0.1,
			MaxExplorationBias: 0.9,
			GateSlack:          0.3,
			VerifyRadiusKm:     30,
			MaxFinalists:       4,
			Budget: BudgetConfig{
				MaxTotalCalls:         12,
				MaxCallsPerProvider:   6,
				MaxConcurrentCalls:    4,
				TimeoutPerCall:        4 * time.Second,
				MaxTotalExecutionTime: 10 * time.Second,
			},
		},
		Pool: PoolConfig{
			DefaultRadiusKm: 25,
			MaxRadiusKm:     500,
			MaxCandidates:   300,
			Timeout:         5 * time.Second,
		},
	}
}

// Validate checks the configuration for errors.
//
//nolint:gocyclo // validation needs to check many fields
func (c *Config) Validate() error {
	for name, w := range map[string]float64{
		"vibe.energy":  c.Vibe.Energy,
		"vibe.social":  c.Vibe.Social,
		"vibe.mood":    c.Vibe.Mood,
		"vibe.budget":  c.Vibe.Budget,
		"vibe.quality": c.Vibe.Quality,
	} {
		if w < 0 || math.IsNaN(w) {
			return fmt.Errorf("%s must be non-negative, got %f", name, w)
		}
	}

	if c.Feasibility.ReviewSaturation < 1 {
		return fmt.Errorf("feasibility.review_saturation must be positive, got %d", c.Feasibility.ReviewSaturation)
	}
	if c.Feasibility.LowReviewCap < 0 || c.Feasibility.LowReviewCap > 1 {
		return fmt.Errorf("feasibility.low_review_cap must be in [0, 1], got %f", c.Feasibility.LowReviewCap)
	}
	if c.Feasibility.MinConfidence < 0 || c.Feasibility.MinConfidence > 1 {
		return fmt.Errorf("feasibility.min_confidence must be in [0, 1], got %f", c.Feasibility.MinConfidence)
	}
	if c.Feasibility.PricePenalty < 0 || c.Feasibility.PricePenalty > 1 {
		return fmt.Errorf("feasibility.price_penalty must be in [0, 1], got %f", c.Feasibility.PricePenalty)
	}

	if c.Blend.VibeWeight < 0 || c.Blend.FeasibilityWeight < 0 {
		return fmt.Errorf("blend weights must be non-negative, got %f/%f", c.Blend.VibeWeight, c.Blend.FeasibilityWeight)
	}
	if sum := c.Blend.VibeWeight + c.Blend.FeasibilityWeight; math.Abs(sum-1) > 1e-9 {
		return fmt.Errorf("blend weights must sum to 1, got %f", sum)
	}
	if c.Blend.DomainBoost < 0 || c.Blend.DomainBoost > 1 {
		return fmt.Errorf("blend.domain_boost must be in [0, 1], got %f", c.Blend.DomainBoost)
	}

	if c.Diversity.TargetSize < 0 {
		return fmt.Errorf("diversity.target_size must be non-negative, got %d", c.Diversity.TargetSize)
	}
	if c.Diversity.MaxRegionSeeds < 0 {
		return fmt.Errorf("diversity.max_region_seeds must be non-negative, got %d", c.Diversity.MaxRegionSeeds)
	}

	if c.Challenge.MaxChallenges < 0 {
		return fmt.Errorf("challenge.max_challenges must be non-negative, got %d", c.Challenge.MaxChallenges)
	}
	if c.Challenge.MinExplorationBias > c.Challenge.MaxExplorationBias {
		return fmt.Errorf("challenge.min_exploration_bias must be <= max_exploration_bias, got %f > %f",
			c.Challenge.MinExplorationBias, c.Challenge.MaxExplorationBias)
	}
	if c.Challenge.Enabled {
		b := c.Challenge.Budget
		if b.MaxTotalCalls < 1 || b.MaxCallsPerProvider < 1 || b.MaxConcurrentCalls < 1 {
			return fmt.Errorf("challenge.budget call limits must be positive, got total=%d per_provider=%d concurrent=%d",
				b.MaxTotalCalls, b.MaxCallsPerProvider, b.MaxConcurrentCalls)
		}
		if b.TimeoutPerCall <= 0 || b.MaxTotalExecutionTime <= 0 {
			return fmt.Errorf("challenge.budget timeouts must be positive, got per_call=%v total=%v",
				b.TimeoutPerCall, b.MaxTotalExecutionTime)
		}
	}

	if c.Pool.DefaultRadiusKm <= 0 {
		return fmt.Errorf("pool.default_radius_km must be positive, got %f", c.Pool.DefaultRadiusKm)
	}
	if c.Pool.MaxRadiusKm < c.Pool.DefaultRadiusKm {
		return fmt.Errorf("pool.max_radius_km must be >= pool.default_radius_km, got %f < %f",
			c.Pool.MaxRadiusKm, c.Pool.DefaultRadiusKm)
	}
	if c.Pool.MaxCandidates < 1 {
		return fmt.Errorf("pool.max_candidates must be positive, got %d", c.Pool.MaxCandidates)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// All nested structs contain only value types.
	clone := *c
	return &clone
}

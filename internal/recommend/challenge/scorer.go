// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"math"
	"strings"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Seasonal sub-scores.
const (
	seasonExact       = 1.0
	seasonAllYear     = 0.7
	seasonMismatch    = 0.3
	seasonUnspecified = 0.5
)

// Safety deductions.
const (
	safetyHardPenalty    = 0.3
	safetyWeatherPenalty = 0.4
	safetyLongPenalty    = 0.2
	safetyFloor          = 0.1
	hardDifficulty       = 4
	longDurationHours    = 8.0
	poorWeatherScore     = 0.4
)

// Scorer computes the weighted challenge score.
type Scorer struct {
	weights recommend.ChallengeWeights
}

// NewScorer creates a scorer with the given sub-score weights.
func NewScorer(weights recommend.ChallengeWeights) *Scorer {
	return &Scorer{weights: weights}
}

// Score fills SubScores and ChallengeScore of every candidate in place.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (s *Scorer) Score(cands []recommend.ChallengeCandidate, in recommend.ChallengeInput) {
	user := in.User.Normalize()
	for i := range cands {
		c := &cands[i]
		sub := recommend.ChallengeSubScores{
			Weather:  weatherScore(&c.Activity, in.Weather),
			Travel:   TravelScore(c.DistanceKm),
			Novelty:  NoveltyScore(&c.Activity, user),
			Seasonal: SeasonalScore(&c.Activity, in.Time.Season),
		}
		sub.Safety = SafetyScore(&c.Activity, sub.Weather)

		c.SubScores = sub
		c.ChallengeScore = s.combine(sub)
	}
}

func (s *Scorer) combine(sub recommend.ChallengeSubScores) float64 {
	w := s.weights
	total := w.Weather*sub.Weather +
		w.Travel*sub.Travel +
		w.Novelty*sub.Novelty +
		w.Seasonal*sub.Seasonal +
		w.Safety*sub.Safety
	if math.IsNaN(total) {
		return 0
	}
	return math.Max(0, math.Min(1, total))
}

// NoveltyScore rewards activities unlike anything the user declared:
// 0.3 for an unfamiliar category, 0.4 times the unfamiliar share of the
// subtypes, 0.2 for a different energy level and 0.1 for a different setting.
func NoveltyScore(a *recommend.Activity, user recommend.UserProfile) float64 {
	score := 0.0
	if !user.HasInterest(string(a.Category)) {
		score += 0.3
	}

	if len(a.Subtypes) > 0 {
		unfamiliar := 0
		for _, st := range a.Subtypes {
			if !user.HasInterest(strings.TrimSpace(st)) {
				unfamiliar++
			}
		}
		score += 0.4 * float64(unfamiliar) / float64(len(a.Subtypes))
	}

	if a.Energy != user.Energy {
		score += 0.2
	}
	if user.Setting != recommend.SettingEither && a.Setting != recommend.SettingEither && a.Setting != user.Setting {
		score += 0.1
	}
	return math.Min(1, score)
}

// SeasonalScore rates how well the current season suits the activity.
func SeasonalScore(a *recommend.Activity, season recommend.Season) float64 {
	if len(a.Seasonality) == 0 {
		return seasonUnspecified
	}
	allYear := false
	for _, s := range a.Seasonality {
		if s == string(season) {
			return seasonExact
		}
		if s == recommend.SeasonAllYear {
			allYear = true
		}
	}
	if allYear {
		return seasonAllYear
	}
	return seasonMismatch
}

// SafetyScore starts at 1 and deducts for hard, weather-exposed or long
// activities, with a floor of 0.1.
func SafetyScore(a *recommend.Activity, weather float64) float64 {
	score := 1.0
	if a.Difficulty >= hardDifficulty {
		score -= safetyHardPenalty
	}
	if weather < poorWeatherScore {
		score -= safetyWeatherPenalty
	}
	if a.TypicalDurationHours > longDurationHours {
		score -= safetyLongPenalty
	}
	return math.Max(safetyFloor, score)
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"math"
	"strings"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Finder mines the scored pool for candidates that stretch the user's
// comfort zone.
type Finder struct {
	cfg      recommend.ChallengeConfig
	ontology recommend.Ontology
}

// NewFinder creates a finder. ont may be nil, in which case every candidate
// is described by an activity derived from its bucket and type tags.
func NewFinder(cfg recommend.ChallengeConfig, ont recommend.Ontology) *Finder {
	return &Finder{cfg: cfg, ontology: ont}
}

// ExplorationBias returns clamp(openness/5, min, max), raised to the
// externally supplied exploration weight when that is higher.
func (f *Finder) ExplorationBias(openness int, weight *float64) float64 {
	bias := float64(openness) / 5
	bias = math.Max(f.cfg.MinExplorationBias, math.Min(f.cfg.MaxExplorationBias, bias))
	if weight != nil && !math.IsNaN(*weight) && *weight > bias {
		bias = math.Min(1, *weight)
	}
	return bias
}

// Find returns the qualifying challenge candidates in pool order. A
// candidate qualifies when at least one factor fires, neither its bucket nor
// its activity category appears in the top five, and its share of fired
// factors passes the exploration gate.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (f *Finder) Find(in recommend.ChallengeInput) []recommend.ChallengeCandidate {
	user := in.User.Normalize()
	gate := f.ExplorationBias(user.Openness, in.ExplorationWeight) + f.cfg.GateSlack

	topBuckets := make(map[recommend.Bucket]struct{}, len(in.TopFive))
	topIDs := make(map[string]struct{}, len(in.TopFive))
	topSubtypes := make(map[string]struct{}, len(in.TopFive))
	for i := range in.TopFive {
		topBuckets[in.TopFive[i].Bucket] = struct{}{}
		topIDs[in.TopFive[i].ID] = struct{}{}
		if st := in.TopFive[i].Subtype; st != "" {
			topSubtypes[strings.ToLower(st)] = struct{}{}
		}
	}

	out := make([]recommend.ChallengeCandidate, 0)
	for i := range in.Pool {
		sc := &in.Pool[i]
		if _, ok := topIDs[sc.ID]; ok {
			continue
		}
		if _, ok := topBuckets[sc.Bucket]; ok {
			continue
		}

		activity := f.activityFor(&sc.Candidate)
		if _, ok := topBuckets[activity.Category]; ok {
			continue
		}

		var distance *float64
		if _, dest, ok := destination(&sc.Candidate, &activity, f.ontology); ok && in.Location.Known() {
			d := geo.DistanceKm(in.Location, dest)
			distance = &d
		}

		factors := f.factors(sc, &activity, user, distance, topSubtypes, in)
		if len(factors) == 0 {
			continue
		}
		if float64(len(factors))/recommend.ChallengeFactorCount > gate {
			continue
		}

		out = append(out, recommend.ChallengeCandidate{
			ScoredCandidate: *sc,
			Activity:        activity,
			DistanceKm:      distance,
			Factors:         factors,
		})
	}
	return out
}

// factors evaluates the six challenge factors in their canonical order.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (f *Finder) factors(
	sc *recommend.ScoredCandidate,
	a *recommend.Activity,
	user recommend.UserProfile,
	distance *float64,
	topSubtypes map[string]struct{},
	in recommend.ChallengeInput,
) []recommend.ChallengeFactor {
	fired := make([]recommend.ChallengeFactor, 0, recommend.ChallengeFactorCount)

	if a.Energy == recommend.EnergyHigh && user.Energy != recommend.EnergyHigh {
		fired = append(fired, recommend.FactorEnergy)
	}

	if user.Setting != recommend.SettingEither && a.Setting != recommend.SettingEither && a.Setting != user.Setting {
		fired = append(fired, recommend.FactorSetting)
	}

	if a.Difficulty > user.Openness {
		fired = append(fired, recommend.FactorDifficulty)
	}

	if st := primarySubtype(sc, a); st != "" && !user.HasInterest(st) {
		if _, inTop := topSubtypes[st]; !inTop {
			fired = append(fired, recommend.FactorNovelty)
		}
	}

	if distance != nil && *distance > in.RadiusKm {
		fired = append(fired, recommend.FactorTravel)
	}

	if hasOpportunity(a, in.Time.Season, in.Weather) {
		fired = append(fired, recommend.FactorOpportunity)
	}

	return fired
}

// primarySubtype is the candidate's own subtype, falling back to the
// activity's first subtype.
func primarySubtype(sc *recommend.ScoredCandidate, a *recommend.Activity) string {
	if sc.Subtype != "" {
		return strings.ToLower(sc.Subtype)
	}
	if len(a.Subtypes) > 0 {
		return strings.ToLower(a.Subtypes[0])
	}
	return ""
}

// hasOpportunity reports a seasonal or weather window: the activity lists the
// current season explicitly, or the forecast is good for one of its outdoor
// subtypes.
func hasOpportunity(a *recommend.Activity, season recommend.Season, w recommend.WeatherContext) bool {
	for _, s := range a.Seasonality {
		if s == string(season) {
			return true
		}
	}
	if a.Setting == recommend.SettingIndoor || !w.Known {
		return false
	}
	for _, st := range subtypesOf(a) {
		if Assess(a, st, w) == recommend.SuitabilityGood {
			return true
		}
	}
	return false
}

// activityFor resolves the candidate through the ontology, deriving a
// minimal definition when the catalog has no entry.
func (f *Finder) activityFor(c *recommend.Candidate) recommend.Activity {
	if f.ontology != nil {
		if a, ok := f.ontology.ActivityFor(c); ok {
			return a
		}
	}
	return derivedActivity(c)
}

func derivedActivity(c *recommend.Candidate) recommend.Activity {
	energy := recommend.InferEnergy(c)
	if energy == "" {
		energy = recommend.EnergyMedium
	}
	a := recommend.Activity{
		ID:         "venue:" + c.ID,
		Name:       c.Name,
		Category:   c.Bucket,
		Energy:     energy,
		Setting:    recommend.SettingEither,
		Difficulty: 1,
	}
	if c.Subtype != "" {
		a.Subtypes = []string{c.Subtype}
	}
	return a
}

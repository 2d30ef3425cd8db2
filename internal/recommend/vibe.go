// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"strings"
)

// socialCompatibility[venue][user] is the fraction of the social weight
// awarded for a venue crowd level and a user preference.
var socialCompatibility = map[VenueSocialLevel]map[SocialPreference]float64{
	VenueSolitary: {SocialAlone: 1.0, SocialIntimate: 0.6, SocialSmallGroup: 0.3, SocialCrowd: 0.1},
	VenueIntimate: {SocialAlone: 0.7, SocialIntimate: 1.0, SocialSmallGroup: 0.7, SocialCrowd: 0.3},
	VenueSocial:   {SocialAlone: 0.3, SocialIntimate: 0.6, SocialSmallGroup: 1.0, SocialCrowd: 0.8},
	VenueCrowded:  {SocialAlone: 0.1, SocialIntimate: 0.3, SocialSmallGroup: 0.7, SocialCrowd: 1.0},
}

// moodKeywords lists, per mood, the category keywords a matching venue shows
// in its bucket, subtype, type tags or name.
var moodKeywords = map[string][]string{
	"relaxed":     {"spa", "park", "cafe", "garden", "library", "wellness", "beach", "tea"},
	"adventurous": {"climbing", "hiking", "kayak", "adventure", "zipline", "trail", "surf", "rafting"},
	"cultural":    {"museum", "gallery", "theater", "theatre", "historic", "culture", "monument", "opera"},
	"social":      {"bar", "pub", "cafe", "restaurant", "social", "brewery", "market", "food"},
	"romantic":    {"restaurant", "wine", "garden", "viewpoint", "rooftop", "jazz", "park"},
	"energetic":   {"gym", "sports", "dance", "club", "climbing", "stadium", "arcade", "trampoline"},
	"creative":    {"gallery", "workshop", "studio", "art", "craft", "music", "pottery"},
	"curious":     {"museum", "aquarium", "planetarium", "zoo", "library", "science", "tour"},
	"festive":     {"club", "bar", "nightlife", "concert", "festival", "karaoke", "dance"},
}

// bucketEnergy is the default energy of each bucket.
var bucketEnergy = map[Bucket]EnergyLevel{
	BucketCulture:       EnergyLow,
	BucketNature:        EnergyMedium,
	BucketAdventure:     EnergyHigh,
	BucketSocial:        EnergyMedium,
	BucketWellness:      EnergyLow,
	BucketNightlife:     EnergyHigh,
	BucketSports:        EnergyHigh,
	BucketFood:          EnergyMedium,
	BucketEntertainment: EnergyMedium,
}

// typeEnergy overrides the bucket energy for specific provider types.
var typeEnergy = map[string]EnergyLevel{
	"gym":            EnergyHigh,
	"stadium":        EnergyHigh,
	"night_club":     EnergyHigh,
	"climbing_gym":   EnergyHigh,
	"amusement_park": EnergyHigh,
	"spa":            EnergyLow,
	"library":        EnergyLow,
	"museum":         EnergyLow,
	"art_gallery":    EnergyLow,
	"cafe":           EnergyLow,
	"park":           EnergyMedium,
	"bowling_alley":  EnergyMedium,
}

// bucketSocial is the default crowd level of each bucket.
var bucketSocial = map[Bucket]VenueSocialLevel{
	BucketCulture:       VenueIntimate,
	BucketNature:        VenueSolitary,
	BucketAdventure:     VenueIntimate,
	BucketSocial:        VenueSocial,
	BucketWellness:      VenueSolitary,
	BucketNightlife:     VenueCrowded,
	BucketSports:        VenueSocial,
	BucketFood:          VenueSocial,
	BucketEntertainment: VenueCrowded,
}

// typeSocial overrides the bucket crowd level for specific provider types.
var typeSocial = map[string]VenueSocialLevel{
	"stadium":    VenueCrowded,
	"night_club": VenueCrowded,
	"bar":        VenueSocial,
	"library":    VenueSolitary,
	"spa":        VenueIntimate,
	"restaurant": VenueIntimate,
}

// InferEnergy infers the energy level of a venue from its type tags and
// bucket. Returns "" when nothing is known.
func InferEnergy(c *Candidate) EnergyLevel {
	for _, t := range c.Types {
		if e, ok := typeEnergy[strings.ToLower(t)]; ok {
			return e
		}
	}
	return bucketEnergy[c.Bucket]
}

// InferSocial infers the crowd level of a venue from its type tags and
// bucket. Returns "" when nothing is known.
func InferSocial(c *Candidate) VenueSocialLevel {
	for _, t := range c.Types {
		if s, ok := typeSocial[strings.ToLower(t)]; ok {
			return s
		}
	}
	return bucketSocial[c.Bucket]
}

// VibeScorer scores how well a candidate fits a parsed vibe.
//
// The score is a weighted sum of five independent checks. A check that
// cannot be evaluated (no price, no rating, unknown mood) contributes
// neither its points nor its weight, so missing data never lowers a score.
type VibeScorer struct {
	weights VibeWeights
}

// NewVibeScorer creates a vibe scorer with the given weights.
func NewVibeScorer(weights VibeWeights) *VibeScorer {
	return &VibeScorer{weights: weights}
}

// Score returns the vibe score in [0, 1].
func (s *VibeScorer) Score(c *Candidate, v VibeProfile) float64 {
	raw, applied := 0.0, 0.0
	w := s.weights

	if venue := InferEnergy(c); venue != "" && v.Energy.Rank() >= 0 {
		applied += w.Energy
		switch {
		case venue == v.Energy:
			raw += w.Energy
		case venue.Adjacent(v.Energy):
			raw += w.Energy / 2
		}
	}

	if venue := InferSocial(c); venue != "" {
		if compat, ok := socialCompatibility[venue][v.Social]; ok {
			applied += w.Social
			raw += w.Social * compat
		}
	}

	if keywords, ok := moodKeywords[strings.ToLower(strings.TrimSpace(v.Mood))]; ok && len(keywords) > 0 {
		applied += w.Mood
		raw += w.Mood * float64(matchedKeywords(c, keywords)) / float64(len(keywords))
	}

	if c.PriceLevel != nil && v.Budget != "" {
		applied += w.Budget
		if v.Budget.Allows(*c.PriceLevel) {
			raw += w.Budget
		} else {
			raw += w.Budget * w.BudgetMismatchCredit
		}
	}

	if c.Rating != nil {
		applied += w.Quality
		if *c.Rating >= w.QualityMinRating {
			raw += w.Quality
		}
	}

	if applied == 0 {
		return 0
	}
	return clamp01(raw / applied)
}

// matchedKeywords counts how many keywords appear in the candidate's
// bucket, subtype, type tags or name.
func matchedKeywords(c *Candidate, keywords []string) int {
	var sb strings.Builder
	sb.WriteString(string(c.Bucket))
	sb.WriteByte(' ')
	sb.WriteString(c.Subtype)
	sb.WriteByte(' ')
	sb.WriteString(c.Name)
	for _, t := range c.Types {
		sb.WriteByte(' ')
		sb.WriteString(t)
	}
	haystack := strings.ToLower(sb.String())

	n := 0
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			n++
		}
	}
	return n
}

// clamp01 bounds x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

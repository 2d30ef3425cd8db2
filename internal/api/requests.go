// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"strings"
	"time"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// RecommendationRequest is the body of POST /api/v1/recommendations.
// Exactly one of VibeText and Vibe is needed; when both are sent the
// structured vibe wins and the text only contributes keywords.
type RecommendationRequest struct {
	VibeText string     `json:"vibe_text,omitempty" validate:"required_without=Vibe,max=500"`
	Vibe     *VibeInput `json:"vibe,omitempty"`

	User     UserInput      `json:"user"`
	Location *LocationInput `json:"location" validate:"required"`

	// RadiusKm defaults and clamps to the engine's pool limits.
	RadiusKm float64  `json:"radius_km,omitempty" validate:"gte=0"`
	Types    []string `json:"types,omitempty" validate:"max=20,dive,type_tag"`

	ExplorationWeight *float64 `json:"exploration_weight,omitempty" validate:"omitempty,gte=0,lte=1"`

	// Now overrides the request time, mainly for planning ahead.
	Now *time.Time `json:"now,omitempty"`
}

// VibeInput is a structured vibe supplied by the client.
type VibeInput struct {
	Energy     string   `json:"energy,omitempty" validate:"omitempty,oneof=low medium high"`
	Social     string   `json:"social,omitempty" validate:"omitempty,oneof=alone intimate small_group crowd"`
	Mood       string   `json:"mood,omitempty" validate:"max=64"`
	Categories []string `json:"categories,omitempty" validate:"max=10,dive,type_tag"`
	Budget     string   `json:"budget,omitempty" validate:"omitempty,oneof=free low medium high any"`
	Keywords   []string `json:"keywords,omitempty" validate:"max=20,dive,min=1,max=64"`
}

// UserInput is the user's stated profile. Unknown enum values and an
// out-of-range openness score are defaulted rather than rejected.
type UserInput struct {
	Interests     []string `json:"interests,omitempty" validate:"max=50,dive,max=64"`
	EnergyLevel   string   `json:"energy_level,omitempty"`
	IndoorOutdoor string   `json:"indoor_outdoor,omitempty"`
	OpennessScore int      `json:"openness_score,omitempty"`
}

// LocationInput is a WGS84 coordinate.
type LocationInput struct {
	Lat float64 `json:"lat" validate:"latitude"`
	Lng float64 `json:"lng" validate:"longitude"`
}

// profile converts the structured vibe. An explicit vibe is fully
// confident.
func (v *VibeInput) profile() recommend.VibeProfile {
	cats := make([]recommend.Bucket, 0, len(v.Categories))
	for _, c := range v.Categories {
		cats = append(cats, recommend.ParseBucket(c))
	}
	keywords := make([]string, 0, len(v.Keywords))
	for _, k := range v.Keywords {
		if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
			keywords = append(keywords, k)
		}
	}

	return recommend.NormalizeVibe(recommend.VibeProfile{
		Energy:     recommend.ParseEnergy(v.Energy),
		Social:     recommend.SocialPreference(v.Social),
		Mood:       v.Mood,
		Categories: cats,
		Budget:     recommend.BudgetTier(v.Budget),
		Keywords:   keywords,
		Confidence: 1,
	})
}

func (u *UserInput) profile() recommend.UserProfile {
	interests := make([]string, 0, len(u.Interests))
	for _, i := range u.Interests {
		if i = strings.ToLower(strings.TrimSpace(i)); i != "" {
			interests = append(interests, i)
		}
	}
	return recommend.UserProfile{
		Interests: interests,
		Energy:    recommend.ParseEnergy(u.EnergyLevel),
		Setting:   recommend.ParseSetting(u.IndoorOutdoor),
		Openness:  u.OpennessScore,
	}.Normalize()
}

// toRequest builds the engine request once the vibe is resolved.
func (req *RecommendationRequest) toRequest(requestID string, vibe recommend.VibeProfile) recommend.Request {
	out := recommend.Request{
		RequestID:         requestID,
		Vibe:              vibe,
		User:              req.User.profile(),
		Location:          geo.Point{Lat: req.Location.Lat, Lng: req.Location.Lng},
		RadiusKm:          req.RadiusKm,
		Types:             req.Types,
		ExplorationWeight: req.ExplorationWeight,
	}
	if req.Now != nil {
		out.Now = *req.Now
	}
	return out
}

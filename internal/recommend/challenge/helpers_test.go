// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"context"
	"math"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

var nyc = geo.Point{Lat: 40.7128, Lng: -74.0060}

func ptrFloat(f float64) *float64 { return &f }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// mockOntology resolves activities by candidate subtype.
type mockOntology struct {
	activities map[string]recommend.Activity
	regions    map[string]geo.Point
}

func (m *mockOntology) ActivityFor(c *recommend.Candidate) (recommend.Activity, bool) {
	a, ok := m.activities[c.Subtype]
	return a, ok
}

func (m *mockOntology) RegionCenter(name string) (geo.Point, bool) {
	p, ok := m.regions[name]
	return p, ok
}

func testOntology() *mockOntology {
	return &mockOntology{
		activities: map[string]recommend.Activity{
			"kayaking": {
				ID: "kayaking", Name: "Sea Kayaking", Category: recommend.BucketAdventure,
				Subtypes: []string{"kayaking"}, Energy: recommend.EnergyHigh, Setting: recommend.SettingOutdoor,
				Seasonality: []string{"summer"}, Difficulty: 3, Regions: []string{"Long Island"},
				TypicalDurationHours: 4,
			},
			"yoga": {
				ID: "yoga", Name: "Sunrise Yoga", Category: recommend.BucketWellness,
				Subtypes: []string{"yoga"}, Energy: recommend.EnergyLow, Setting: recommend.SettingOutdoor,
				Seasonality: []string{"spring", "summer"}, Difficulty: 2, TypicalDurationHours: 2,
			},
			"salsa": {
				ID: "salsa", Name: "Salsa Night", Category: recommend.BucketNightlife,
				Subtypes: []string{"salsa"}, Energy: recommend.EnergyHigh, Setting: recommend.SettingIndoor,
				Seasonality: []string{recommend.SeasonAllYear}, Difficulty: 3, TypicalDurationHours: 3,
			},
			"summit": {
				ID: "summit", Name: "Summit Trek", Category: recommend.BucketAdventure,
				Subtypes: []string{"summit"}, Energy: recommend.EnergyHigh, Setting: recommend.SettingOutdoor,
				Seasonality: []string{"summer"}, Difficulty: 5, Regions: []string{"Adirondacks"},
				TypicalDurationHours: 10,
			},
			"history": {
				ID: "history", Name: "History Walk", Category: recommend.BucketCulture,
				Subtypes: []string{"history"}, Energy: recommend.EnergyLow, Setting: recommend.SettingEither,
				Difficulty: 1,
			},
		},
		regions: map[string]geo.Point{
			"Long Island": {Lat: 40.7891, Lng: -73.1350},
			"Adirondacks": {Lat: 44.1128, Lng: -73.9230},
		},
	}
}

func scored(id string, bucket recommend.Bucket, subtype string, score float64, loc geo.Point) recommend.ScoredCandidate {
	return recommend.ScoredCandidate{
		Candidate: recommend.Candidate{
			ID:       id,
			Name:     id,
			Bucket:   bucket,
			Subtype:  subtype,
			Location: loc,
		},
		PersonalizedScore: score,
	}
}

func summerInput() recommend.ChallengeInput {
	now := time.Date(2026, time.July, 15, 10, 0, 0, 0, time.UTC)
	return recommend.ChallengeInput{
		Pool: []recommend.ScoredCandidate{
			scored("c-kayak", recommend.BucketAdventure, "kayaking", 0.6, geo.Point{Lat: 40.75, Lng: -73.95}),
			scored("c-yoga", recommend.BucketWellness, "yoga", 0.5, geo.Point{Lat: 40.72, Lng: -74.01}),
			scored("c-salsa", recommend.BucketNightlife, "salsa", 0.55, geo.Point{Lat: 40.73, Lng: -73.99}),
			scored("c-history", recommend.BucketCulture, "history", 0.7, geo.Point{Lat: 40.71, Lng: -74.00}),
		},
		TopFive: []recommend.ScoredCandidate{
			scored("museum", recommend.BucketCulture, "museum", 0.9, nyc),
		},
		User: recommend.UserProfile{
			Energy:   recommend.EnergyLow,
			Openness: 4,
			Setting:  recommend.SettingEither,
		},
		Time:      recommend.NewTimeContext(now, nyc),
		Location:  nyc,
		RadiusKm:  25,
		RequestID: "req-test",
	}
}

// mockVerifier returns one good venue per call unless fn overrides it.
type mockVerifier struct {
	fn    func(q recommend.VerifyQuery) ([]recommend.Venue, error)
	calls atomic.Int32

	mu      sync.Mutex
	queries []recommend.VerifyQuery
}

func (m *mockVerifier) Verify(ctx context.Context, q recommend.VerifyQuery) ([]recommend.Venue, error) {
	m.calls.Add(1)
	m.mu.Lock()
	m.queries = append(m.queries, q)
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.fn != nil {
		return m.fn(q)
	}
	return []recommend.Venue{{
		ID:       "v-" + strings.Join(q.Keywords, "-"),
		Name:     "Venue for " + strings.Join(q.Keywords, ", "),
		Location: q.Center,
		Rating:   4.5,
	}}, nil
}

type mockWeather struct {
	forecast recommend.Forecast
	err      error
	calls    atomic.Int32
}

func (m *mockWeather) Forecast(_ context.Context, _ geo.Point, _ time.Time) (recommend.Forecast, error) {
	m.calls.Add(1)
	return m.forecast, m.err
}

func testConfig() recommend.ChallengeConfig {
	return recommend.DefaultConfig().Challenge
}

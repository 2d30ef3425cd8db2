// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/ontology"
	"github.com/tomtom215/vibecompass/internal/recommend"
	"github.com/tomtom215/vibecompass/internal/recommend/challenge"
	"github.com/tomtom215/vibecompass/internal/recommend/diversity"
)

type staticPool []recommend.Candidate

func (p staticPool) Candidates(context.Context, recommend.PoolQuery) ([]recommend.Candidate, error) {
	return p, nil
}

type echoVerifier struct{}

func (echoVerifier) Verify(_ context.Context, q recommend.VerifyQuery) ([]recommend.Venue, error) {
	return []recommend.Venue{{ID: "v-" + q.Region, Name: q.Region + " outfitters", Location: q.Center, Rating: 4.6}}, nil
}

func rating(f float64) *float64 { return &f }

var manhattan = geo.Point{Lat: 40.7128, Lng: -74.0060}

func near(dLat, dLng float64) geo.Point {
	return geo.Point{Lat: manhattan.Lat + dLat, Lng: manhattan.Lng + dLng}
}

func pipelineCandidates() staticPool {
	return staticPool{
		{ID: "museum", Name: "Art Museum", Bucket: "culture", Types: []string{"museum"}, Rating: rating(4.8), ReviewCount: 300, Location: near(0.01, 0)},
		{ID: "park", Name: "Riverside Park", Bucket: "nature", Types: []string{"park"}, Rating: rating(4.6), ReviewCount: 120, Location: near(0.02, 0)},
		{ID: "cafe", Name: "Corner Cafe", Bucket: "social", Types: []string{"cafe"}, Rating: rating(4.4), ReviewCount: 80, Location: near(0, 0.01)},
		{ID: "spa", Name: "Day Spa", Bucket: "wellness", Types: []string{"spa"}, Rating: rating(4.7), ReviewCount: 60, Location: near(0, 0.02)},
		{ID: "bistro", Name: "Bistro", Bucket: "food", Types: []string{"restaurant"}, Rating: rating(4.5), ReviewCount: 200, Location: near(-0.01, 0)},
		{ID: "cinema", Name: "Cinema", Bucket: "entertainment", Types: []string{"movie_theater"}, Rating: rating(4.3), ReviewCount: 150, Location: near(-0.02, 0)},
		{ID: "gym", Name: "Iron Gym", Bucket: "sports", Types: []string{"gym"}, Rating: rating(2.0), ReviewCount: 5, Location: near(0, -0.01)},
		{ID: "crag", Name: "City Crag", Bucket: "adventure", Subtype: "rock_climbing", Types: []string{"point_of_interest"}, Rating: rating(3.5), ReviewCount: 8, Location: near(0.03, 0.03)},
	}
}

func newPipeline(t *testing.T) *recommend.Engine {
	t.Helper()

	cfg := recommend.DefaultConfig()
	catalog, err := ontology.Default()
	if err != nil {
		t.Fatalf("ontology.Default() error = %v", err)
	}

	engine, err := recommend.NewEngine(cfg, pipelineCandidates(), diversity.NewSelector(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	engine.SetChallengePlanner(challenge.NewPlanner(cfg.Challenge, catalog, echoVerifier{}, nil, zerolog.Nop()))
	return engine
}

func TestPipeline_SportsDomainSwap(t *testing.T) {
	engine := newPipeline(t)

	resp, err := engine.Recommend(context.Background(), recommend.Request{
		Vibe: recommend.VibeProfile{
			Energy:   recommend.EnergyMedium,
			Social:   recommend.SocialSmallGroup,
			Mood:     "relaxed",
			Budget:   recommend.BudgetAny,
			Keywords: []string{"gym"},
		},
		Location: manhattan,
		Now:      time.Date(2026, time.July, 11, 9, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("Recommend() error = %v", err)
	}

	if len(resp.TopFive) != 5 {
		t.Fatalf("expected 5 primary picks, got %d", len(resp.TopFive))
	}

	top := map[recommend.Bucket]bool{}
	foundGym := false
	seen := map[string]bool{}
	for _, c := range resp.TopFive {
		if seen[c.ID] {
			t.Errorf("duplicate id %s in top five", c.ID)
		}
		seen[c.ID] = true
		top[c.Bucket] = true
		if c.ID == "gym" {
			foundGym = true
			if !c.Boosted || c.BoostDomain != "sports" {
				t.Errorf("gym not marked boosted: %+v", c)
			}
		}
	}
	if !foundGym {
		t.Error("expected the gym to be swapped into the top five")
	}
	if len(resp.Metadata.Overrides) != 1 || resp.Metadata.Overrides[0].Domain != "sports" {
		t.Errorf("expected one sports override, got %+v", resp.Metadata.Overrides)
	}
	if resp.DiversityStats.UniqueBuckets != 5 || resp.DiversityStats.DiversityScore != 1.0 {
		t.Errorf("unexpected diversity stats %+v", resp.DiversityStats)
	}

	if len(resp.Challenges) == 0 || len(resp.Challenges) > 2 {
		t.Fatalf("expected 1-2 challenges, got %d", len(resp.Challenges))
	}
	for _, ch := range resp.Challenges {
		if top[ch.Bucket] || top[ch.Activity.Category] {
			t.Errorf("challenge %s repeats a top-five category", ch.ID)
		}
		if seen[ch.ID] {
			t.Errorf("challenge %s is also a primary pick", ch.ID)
		}
		if len(ch.Venues) == 0 {
			t.Errorf("challenge %s has no venues", ch.ID)
		}
	}
	if resp.Metadata.Season != recommend.SeasonSummer {
		t.Errorf("season = %q, want summer", resp.Metadata.Season)
	}
}

func TestPipeline_PersonalizedIsBlendBeforeBoost(t *testing.T) {
	engine := newPipeline(t)
	vibe := recommend.NormalizeVibe(recommend.VibeProfile{Energy: recommend.EnergyHigh, Social: recommend.SocialCrowd, Mood: "energetic"})

	scored, excluded := engine.ScoreCandidates(pipelineCandidates(), vibe)
	if len(excluded) != 0 {
		t.Fatalf("unexpected exclusions %v", excluded)
	}
	for _, c := range scored {
		want := 0.6*c.VibeScore + 0.4*c.FeasibilityScore
		if diff := c.PersonalizedScore - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("%s personalized = %v, want %v", c.ID, c.PersonalizedScore, want)
		}
	}
}

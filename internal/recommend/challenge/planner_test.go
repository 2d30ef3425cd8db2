// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

func recIDs(recs []recommend.ChallengeRecommendation) []string {
	out := make([]string, len(recs))
	for i := range recs {
		out[i] = recs[i].ID
	}
	return out
}

func TestPlan(t *testing.T) {
	verifier := &mockVerifier{}
	p := NewPlanner(testConfig(), testOntology(), verifier, nil, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}

	// salsa .93 and kayak .815 beat yoga .805.
	got := recIDs(recs)
	if len(got) != 2 || got[0] != "c-salsa" || got[1] != "c-kayak" {
		t.Fatalf("Plan() = %v, want [c-salsa c-kayak]", got)
	}

	buckets := map[recommend.Bucket]bool{}
	for _, r := range recs {
		if r.Bucket == recommend.BucketCulture {
			t.Errorf("%s duplicates the top-five culture bucket", r.ID)
		}
		if buckets[r.Bucket] {
			t.Errorf("duplicate challenge bucket %s", r.Bucket)
		}
		buckets[r.Bucket] = true

		if len(r.Venues) == 0 {
			t.Errorf("%s has no verified venues", r.ID)
		}
		if r.ChallengeLevel < 1 || r.ChallengeLevel > 5 {
			t.Errorf("%s challenge level %d outside [1, 5]", r.ID, r.ChallengeLevel)
		}
		if len(r.ComfortZoneStretch) != len(r.Factors) {
			t.Errorf("%s has %d stretch descriptions for %d factors", r.ID, len(r.ComfortZoneStretch), len(r.Factors))
		}
		if r.WhyNow == "" {
			t.Errorf("%s has no rationale", r.ID)
		}
	}

	kayak := recs[1]
	if kayak.Region != "Long Island" {
		t.Errorf("kayak region = %q, want Long Island", kayak.Region)
	}
	if kayak.Travel.TransportMode != recommend.TransportDrive || !kayak.Travel.Feasible {
		t.Errorf("unexpected kayak travel %+v", kayak.Travel)
	}
	if kayak.Forecast.Suitability != recommend.SuitabilityUnknown {
		t.Errorf("kayak forecast = %q, want unknown without weather", kayak.Forecast.Suitability)
	}
}

func TestPlanReplacesDroppedCandidate(t *testing.T) {
	verifier := &mockVerifier{
		fn: func(q recommend.VerifyQuery) ([]recommend.Venue, error) {
			if strings.Contains(strings.Join(q.Keywords, ","), "kayaking") {
				return nil, nil
			}
			return []recommend.Venue{{ID: "v", Name: "Venue", Location: q.Center, Rating: 4.2}}, nil
		},
	}
	p := NewPlanner(testConfig(), testOntology(), verifier, nil, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	got := recIDs(recs)
	if len(got) != 2 || got[0] != "c-salsa" || got[1] != "c-yoga" {
		t.Errorf("Plan() = %v, want [c-salsa c-yoga]", got)
	}
}

func TestPlanProviderErrorDropsOnlyThatCandidate(t *testing.T) {
	verifier := &mockVerifier{
		fn: func(q recommend.VerifyQuery) ([]recommend.Venue, error) {
			if q.Keywords[0] == "salsa" {
				return nil, errors.New("upstream 503")
			}
			return []recommend.Venue{{ID: "v", Name: "Venue", Location: q.Center, Rating: 4.0}}, nil
		},
	}
	p := NewPlanner(testConfig(), testOntology(), verifier, nil, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	got := recIDs(recs)
	if len(got) != 2 || got[0] != "c-kayak" || got[1] != "c-yoga" {
		t.Errorf("Plan() = %v, want [c-kayak c-yoga]", got)
	}
}

func TestPlanAllDroppedIsEmpty(t *testing.T) {
	verifier := &mockVerifier{
		fn: func(q recommend.VerifyQuery) ([]recommend.Venue, error) {
			// Unusable: unnamed and unrated.
			return []recommend.Venue{{ID: "x", Location: q.Center}}, nil
		},
	}
	p := NewPlanner(testConfig(), testOntology(), verifier, nil, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if recs == nil || len(recs) != 0 {
		t.Errorf("expected empty non-nil list, got %v", recs)
	}
}

func TestPlanRespectsBudget(t *testing.T) {
	cfg := testConfig()
	cfg.Budget.MaxCallsPerProvider = 1
	verifier := &mockVerifier{}
	p := NewPlanner(cfg, testOntology(), verifier, nil, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(recs) != 1 {
		t.Errorf("expected exactly one challenge within a one-call budget, got %v", recIDs(recs))
	}
	if n := verifier.calls.Load(); n != 1 {
		t.Errorf("verifier called %d times, want 1", n)
	}
}

func TestPlanWithWeather(t *testing.T) {
	weather := &mockWeather{forecast: recommend.Forecast{MaxTempC: 26, Condition: "Clear"}}
	p := NewPlanner(testConfig(), testOntology(), &mockVerifier{}, weather, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(recs) == 0 {
		t.Fatal("expected challenges")
	}
	for _, r := range recs {
		if r.Forecast.Condition != "Clear" {
			t.Errorf("%s forecast condition = %q, want Clear", r.ID, r.Forecast.Condition)
		}
		if r.Forecast.Suitability != recommend.SuitabilityGood {
			t.Errorf("%s suitability = %q, want good", r.ID, r.Forecast.Suitability)
		}
	}
	if weather.calls.Load() == 0 {
		t.Error("expected destination forecast lookups")
	}
}

func TestPlanWeatherFailureKeepsCandidate(t *testing.T) {
	weather := &mockWeather{err: errors.New("forecast down")}
	p := NewPlanner(testConfig(), testOntology(), &mockVerifier{}, weather, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected two challenges, got %v", recIDs(recs))
	}
	if recs[1].Forecast.Condition != "unknown" {
		t.Errorf("expected unknown forecast, got %+v", recs[1].Forecast)
	}
}

func TestPlanSlowVerifierTimesOut(t *testing.T) {
	cfg := testConfig()
	cfg.Budget.TimeoutPerCall = 20 * time.Millisecond
	verifier := &mockVerifier{
		fn: func(recommend.VerifyQuery) ([]recommend.Venue, error) {
			time.Sleep(100 * time.Millisecond)
			return nil, context.DeadlineExceeded
		},
	}
	p := NewPlanner(cfg, testOntology(), verifier, nil, zerolog.Nop())

	start := time.Now()
	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil {
		t.Fatalf("Plan() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no challenges, got %v", recIDs(recs))
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("planning took %v", elapsed)
	}
}

func TestPlanDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.MaxChallenges = 0
	verifier := &mockVerifier{}
	p := NewPlanner(cfg, testOntology(), verifier, nil, zerolog.Nop())

	recs, err := p.Plan(context.Background(), summerInput())
	if err != nil || len(recs) != 0 {
		t.Errorf("Plan() = %v, %v; want empty", recs, err)
	}
	if verifier.calls.Load() != 0 {
		t.Error("verifier should not be called")
	}
}

func TestChallengeLevel(t *testing.T) {
	tests := []struct {
		difficulty, factors, want int
	}{
		{1, 1, 1},
		{1, 3, 3},
		{4, 1, 4},
		{2, 6, 5},
		{0, 0, 1},
		{7, 0, 5},
	}
	for _, tt := range tests {
		if got := ChallengeLevel(tt.difficulty, tt.factors); got != tt.want {
			t.Errorf("ChallengeLevel(%d, %d) = %d, want %d", tt.difficulty, tt.factors, got, tt.want)
		}
	}
}

func TestEstimateTravel(t *testing.T) {
	tests := []struct {
		km       float64
		mode     recommend.TransportMode
		feasible bool
	}{
		{120, recommend.TransportDrive, true},
		{350, recommend.TransportTrain, true},
		{550, recommend.TransportTrain, false},
		{900, recommend.TransportFlight, false},
	}
	for _, tt := range tests {
		got := EstimateTravel(tt.km)
		if got.TransportMode != tt.mode || got.Feasible != tt.feasible {
			t.Errorf("EstimateTravel(%v) = %+v", tt.km, got)
		}
		if !approxEqual(got.DrivingTimeHours, tt.km/80) {
			t.Errorf("EstimateTravel(%v) hours = %v", tt.km, got.DrivingTimeHours)
		}
	}
}

func TestSafetyHint(t *testing.T) {
	easy := recommend.Activity{Name: "Park Stroll", Difficulty: 1}
	if h := SafetyHint(&easy, recommend.ForecastBadge{}); h != "" {
		t.Errorf("expected no hint for easy activity, got %q", h)
	}

	hard := recommend.Activity{Name: "Summit Trek", Difficulty: 5, TypicalDurationHours: 10}
	h := SafetyHint(&hard, recommend.ForecastBadge{Suitability: recommend.SuitabilityBad})
	for _, want := range []string{"5/5", "full day", "forecast is poor"} {
		if !strings.Contains(h, want) {
			t.Errorf("hint %q missing %q", h, want)
		}
	}
}

func TestWhyNow(t *testing.T) {
	act := recommend.Activity{Name: "Sea Kayaking", Setting: recommend.SettingOutdoor, Seasonality: []string{"summer"}}
	tc := recommend.TimeContext{Season: recommend.SeasonSummer, Weekday: time.Tuesday}

	got := WhyNow(&act, tc, recommend.ForecastBadge{Condition: "Clear", Suitability: recommend.SuitabilityGood, MaxTempC: 25})
	if !strings.HasPrefix(got, "Summer is peak season for sea kayaking") || !strings.Contains(got, "25°C") {
		t.Errorf("WhyNow() = %q", got)
	}

	tc.Season = recommend.SeasonWinter
	tc.Weekday = time.Saturday
	got = WhyNow(&act, tc, recommend.ForecastBadge{Condition: "unknown", Suitability: recommend.SuitabilityUnknown})
	if !strings.Contains(got, "weekend") {
		t.Errorf("WhyNow() = %q, want weekend rationale", got)
	}
}

func TestDropReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{recommend.ErrNoVenues, "no_venues"},
		{recommend.ErrBudgetExhausted, "budget"},
		{context.DeadlineExceeded, "timeout"},
		{errors.Join(errors.New("places: circuit breaker is open"), recommend.ErrProviderUnavailable), "provider_unavailable"},
		{errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		if got := dropReason(tt.err); got != tt.want {
			t.Errorf("dropReason(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/metrics"
)

// Sentinel errors returned by the pipeline.
var (
	// ErrInvalidTargetSize is returned when a selection size is negative.
	ErrInvalidTargetSize = errors.New("target size must be non-negative")

	// ErrInvalidLocation is returned when a request has no usable location.
	ErrInvalidLocation = errors.New("invalid location")

	// ErrBudgetExhausted is returned when an external call exceeds the call budget.
	ErrBudgetExhausted = errors.New("call budget exhausted")

	// ErrNoVenues is returned when venue verification yields no usable venue.
	ErrNoVenues = errors.New("no verified venues")

	// ErrProviderUnavailable is returned when a provider rejects calls
	// (open circuit, rate limit).
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Selector picks a fixed-size diverse subset of ranked candidates.
// Implementations live in the diversity package.
type Selector interface {
	Name() string
	Select(items []ScoredCandidate, n int) (SelectionResult, error)
}

// ChallengeInput is everything the challenge stages need about a request.
type ChallengeInput struct {
	Pool              []ScoredCandidate
	TopFive           []ScoredCandidate
	User              UserProfile
	Time              TimeContext
	Weather           WeatherContext
	Location          geo.Point
	RadiusKm          float64
	ExplorationWeight *float64
	RequestID         string
}

// ChallengePlanner mines, scores, selects and assembles challenges.
// Implementations live in the challenge package. A planner must tolerate
// partial provider failure and return an empty list rather than an error
// when nothing could be assembled.
type ChallengePlanner interface {
	Plan(ctx context.Context, in ChallengeInput) ([]ChallengeRecommendation, error)
}

// Engine runs the recommendation pipeline:
// pool -> vibe -> feasibility -> blend -> boost -> diversify -> ensure-domain,
// and, independently, the challenge planner on the same scored pool.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	pool     CandidatePool
	selector Selector

	// Optional collaborators
	collabMu sync.RWMutex
	weather  WeatherProvider
	planner  ChallengePlanner

	vibe        *VibeScorer
	feasibility *FeasibilityRanker
	blender     *Blender
	booster     *DomainBooster

	requestCount atomic.Int64
	errorCount   atomic.Int64
	overrideCnt  atomic.Int64
}

// Stats are cumulative engine counters.
type Stats struct {
	RequestCount  int64 `json:"request_count"`
	ErrorCount    int64 `json:"error_count"`
	OverrideCount int64 `json:"override_count"`
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, pool CandidatePool, selector Selector, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if pool == nil {
		return nil, errors.New("candidate pool is required")
	}
	if selector == nil {
		return nil, errors.New("selector is required")
	}

	return &Engine{
		config:      cfg,
		logger:      logger.With().Str("component", "recommend").Logger(),
		pool:        pool,
		selector:    selector,
		vibe:        NewVibeScorer(cfg.Vibe),
		feasibility: NewFeasibilityRanker(cfg.Feasibility),
		blender:     NewBlender(cfg.Blend),
		booster:     NewDomainBooster(DefaultDomains, cfg.Blend.DomainBoost),
	}, nil
}

// SetWeatherProvider sets the provider used for the request weather context.
func (e *Engine) SetWeatherProvider(w WeatherProvider) {
	e.collabMu.Lock()
	defer e.collabMu.Unlock()
	e.weather = w
}

// SetChallengePlanner sets the challenge planner.
func (e *Engine) SetChallengePlanner(p ChallengePlanner) {
	e.collabMu.Lock()
	defer e.collabMu.Unlock()
	e.planner = p
	e.logger.Info().Msg("registered challenge planner")
}

func (e *Engine) collaborators() (WeatherProvider, ChallengePlanner) {
	e.collabMu.RLock()
	defer e.collabMu.RUnlock()
	return e.weather, e.planner
}

// Recommend runs the full pipeline for a request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req = e.prepareRequest(req)
	if !req.Location.Valid() {
		e.errorCount.Add(1)
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: %+v", ErrInvalidLocation, req.Location)
	}

	logger := e.logger.With().Str("request_id", req.RequestID).Logger()
	logger.Debug().
		Str("energy", string(req.Vibe.Energy)).
		Str("mood", req.Vibe.Mood).
		Float64("radius_km", req.RadiusKm).
		Msg("processing recommendation request")

	weatherProvider, planner := e.collaborators()
	timeCtx := NewTimeContext(req.Now, req.Location)

	candidates, err := e.fetchCandidates(ctx, req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("get candidates: %w", err)
	}

	weather := e.weatherContext(ctx, weatherProvider, req, logger)

	stageStart := time.Now()
	scored, excluded := e.ScoreCandidates(candidates, req.Vibe)
	for _, id := range excluded {
		logger.Warn().Str("candidate_id", id).Msg("excluding candidate with non-finite score")
		metrics.CandidatesExcluded.Inc()
	}

	active := e.booster.ActiveDomains(req.Vibe)
	e.booster.Apply(scored, active)
	SortRanked(scored)
	metrics.RecordStage("score", time.Since(stageStart))

	stageStart = time.Now()
	sel, err := e.selector.Select(scored, e.config.Diversity.TargetSize)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecommendRequests.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("select with %s: %w", e.selector.Name(), err)
	}

	if e.config.Blend.EnsureDomainInTopFive && len(active) > 0 {
		for _, o := range e.booster.EnsureInTopFive(&sel, scored, active) {
			e.overrideCnt.Add(1)
			metrics.RecordDomainOverride(o.Domain)
			logger.Info().
				Str("domain", o.Domain).
				Str("inserted_id", o.InsertedID).
				Str("displaced_id", o.DisplacedID).
				Msg("domain candidate swapped into top five")
		}
	}
	metrics.RecordStage("diversify", time.Since(stageStart))
	metrics.DiversityScore.Observe(sel.Stats.DiversityScore)

	challenges := e.planChallenges(ctx, planner, ChallengeInput{
		Pool:              scored,
		TopFive:           sel.Items,
		User:              req.User,
		Time:              timeCtx,
		Weather:           weather,
		Location:          req.Location,
		RadiusKm:          req.RadiusKm,
		ExplorationWeight: req.ExplorationWeight,
		RequestID:         req.RequestID,
	}, logger)

	resp := e.buildResponse(req, sel, challenges, scored, candidates, excluded, active, timeCtx, weather, start)

	result := "success"
	if len(resp.TopFive) == 0 {
		result = "empty"
	}
	metrics.RecordRecommendation(result, time.Since(start), len(candidates))
	metrics.ChallengesReturned.Observe(float64(len(resp.Challenges)))

	logger.Debug().
		Int("candidates", len(candidates)).
		Int("top_five", len(resp.TopFive)).
		Int("challenges", len(resp.Challenges)).
		Float64("diversity_score", resp.DiversityStats.DiversityScore).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("recommendation complete")

	return resp, nil
}

// prepareRequest applies defaults and generates a request ID if needed.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) Request {
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}
	if req.Now.IsZero() {
		req.Now = time.Now()
	}
	if req.RadiusKm <= 0 {
		req.RadiusKm = e.config.Pool.DefaultRadiusKm
	}
	if req.RadiusKm > e.config.Pool.MaxRadiusKm {
		req.RadiusKm = e.config.Pool.MaxRadiusKm
	}
	req.User = req.User.Normalize()
	req.Vibe = NormalizeVibe(req.Vibe)
	return req
}

// NewTimeContext derives the season and weekday of now at a location.
func NewTimeContext(now time.Time, at geo.Point) TimeContext {
	return TimeContext{
		Now:     now,
		Season:  Season(geo.SeasonAt(now, at.Lat)),
		Weekday: now.Weekday(),
	}
}

// fetchCandidates queries the pool, normalizes buckets and drops duplicate ids.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) fetchCandidates(ctx context.Context, req Request) ([]Candidate, error) {
	start := time.Now()
	poolCtx, cancel := context.WithTimeout(ctx, e.config.Pool.Timeout)
	defer cancel()

	raw, err := e.pool.Candidates(poolCtx, PoolQuery{
		Center:   req.Location,
		RadiusKm: req.RadiusKm,
		Types:    req.Types,
		Limit:    e.config.Pool.MaxCandidates,
	})
	metrics.RecordStage("pool", time.Since(start))
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]Candidate, 0, len(raw))
	for _, c := range raw {
		if c.ID == "" {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		c.Bucket = ParseBucket(string(c.Bucket))
		out = append(out, c)
	}
	return out, nil
}

// weatherContext fetches today's forecast. Failures yield an unknown weather
// context; they never fail the request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) weatherContext(ctx context.Context, w WeatherProvider, req Request, logger zerolog.Logger) WeatherContext {
	if w == nil {
		return WeatherContext{}
	}

	wctx, cancel := context.WithTimeout(ctx, e.config.Challenge.Budget.TimeoutPerCall)
	defer cancel()

	fc, err := w.Forecast(wctx, req.Location, req.Now)
	if err != nil {
		logger.Warn().Err(err).Msg("weather unavailable, continuing without forecast")
		return WeatherContext{}
	}
	return WeatherContext{Forecast: fc, Known: true}
}

// ScoreCandidates attaches vibe, feasibility and personalized scores. The
// personalized score is the plain blend; domain boosts are applied later.
// Candidates whose scores are not finite are returned in excluded.
func (e *Engine) ScoreCandidates(candidates []Candidate, vibe VibeProfile) (scored []ScoredCandidate, excluded []string) {
	scored = make([]ScoredCandidate, 0, len(candidates))
	for i := range candidates {
		c := &candidates[i]
		vs := e.vibe.Score(c, vibe)
		fs, reasons := e.feasibility.Rank(c, vibe.Budget)
		ps := e.blender.Blend(vs, fs)

		if !validScore(vs) || !validScore(fs) || !validScore(ps) {
			excluded = append(excluded, c.ID)
			continue
		}

		scored = append(scored, ScoredCandidate{
			Candidate:          *c,
			VibeScore:          vs,
			FeasibilityScore:   fs,
			PersonalizedScore:  clamp01(ps),
			FeasibilityReasons: reasons,
		})
	}
	return scored, excluded
}

// planChallenges runs the challenge planner. Planner errors are logged and
// produce no challenges.
func (e *Engine) planChallenges(ctx context.Context, planner ChallengePlanner, in ChallengeInput, logger zerolog.Logger) []ChallengeRecommendation {
	if planner == nil || !e.config.Challenge.Enabled || e.config.Challenge.MaxChallenges == 0 {
		return []ChallengeRecommendation{}
	}

	start := time.Now()
	defer func() { metrics.RecordStage("challenge", time.Since(start)) }()

	challenges, err := planner.Plan(ctx, in)
	if err != nil {
		logger.Warn().Err(err).Msg("challenge planning failed, returning no challenges")
		return []ChallengeRecommendation{}
	}
	if challenges == nil {
		challenges = []ChallengeRecommendation{}
	}
	return challenges
}

// buildResponse constructs the final response.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) buildResponse(
	req Request,
	sel SelectionResult,
	challenges []ChallengeRecommendation,
	scored []ScoredCandidate,
	candidates []Candidate,
	excluded []string,
	active []Domain,
	timeCtx TimeContext,
	weather WeatherContext,
	start time.Time,
) *Response {
	top := sel.Items
	if top == nil {
		top = []ScoredCandidate{}
	}

	domains := make([]string, 0, len(active))
	for _, d := range active {
		domains = append(domains, d.Name)
	}

	return &Response{
		TopFive:          top,
		Challenges:       challenges,
		DiversityStats:   sel.Stats,
		FeasibilityStats: e.feasibilityStats(scored),
		Metadata: ResponseMetadata{
			RequestID:       req.RequestID,
			TotalCandidates: len(candidates),
			Excluded:        excluded,
			Overrides:       sel.Overrides,
			ActiveDomains:   domains,
			Season:          timeCtx.Season,
			WeatherKnown:    weather.Known,
			LatencyMS:       time.Since(start).Milliseconds(),
			Timestamp:       time.Now(),
		},
	}
}

// feasibilityStats summarizes feasibility across the scored pool.
func (e *Engine) feasibilityStats(scored []ScoredCandidate) FeasibilityStats {
	stats := FeasibilityStats{Candidates: len(scored)}
	if len(scored) == 0 {
		return stats
	}

	var feasSum, ratingSum float64
	for i := range scored {
		feasSum += scored[i].FeasibilityScore
		if scored[i].Rating != nil {
			ratingSum += *scored[i].Rating
			stats.RatedCandidates++
		}
		if scored[i].ReviewCount < e.config.Feasibility.LowReviewThreshold {
			stats.LowConfidence++
		}
	}

	stats.AverageFeasibility = feasSum / float64(len(scored))
	if stats.RatedCandidates > 0 {
		stats.AverageRating = ratingSum / float64(stats.RatedCandidates)
	}
	return stats
}

// GetStats returns cumulative engine counters.
func (e *Engine) GetStats() Stats {
	return Stats{
		RequestCount:  e.requestCount.Load(),
		ErrorCount:    e.errorCount.Load(),
		OverrideCount: e.overrideCnt.Load(),
	}
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

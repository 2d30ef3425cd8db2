// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Planner runs the challenge branch: find, score, select finalists,
// assemble under a call budget, then select the final K.
type Planner struct {
	cfg       recommend.ChallengeConfig
	finder    *Finder
	scorer    *Scorer
	assembler *Assembler
	logger    zerolog.Logger
}

var _ recommend.ChallengePlanner = (*Planner)(nil)

// NewPlanner creates a planner. verifier is required for any challenge to be
// returned; weather may be nil.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewPlanner(
	cfg recommend.ChallengeConfig,
	ont recommend.Ontology,
	verifier recommend.VenueVerifier,
	weather recommend.WeatherProvider,
	logger zerolog.Logger,
) *Planner {
	logger = logger.With().Str("component", "challenge").Logger()
	return &Planner{
		cfg:       cfg,
		finder:    NewFinder(cfg, ont),
		scorer:    NewScorer(cfg.Weights),
		assembler: NewAssembler(cfg, ont, verifier, weather, logger),
		logger:    logger,
	}
}

// Plan returns up to MaxChallenges assembled challenges. It never returns an
// error for provider failures; an empty list means nothing could be
// assembled.
//
//nolint:gocritic // hugeParam: in passed by value for immutability
func (p *Planner) Plan(ctx context.Context, in recommend.ChallengeInput) ([]recommend.ChallengeRecommendation, error) {
	k := p.cfg.MaxChallenges
	if k <= 0 {
		return []recommend.ChallengeRecommendation{}, nil
	}

	found := p.finder.Find(in)
	if len(found) == 0 {
		p.logger.Debug().Str("request_id", in.RequestID).Msg("no challenge candidates passed the finder")
		return []recommend.ChallengeRecommendation{}, nil
	}
	p.scorer.Score(found, in)

	finalists := Select(found, max(k, p.cfg.MaxFinalists))

	if p.cfg.Budget.MaxTotalExecutionTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.Budget.MaxTotalExecutionTime)
		defer cancel()
	}

	budget := NewCallBudget(p.cfg.Budget)
	start := time.Now()
	assembled := p.assembler.Assemble(ctx, budget, finalists, in)
	used, _ := budget.Used()

	p.logger.Debug().
		Str("request_id", in.RequestID).
		Int("found", len(found)).
		Int("finalists", len(finalists)).
		Int("assembled", len(assembled)).
		Int("calls", used).
		Dur("duration", time.Since(start)).
		Msg("challenge planning complete")

	return selectAssembled(assembled, k), nil
}

// selectAssembled applies the category-diverse selection to the survivors of
// assembly.
func selectAssembled(recs []recommend.ChallengeRecommendation, k int) []recommend.ChallengeRecommendation {
	cands := make([]recommend.ChallengeCandidate, len(recs))
	byID := make(map[string]*recommend.ChallengeRecommendation, len(recs))
	for i := range recs {
		cands[i] = recs[i].ChallengeCandidate
		byID[recs[i].ID] = &recs[i]
	}

	chosen := Select(cands, k)
	out := make([]recommend.ChallengeRecommendation, 0, len(chosen))
	for i := range chosen {
		out = append(out, *byID[chosen[i].ID])
	}
	return out
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package recommend implements the venue recommendation pipeline.
//
// # Architecture
//
// A request flows through pure, synchronous scoring stages followed by two
// independent selection branches:
//
//   - VibeScorer: how well a venue fits the parsed vibe
//   - FeasibilityRanker: how reliable and visitable the venue is
//   - Blender: personalized = 0.6 * vibe + 0.4 * feasibility
//   - DomainBooster: lifts venues of domains the vibe names explicitly
//   - Selector (diversity package): five bucket-diverse primary picks
//   - ChallengePlanner (challenge package): up to two comfort-zone stretches
//
// Only the challenge branch performs external calls. Every other stage works
// on in-memory slices and holds no shared mutable state.
//
// # Determinism
//
// All rankings use RankLess: personalized score descending, then candidate
// id ascending. Identical inputs yield identical outputs.
//
// # Failure Handling
//
//   - An empty pool is not an error; the response is empty.
//   - A candidate with a non-finite score is excluded and reported in
//     ResponseMetadata.Excluded.
//   - Weather or challenge failures degrade the response, never fail it.
//   - Only invalid preconditions (bad location, negative target size,
//     invalid config) are returned as errors.
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, pool, diversity.NewRegionAware(cfg.Diversity.MaxRegionSeeds), logger)
//	if err != nil {
//	    return err
//	}
//	engine.SetWeatherProvider(weather)
//	engine.SetChallengePlanner(challenge.NewPlanner(cfg.Challenge, catalog, verifier, weather, logger))
//
//	resp, err := engine.Recommend(ctx, recommend.Request{
//	    Vibe:     vibe,
//	    User:     user,
//	    Location: geo.Point{Lat: 40.71, Lng: -74.00},
//	})
package recommend

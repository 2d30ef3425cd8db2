// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package main

import (
	"context"
	"fmt"

	"github.com/tomtom215/vibecompass/internal/api"
	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/config"
	"github.com/tomtom215/vibecompass/internal/database"
	"github.com/tomtom215/vibecompass/internal/logging"
	"github.com/tomtom215/vibecompass/internal/ontology"
	"github.com/tomtom215/vibecompass/internal/providers"
	"github.com/tomtom215/vibecompass/internal/recommend"
	"github.com/tomtom215/vibecompass/internal/recommend/challenge"
	"github.com/tomtom215/vibecompass/internal/recommend/diversity"
)

// application holds everything main wires into the HTTP handler and the
// supervisor tree.
type application struct {
	engine   *recommend.Engine
	parser   recommend.VibeParser
	store    cache.Store
	db       *database.DB
	checks   []api.ReadinessCheck
	breakers []api.BreakerReporter

	closers []func() error
}

func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			logging.Error().Err(err).Msg("Error during shutdown")
		}
	}
}

// loadCandidates adapts the JSON candidate loader for the import service.
func loadCandidates(path string) ([]recommend.Candidate, error) {
	return providers.LoadCandidatesFile(path)
}

// build creates the cache, providers, candidate pool and engine. On error
// everything opened so far is closed.
func build(ctx context.Context, cfg *config.Config) (app *application, err error) {
	app = &application{}
	defer func() {
		if err != nil {
			app.close()
			app = nil
		}
	}()

	if err = app.initCache(ctx, cfg); err != nil {
		return app, err
	}

	ont, err := loadOntology(cfg)
	if err != nil {
		return app, err
	}

	weather, verifier, err := app.initProviders(cfg)
	if err != nil {
		return app, err
	}

	pool, err := app.initPool(ctx, cfg)
	if err != nil {
		return app, err
	}

	engine, err := recommend.NewEngine(&cfg.Recommend, pool, newSelector(&cfg.Recommend.Diversity), logging.Logger())
	if err != nil {
		return app, fmt.Errorf("create engine: %w", err)
	}
	if weather != nil {
		engine.SetWeatherProvider(weather)
	}
	if cfg.Recommend.Challenge.Enabled {
		if verifier == nil {
			logging.Warn().Msg("Challenges enabled without a venue provider; no challenges will be offered")
		}
		engine.SetChallengePlanner(challenge.NewPlanner(cfg.Recommend.Challenge, ont, verifier, weather, logging.Logger()))
	}
	app.engine = engine

	return app, nil
}

func newSelector(cfg *recommend.DiversityConfig) recommend.Selector {
	if cfg.RegionAware {
		return diversity.NewRegionAware(cfg.MaxRegionSeeds)
	}
	return diversity.NewSelector()
}

func (a *application) initCache(ctx context.Context, cfg *config.Config) error {
	store, closeFn, err := cache.New(cache.Config{
		Type:     cache.Type(cfg.Cache.Type),
		TTL:      cfg.Cache.TTL,
		Capacity: cfg.Cache.Capacity,
		RedisURL: cfg.Cache.RedisURL,
		Prefix:   cfg.Cache.Prefix,
	})
	if err != nil {
		return fmt.Errorf("create cache: %w", err)
	}
	a.store = store
	a.closers = append(a.closers, closeFn)

	if rs, ok := store.(*cache.RedisStore); ok {
		if err := rs.Ping(ctx); err != nil {
			logging.Warn().Err(err).Msg("Redis cache unreachable at startup; provider calls will bypass it")
		}
		a.checks = append(a.checks, api.ReadinessCheck{Name: "redis", Check: rs.Ping})
	}
	return nil
}

func loadOntology(cfg *config.Config) (*ontology.Catalog, error) {
	if cfg.Ontology.CatalogPath == "" {
		return ontology.Default()
	}
	cat, err := ontology.LoadFile(cfg.Ontology.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load ontology: %w", err)
	}
	logging.Info().
		Str("path", cfg.Ontology.CatalogPath).
		Int("activities", len(cat.Activities())).
		Msg("Activity catalog loaded")
	return cat, nil
}

// initProviders creates the enabled HTTP providers. The returned interfaces
// are nil when a provider is disabled.
func (a *application) initProviders(cfg *config.Config) (recommend.WeatherProvider, recommend.VenueVerifier, error) {
	var (
		weather  recommend.WeatherProvider
		verifier recommend.VenueVerifier
	)

	if p := cfg.Providers.Weather; p.Enabled {
		client, err := providers.NewClient("weather", p, a.store)
		if err != nil {
			return nil, nil, err
		}
		weather = providers.NewWeatherClient(client)
		a.breakers = append(a.breakers, client)
	}

	if p := cfg.Providers.Venues; p.Enabled {
		client, err := providers.NewClient("venues", p, a.store)
		if err != nil {
			return nil, nil, err
		}
		verifier = providers.NewVenueClient(client)
		a.breakers = append(a.breakers, client)
	}

	if p := cfg.Providers.Intent; p.Enabled {
		client, err := providers.NewClient("intent", p, a.store)
		if err != nil {
			return nil, nil, err
		}
		a.parser = providers.NewIntentClient(client)
		a.breakers = append(a.breakers, client)
	}

	logging.Info().
		Bool("weather", weather != nil).
		Bool("venues", verifier != nil).
		Bool("intent", a.parser != nil).
		Msg("Providers configured")
	return weather, verifier, nil
}

func (a *application) initPool(ctx context.Context, cfg *config.Config) (recommend.CandidatePool, error) {
	switch cfg.Candidates.Source {
	case config.SourceStatic:
		var candidates []recommend.Candidate
		if cfg.Candidates.StaticFile != "" {
			var err error
			candidates, err = providers.LoadCandidatesFile(cfg.Candidates.StaticFile)
			if err != nil {
				return nil, err
			}
		}
		pool, skipped := providers.NewStaticPool(candidates, cfg.Candidates.GridCellKm)
		logging.Info().Int("candidates", pool.Len()).Int("skipped", skipped).Msg("Static candidate pool loaded")
		return pool, nil

	default:
		db, err := database.New(&cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		a.db = db
		a.closers = append(a.closers, db.Close)
		a.checks = append(a.checks, api.ReadinessCheck{Name: "duckdb", Check: db.Ping})

		if cfg.Database.SeedFile != "" {
			candidates, err := providers.LoadCandidatesFile(cfg.Database.SeedFile)
			if err != nil {
				return nil, err
			}
			n, err := db.SeedIfEmpty(ctx, candidates)
			if err != nil {
				return nil, fmt.Errorf("seed venues: %w", err)
			}
			if n > 0 {
				logging.Info().Int("venues", n).Str("file", cfg.Database.SeedFile).Msg("Venue table seeded")
			}
		}
		return db, nil
	}
}

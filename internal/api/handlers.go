// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"context"
	"time"

	"github.com/tomtom215/vibecompass/internal/middleware"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Recommender runs the recommendation pipeline. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Response, error)
	GetStats() recommend.Stats
}

// ReadinessCheck is one dependency probed by the readiness endpoint.
type ReadinessCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// BreakerReporter exposes a provider's circuit breaker state.
type BreakerReporter interface {
	Name() string
	BreakerState() string
}

// HandlerConfig holds the optional collaborators of a Handler.
type HandlerConfig struct {
	// Parser turns vibe_text into a profile. Nil means every text uses the
	// default profile with the text's keywords.
	Parser recommend.VibeParser

	// RequestTimeout bounds one recommendation. Default: 15s.
	RequestTimeout time.Duration

	Checks   []ReadinessCheck
	Breakers []BreakerReporter
	Version  string
}

// Handler serves the API endpoints.
type Handler struct {
	engine         Recommender
	parser         recommend.VibeParser
	requestTimeout time.Duration
	checks         []ReadinessCheck
	breakers       []BreakerReporter
	version        string
	startTime      time.Time

	// perf is attached by the router.
	perf *middleware.PerformanceMonitor
}

// NewHandler creates a Handler around engine.
func NewHandler(engine Recommender, cfg HandlerConfig) *Handler {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	return &Handler{
		engine:         engine,
		parser:         cfg.Parser,
		requestTimeout: cfg.RequestTimeout,
		checks:         cfg.Checks,
		breakers:       cfg.Breakers,
		version:        cfg.Version,
		startTime:      time.Now(),
	}
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// VenueStore receives imported candidates. Satisfied by *database.DB.
type VenueStore interface {
	UpsertVenues(ctx context.Context, candidates []recommend.Candidate) (int, error)
}

// CandidateLoader reads candidates from a file.
type CandidateLoader func(path string) ([]recommend.Candidate, error)

// ImportServiceConfig configures the candidate import service.
type ImportServiceConfig struct {
	// Path is the candidate seed file.
	Path string

	// Interval between modification checks. Default: 1m
	Interval time.Duration

	// ImportOnStart upserts the file once before polling. When false the
	// file as it exists at start is taken as already imported.
	ImportOnStart bool

	// Timeout bounds a single import. Default: 2m
	Timeout time.Duration
}

// ImportService re-imports the candidate seed file into the venue store
// whenever its size or modification time changes.
type ImportService struct {
	store  VenueStore
	load   CandidateLoader
	config ImportServiceConfig
	logger zerolog.Logger
	name   string

	lastMod  time.Time
	lastSize int64
}

// NewImportService creates a candidate import service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewImportService(store VenueStore, load CandidateLoader, cfg ImportServiceConfig, logger zerolog.Logger) *ImportService {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &ImportService{
		store:  store,
		load:   load,
		config: cfg,
		logger: logger.With().Str("service", "candidate-import").Str("path", cfg.Path).Logger(),
		name:   "candidate-import",
	}
}

// Serve implements suture.Service. Import failures are logged and retried
// on the next tick; they do not restart the service.
func (s *ImportService) Serve(ctx context.Context) error {
	if s.config.Path == "" {
		return fmt.Errorf("candidate import: no seed file configured")
	}

	s.logger.Info().Dur("interval", s.config.Interval).Msg("candidate import service starting")

	if s.config.ImportOnStart {
		if _, err := s.CheckOnce(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("initial candidate import failed")
		}
	} else if info, err := os.Stat(s.config.Path); err == nil {
		s.lastMod, s.lastSize = info.ModTime(), info.Size()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("candidate import service shutting down")
			return ctx.Err()
		case <-ticker.C:
			if _, err := s.CheckOnce(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return ctx.Err()
				}
				s.logger.Warn().Err(err).Msg("candidate import failed")
			}
		}
	}
}

// CheckOnce imports the seed file if it changed since the last successful
// import. It reports the number of venues written.
func (s *ImportService) CheckOnce(ctx context.Context) (int, error) {
	info, err := os.Stat(s.config.Path)
	if err != nil {
		return 0, fmt.Errorf("stat seed file: %w", err)
	}
	if info.ModTime().Equal(s.lastMod) && info.Size() == s.lastSize {
		return 0, nil
	}

	candidates, err := s.load(s.config.Path)
	if err != nil {
		return 0, fmt.Errorf("load seed file: %w", err)
	}

	importCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	start := time.Now()
	n, err := s.store.UpsertVenues(importCtx, candidates)
	if err != nil {
		return 0, fmt.Errorf("upsert venues: %w", err)
	}

	s.lastMod, s.lastSize = info.ModTime(), info.Size()
	s.logger.Info().
		Int("venues", n).
		Dur("duration", time.Since(start)).
		Msg("candidate seed file imported")
	return n, nil
}

// String returns the service name for logging.
func (s *ImportService) String() string {
	return s.name
}

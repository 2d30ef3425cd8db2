// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// stubService runs until canceled, optionally failing its first N starts.
type stubService struct {
	name     string
	starts   atomic.Int32
	failures atomic.Int32
	maxFails int32
	started  chan struct{}
}

func newStubService(name string) *stubService {
	return &stubService{name: name, started: make(chan struct{}, 16)}
}

func (s *stubService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	select {
	case s.started <- struct{}{}:
	default:
	}
	if s.maxFails > 0 && s.failures.Add(1) <= s.maxFails {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *stubService) String() string { return s.name }

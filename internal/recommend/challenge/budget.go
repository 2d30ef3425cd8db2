// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/tomtom215/vibecompass/internal/metrics"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Provider names used for per-provider accounting.
const (
	ProviderWeather = "weather"
	ProviderVenues  = "venues"
)

// CallBudget bounds the external calls of one planning run. It is created
// per request and safe for concurrent use by the assembly goroutines.
type CallBudget struct {
	cfg recommend.BudgetConfig
	sem *semaphore.Weighted

	mu          sync.Mutex
	total       int
	perProvider map[string]int
}

// NewCallBudget creates a budget from cfg.
func NewCallBudget(cfg recommend.BudgetConfig) *CallBudget {
	concurrent := int64(cfg.MaxConcurrentCalls)
	if concurrent < 1 {
		concurrent = 1
	}
	return &CallBudget{
		cfg:         cfg,
		sem:         semaphore.NewWeighted(concurrent),
		perProvider: make(map[string]int),
	}
}

// reserve counts a call against the total and per-provider limits.
func (b *CallBudget) reserve(provider string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cfg.MaxTotalCalls > 0 && b.total >= b.cfg.MaxTotalCalls {
		return fmt.Errorf("%w: %d total calls used", recommend.ErrBudgetExhausted, b.total)
	}
	if b.cfg.MaxCallsPerProvider > 0 && b.perProvider[provider] >= b.cfg.MaxCallsPerProvider {
		return fmt.Errorf("%w: %d calls to %s used", recommend.ErrBudgetExhausted, b.perProvider[provider], provider)
	}
	b.total++
	b.perProvider[provider]++
	return nil
}

// Do runs fn once under the budget with a per-call timeout. It waits for a
// concurrency slot and fails with ErrBudgetExhausted when a call limit is
// reached. The error of fn is returned unchanged.
func (b *CallBudget) Do(ctx context.Context, provider string, fn func(ctx context.Context) error) error {
	if err := b.reserve(provider); err != nil {
		metrics.RecordProviderRejected(provider)
		return err
	}

	if err := b.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("wait for %s call slot: %w", provider, err)
	}
	defer b.sem.Release(1)

	callCtx := ctx
	if b.cfg.TimeoutPerCall > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, b.cfg.TimeoutPerCall)
		defer cancel()
	}

	start := time.Now()
	err := fn(callCtx)
	metrics.RecordProviderCall(provider, time.Since(start), err)
	return err
}

// Used returns the number of calls reserved so far.
func (b *CallBudget) Used() (total int, perProvider map[string]int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	perProvider = make(map[string]int, len(b.perProvider))
	for k, v := range b.perProvider {
		perProvider[k] = v
	}
	return b.total, perProvider
}

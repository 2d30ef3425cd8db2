// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/tomtom215/vibecompass/internal/logging"
)

const readinessCheckTimeout = 2 * time.Second

// CheckResult is the outcome of one readiness check.
type CheckResult struct {
	Healthy bool   `json:"healthy"`
	Error   string `json:"error,omitempty"`
}

// ReadinessStatus is the readiness probe body.
type ReadinessStatus struct {
	Ready  bool                   `json:"ready"`
	Checks map[string]CheckResult `json:"checks"`
}

// HealthLive handles liveness probe requests. It returns 200 whenever the
// process can serve HTTP, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":   true,
		"version": h.version,
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests. Every check runs
// concurrently with its own timeout; any failure answers 503.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := ReadinessStatus{
		Ready:  true,
		Checks: make(map[string]CheckResult, len(h.checks)),
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, c := range h.checks {
		wg.Add(1)
		go func(c ReadinessCheck) {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(r.Context(), readinessCheckTimeout)
			defer cancel()

			res := CheckResult{Healthy: true}
			if err := c.Check(ctx); err != nil {
				res = CheckResult{Healthy: false, Error: err.Error()}
				logging.Ctx(r.Context()).Warn().Err(err).Str("check", c.Name).Msg("readiness check failed")
			}

			mu.Lock()
			status.Checks[c.Name] = res
			if !res.Healthy {
				status.Ready = false
			}
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	rw := NewResponseWriter(w, r)
	if !status.Ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "service not ready", status)
		return
	}
	rw.Success(status)
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"net/http"

	"github.com/tomtom215/vibecompass/internal/middleware"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// StatsResponse is the body of GET /api/v1/stats.
type StatsResponse struct {
	Engine    recommend.Stats            `json:"engine"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Providers map[string]string          `json:"providers"`
}

// Stats handles GET /api/v1/stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Engine:    h.engine.GetStats(),
		Endpoints: []middleware.EndpointStats{},
		Providers: make(map[string]string, len(h.breakers)),
	}
	if h.perf != nil {
		resp.Endpoints = h.perf.GetStats()
	}
	for _, b := range h.breakers {
		resp.Providers[b.Name()] = b.BreakerState()
	}

	NewResponseWriter(w, r).Success(resp)
}

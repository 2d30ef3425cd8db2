// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package middleware provides HTTP middleware for the recommendation API.

Key Components:

  - RequestID: X-Request-ID propagation into the logging context
  - AccessLog: one structured zerolog line per request
  - PrometheusMetrics: request counts, latency and in-flight gauge, labelled
    by chi route pattern so path parameters never explode cardinality
  - Compression: pooled gzip writers for clients that accept gzip
  - PerformanceMonitor: sliding-window latency percentiles served on the
    stats endpoint

All middleware has the func(http.Handler) http.Handler shape and plugs
straight into chi:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(perfMon.Middleware)
	r.Use(middleware.Compression)
*/
package middleware

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Pipeline Metrics:
  - vibecompass_recommend_requests_total: Requests by result (counter)
  - vibecompass_recommend_stage_duration_seconds: Stage latency (histogram)
    Labels: stage (pool, score, diversify, challenge, total)
  - vibecompass_diversity_score: Diversity of the primary five (histogram)
  - vibecompass_domain_overrides_total: Ensure-in-top-five swaps (counter)
    Labels: domain
  - vibecompass_challenges_dropped_total: Challenges dropped in assembly (counter)
    Labels: reason

Provider Metrics:
  - vibecompass_provider_calls_total: Calls by provider and result (counter)
  - vibecompass_provider_call_duration_seconds: Call latency (histogram)

Database, API, cache and circuit breaker metrics keep the names used across
our other services (duckdb_query_duration_seconds, api_requests_total,
cache_hits_total, circuit_breaker_state, ...).

# Usage

	metrics.RecordProviderCall("weather", time.Since(start), err)
	metrics.RecordDomainOverride("sports")
*/
package metrics

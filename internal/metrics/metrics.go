// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - the recommendation pipeline (stages, overrides, challenges)
// - external providers (venue verifier, weather, intent)
// - the candidate store (DuckDB)
// - API endpoints
// - caches and circuit breakers

var (
	// Pipeline Metrics
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecompass_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"result"}, // "success", "empty", "error"
	)

	RecommendStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibecompass_recommend_stage_duration_seconds",
			Help:    "Duration of recommendation pipeline stages in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"stage"}, // "pool", "score", "diversify", "challenge", "total"
	)

	RecommendCandidates = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vibecompass_recommend_candidates",
			Help:    "Number of candidates scored per request",
			Buckets: []float64{0, 5, 10, 25, 50, 100, 200, 300, 500},
		},
	)

	DiversityScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vibecompass_diversity_score",
			Help:    "Diversity score of the primary selection",
			Buckets: []float64{0, 0.2, 0.4, 0.6, 0.8, 1},
		},
	)

	DomainOverrides = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecompass_domain_overrides_total",
			Help: "Total number of ensure-in-top-five domain swaps",
		},
		[]string{"domain"},
	)

	CandidatesExcluded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "vibecompass_candidates_excluded_total",
			Help: "Total number of candidates excluded for non-finite scores",
		},
	)

	ChallengesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "vibecompass_challenges_returned",
			Help:    "Number of challenges returned per request",
			Buckets: []float64{0, 1, 2, 3},
		},
	)

	ChallengesDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecompass_challenges_dropped_total",
			Help: "Total number of challenge candidates dropped during assembly",
		},
		[]string{"reason"}, // "no_venues", "verify_error", "budget", "timeout", "no_region"
	)

	// Provider Metrics
	ProviderCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vibecompass_provider_call_duration_seconds",
			Help:    "Duration of external provider calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	ProviderCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vibecompass_provider_calls_total",
			Help: "Total number of external provider calls",
		},
		[]string{"provider", "result"}, // result: "success", "error", "rejected"
	)

	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "duckdb_query_errors_total",
			Help: "Total number of DuckDB query errors",
		},
		[]string{"operation", "table", "error_type"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"}, // "memory", "redis"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	CacheSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cache_entries",
			Help: "Current number of cached entries",
		},
		[]string{"cache_type"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of cache evictions by reason (expired, capacity)",
		},
		[]string{"cache_type", "reason"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordRecommendation records the outcome of one recommendation request.
func RecordRecommendation(result string, duration time.Duration, candidates int) {
	RecommendRequests.WithLabelValues(result).Inc()
	RecommendStageDuration.WithLabelValues("total").Observe(duration.Seconds())
	RecommendCandidates.Observe(float64(candidates))
}

// RecordStage records the duration of a pipeline stage.
func RecordStage(stage string, duration time.Duration) {
	RecommendStageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// RecordDomainOverride records an ensure-in-top-five swap.
func RecordDomainOverride(domain string) {
	DomainOverrides.WithLabelValues(domain).Inc()
}

// RecordChallengeDropped records a challenge dropped during assembly.
func RecordChallengeDropped(reason string) {
	ChallengesDropped.WithLabelValues(reason).Inc()
}

// RecordProviderCall records an external provider call.
func RecordProviderCall(provider string, duration time.Duration, err error) {
	ProviderCallDuration.WithLabelValues(provider).Observe(duration.Seconds())
	result := "success"
	if err != nil {
		result = "error"
	}
	ProviderCalls.WithLabelValues(provider, result).Inc()
}

// RecordProviderRejected records a call rejected before reaching the provider
// (open circuit or exhausted rate limit).
func RecordProviderRejected(provider string) {
	ProviderCalls.WithLabelValues(provider, "rejected").Inc()
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		errorType := err.Error()
		// Truncate long error messages
		if len(errorType) > 50 {
			errorType = errorType[:50]
		}
		DBQueryErrors.WithLabelValues(operation, table, errorType).Inc()
	}
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordCacheLookup records a cache hit or miss for cacheType.
func RecordCacheLookup(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

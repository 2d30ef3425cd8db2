// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package api exposes the recommendation engine over HTTP using the chi router.

Endpoints:

	POST /api/v1/recommendations   vibe + profile + location -> top five and challenges
	GET  /api/v1/stats             engine counters, endpoint latency, provider breakers
	GET  /api/v1/health/live       liveness probe
	GET  /api/v1/health/ready      readiness probe (runs every registered check)
	GET  /metrics                  Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{
	  "success": false,
	  "error": {"code": "VALIDATION_ERROR", "message": "location is required", "details": {...}},
	  "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 3}
	}

A recommendation request carries either free text (vibe_text), which is
turned into a profile by the configured VibeParser, or a structured vibe.
Text that cannot be parsed falls back to the default profile with the text's
words as keywords, so a vibe never fails a request.

Middleware order (outermost first): request id, real ip, access log,
panic recovery, CORS, then per-group rate limiting, security headers,
metrics, latency monitor, gzip and the body size limit.
*/
package api

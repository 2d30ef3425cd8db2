// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package providers adapts external services to the collaborator interfaces of
the recommend package.

Adapters:

  - VenueClient: recommend.VenueVerifier over a Places-style text search API
  - WeatherClient: recommend.WeatherProvider over an Open-Meteo compatible API
  - IntentClient: recommend.VibeParser over an intent service
  - StaticPool: recommend.CandidatePool over a JSON file held in a spatial grid

The HTTP adapters share a Client that layers, from the outside in, a response
cache (cache.Store), a token-bucket rate limit (golang.org/x/time/rate), a
circuit breaker (sony/gobreaker) and retries with exponential backoff
(hashicorp/go-retryablehttp). Breaker state and outcomes are exported as
Prometheus metrics labelled "provider-<name>".

Provider failures are returned as errors. The recommend pipeline decides how
to degrade: a failed forecast yields an unknown badge, a failed venue lookup
drops the challenge.
*/
package providers

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package services provides suture.Service wrappers for the server's
long-running components.

Each wrapper implements suture.Service and fmt.Stringer:

	type Service interface {
	    Serve(ctx context.Context) error
	}

# Available Services

HTTPServerService wraps *http.Server. ListenAndServe runs in a goroutine
and Shutdown is called with its own timeout once the context is canceled.

CacheJanitorService sweeps expired entries out of the in-memory cache on a
ticker.

ImportService polls the candidate seed file and upserts it into DuckDB
when its size or modification time changes, so the venue table can be
refreshed without a restart.

Serve returns ctx.Err() on shutdown. Any other error makes the supervisor
restart the service with backoff.
*/
package services

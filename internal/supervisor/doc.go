// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package supervisor runs the long-lived parts of the server under a
thejerf/suture v4 supervisor tree.

	vibecompass (root)
	├── data-layer
	│   ├── cache-janitor      expires in-memory cache entries
	│   └── candidate-import   re-imports the seed file into DuckDB when it changes
	└── api-layer
	    └── http-server        chi router

Supervisor events are logged through sutureslog, which writes to a
log/slog.Logger backed by the zerolog global logger
(logging.NewSlogLogger). A service that returns an error is restarted with
suture's failure decay and backoff; returning ctx.Err() on shutdown is the
normal exit.

Usage:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfigFrom(&cfg.Supervisor))
	tree.AddDataService(services.NewCacheJanitorService(store, time.Minute, logger))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	err = tree.Serve(ctx)
*/
package supervisor

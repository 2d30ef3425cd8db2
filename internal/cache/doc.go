// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

/*
Package cache stores provider responses and indexes candidates by location.

# Stores

Store is the common interface used by the venue and weather providers.
Values are JSON-encoded so the implementations are interchangeable:

  - MemoryStore: bounded in-process LRU with per-entry TTL
  - RedisStore: shared store backed by go-redis
  - Nop: disables caching

New builds the implementation selected by Config.Type:

	store, closeFn, err := cache.New(cache.Config{
	    Type:     cache.TypeMemory,
	    TTL:      15 * time.Minute,
	    Capacity: 5000,
	})
	if err != nil {
	    return err
	}
	defer closeFn()

	key := cache.GenerateKey("weather", params)
	var forecast Forecast
	if ok, _ := store.Get(ctx, key, &forecast); !ok {
	    forecast = fetch()
	    _ = store.Set(ctx, key, forecast, 0)
	}

Expired memory entries are removed lazily on Get and in bulk by
MemoryStore.CleanupExpired, which the supervisor's cache janitor runs on a
ticker.

# Spatial Index

SpatialGrid buckets points into fixed-size cells so QueryNearby only scans
the cells overlapping the query's bounding box. The static candidate pool
uses it to answer radius queries without a database.

# Metrics

Lookups, evictions and sizes are exported through internal/metrics under
the cache_type label ("memory" or "redis").
*/
package cache

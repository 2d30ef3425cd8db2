// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package cache

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Store is a key-value cache with per-entry TTL. Values are serialized as
// JSON so memory and Redis stores behave identically.
type Store interface {
	// Get decodes the value stored under key into dst. It reports false
	// when the key is missing or expired.
	Get(ctx context.Context, key string, dst any) (bool, error)

	// Set stores value under key for ttl. A non-positive ttl uses the
	// store's default.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// Type selects a Store implementation.
type Type string

const (
	// TypeMemory is a bounded in-process LRU store.
	TypeMemory Type = "memory"

	// TypeRedis shares entries between instances through Redis.
	TypeRedis Type = "redis"

	// TypeNone disables caching.
	TypeNone Type = "none"
)

// Config holds configuration for creating a store.
type Config struct {
	Type     Type
	TTL      time.Duration
	Capacity int
	RedisURL string
	Prefix   string
}

// New creates the store selected by cfg. The returned closer
// releases Redis connections; it is a no-op for other types.
func New(cfg Config) (Store, func() error, error) {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Minute
	}

	switch cfg.Type {
	case TypeRedis:
		if cfg.RedisURL == "" {
			return nil, nil, errors.New("redis cache requires a url")
		}
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("parse redis url: %w", err)
		}
		client := redis.NewClient(opts)
		return NewRedisStore(client, cfg.Prefix, cfg.TTL), client.Close, nil
	case TypeNone:
		return Nop{}, func() error { return nil }, nil
	case TypeMemory, "":
		return NewMemoryStore(cfg.Capacity, cfg.TTL), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache type %q", cfg.Type)
	}
}

// Nop is a Store that never holds anything.
type Nop struct{}

// Get always misses.
func (Nop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set discards the value.
func (Nop) Set(context.Context, string, any, time.Duration) error { return nil }

// Delete does nothing.
func (Nop) Delete(context.Context, string) error { return nil }

// GenerateKey creates a cache key from a namespace and parameters.
func GenerateKey(namespace string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", namespace, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", namespace, hash[:16])
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*RedisStore)(nil)
	_ Store = Nop{}
)

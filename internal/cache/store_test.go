// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package cache

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     Config
		want    string
		wantErr bool
	}{
		{name: "default is memory", cfg: Config{}, want: "*cache.MemoryStore"},
		{name: "memory", cfg: Config{Type: TypeMemory, Capacity: 5}, want: "*cache.MemoryStore"},
		{name: "none", cfg: Config{Type: TypeNone}, want: "cache.Nop"},
		{name: "redis", cfg: Config{Type: TypeRedis, RedisURL: "redis://localhost:6379/0"}, want: "*cache.RedisStore"},
		{name: "redis without url", cfg: Config{Type: TypeRedis}, wantErr: true},
		{name: "redis bad url", cfg: Config{Type: TypeRedis, RedisURL: "http://nope"}, wantErr: true},
		{name: "unknown", cfg: Config{Type: "memcached"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, closeFn, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("New() expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("New() error = %v", err)
			}
			defer closeFn() //nolint:errcheck

			if got := typeName(store); got != tt.want {
				t.Errorf("New() type = %s, want %s", got, tt.want)
			}
		})
	}
}

func typeName(s Store) string {
	switch s.(type) {
	case *MemoryStore:
		return "*cache.MemoryStore"
	case *RedisStore:
		return "*cache.RedisStore"
	case Nop:
		return "cache.Nop"
	default:
		return "unknown"
	}
}

func TestNop(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	var s Store = Nop{}

	if err := s.Set(ctx, "k", 1, time.Minute); err != nil {
		t.Errorf("Set() error = %v", err)
	}
	var v int
	if ok, err := s.Get(ctx, "k", &v); ok || err != nil {
		t.Errorf("Get() = %v, %v; want miss", ok, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestGenerateKey(t *testing.T) {
	t.Parallel()

	type params struct {
		Lat float64
		Lng float64
	}

	a := GenerateKey("weather", params{40.7, -74})
	b := GenerateKey("weather", params{40.7, -74})
	c := GenerateKey("weather", params{40.8, -74})
	d := GenerateKey("venues", params{40.7, -74})

	if a != b {
		t.Errorf("same params produced %q and %q", a, b)
	}
	if a == c {
		t.Error("different params produced the same key")
	}
	if a == d {
		t.Error("different namespaces produced the same key")
	}
	if !strings.HasPrefix(a, "weather:") {
		t.Errorf("key %q missing namespace prefix", a)
	}
	// 16 bytes of sha256 hex-encoded.
	if len(a) != len("weather:")+32 {
		t.Errorf("key %q has unexpected length %d", a, len(a))
	}
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/config"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

const seedJSON = `[
  {"id": "a", "name": "Alpha", "bucket": "food", "location": {"lat": 40.7, "lng": -74.0}, "rating": 4.5, "review_count": 120},
  {"id": "b", "name": "Beta", "bucket": "culture", "location": {"lat": 40.71, "lng": -74.01}}
]`

func loadTestConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	seed := filepath.Join(dir, "venues.json")
	if err := os.WriteFile(seed, []byte(seedJSON), 0o600); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "config.yaml")
	content := os.Expand(yaml, func(key string) string {
		switch key {
		case "SEED":
			return seed
		case "DB":
			return filepath.Join(dir, "venues.duckdb")
		}
		return ""
	})
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return cfg
}

func TestBuild_StaticPool(t *testing.T) {
	cfg := loadTestConfig(t, `
candidates:
  source: static
  static_file: ${SEED}
cache:
  type: memory
providers:
  weather:
    enabled: false
`)

	app, err := build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.close()

	if app.engine == nil {
		t.Fatal("engine not created")
	}
	if app.db != nil {
		t.Error("static source should not open a database")
	}
	if _, ok := app.store.(*cache.MemoryStore); !ok {
		t.Errorf("store = %T, want *cache.MemoryStore", app.store)
	}
	if app.parser != nil || len(app.breakers) != 0 {
		t.Errorf("providers should be disabled: parser=%v breakers=%d", app.parser, len(app.breakers))
	}
}

func TestBuild_DuckDBSeeded(t *testing.T) {
	cfg := loadTestConfig(t, `
candidates:
  source: duckdb
database:
  path: ${DB}
  seed_file: ${SEED}
cache:
  type: none
providers:
  weather:
    enabled: true
  venues:
    enabled: true
    base_url: https://venues.example.com
`)

	app, err := build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	defer app.close()

	if app.db == nil {
		t.Fatal("database not opened")
	}
	n, err := app.db.CountVenues(context.Background())
	if err != nil {
		t.Fatalf("CountVenues: %v", err)
	}
	if n != 2 {
		t.Errorf("seeded %d venues, want 2", n)
	}
	if len(app.breakers) != 2 {
		t.Errorf("breakers = %d, want 2", len(app.breakers))
	}
	if len(app.checks) != 1 || app.checks[0].Name != "duckdb" {
		t.Errorf("checks = %+v", app.checks)
	}
	if err := app.checks[0].Check(context.Background()); err != nil {
		t.Errorf("duckdb readiness: %v", err)
	}
}

func TestBuild_BadOntologyPath(t *testing.T) {
	cfg := loadTestConfig(t, `
candidates:
  source: static
ontology:
  catalog_path: /nonexistent/catalog.yaml
`)
	if _, err := build(context.Background(), cfg); err == nil {
		t.Error("missing ontology catalog should fail")
	}
}

func TestNewSelector(t *testing.T) {
	tests := []struct {
		regionAware bool
		want        string
	}{
		{regionAware: true, want: "diversity_region_aware"},
		{regionAware: false, want: "diversity"},
	}
	for _, tt := range tests {
		sel := newSelector(&recommend.DiversityConfig{RegionAware: tt.regionAware, MaxRegionSeeds: 3})
		if got := sel.Name(); got != tt.want {
			t.Errorf("newSelector(regionAware=%v).Name() = %q, want %q", tt.regionAware, got, tt.want)
		}
	}
}

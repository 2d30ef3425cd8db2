// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package ontology

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	if len(c.Activities()) < 20 {
		t.Errorf("expected at least 20 activities, got %d", len(c.Activities()))
	}
	for _, a := range c.Activities() {
		for _, r := range a.Regions {
			if _, ok := c.RegionCenter(r); !ok {
				t.Errorf("activity %s references unresolvable region %q", a.ID, r)
			}
		}
	}
}

func TestActivityFor(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	tests := []struct {
		name   string
		cand   recommend.Candidate
		wantID string
		wantOK bool
	}{
		{
			name:   "by subtype",
			cand:   recommend.Candidate{ID: "a", Subtype: "bouldering"},
			wantID: "rock-climbing",
			wantOK: true,
		},
		{
			name:   "subtype is case insensitive",
			cand:   recommend.Candidate{ID: "b", Subtype: " Kayaking "},
			wantID: "kayaking",
			wantOK: true,
		},
		{
			name:   "by provider type",
			cand:   recommend.Candidate{ID: "c", Types: []string{"point_of_interest", "museum"}},
			wantID: "museum-visit",
			wantOK: true,
		},
		{
			name:   "subtype wins over type",
			cand:   recommend.Candidate{ID: "d", Subtype: "surfing", Types: []string{"museum"}},
			wantID: "surfing",
			wantOK: true,
		},
		{
			name:   "unknown",
			cand:   recommend.Candidate{ID: "e", Subtype: "knitting", Types: []string{"store"}},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, ok := c.ActivityFor(&tt.cand)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && a.ID != tt.wantID {
				t.Errorf("ID = %q, want %q", a.ID, tt.wantID)
			}
		})
	}
}

func TestActivityForReturnsCopy(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	cand := recommend.Candidate{Subtype: "hiking"}
	a, _ := c.ActivityFor(&cand)
	a.Subtypes[0] = "mutated"

	again, _ := c.ActivityFor(&cand)
	if again.Subtypes[0] == "mutated" {
		t.Error("ActivityFor leaked the catalog's slice")
	}
}

func TestRegionCenter(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	p, ok := c.RegionCenter("lake tahoe")
	if !ok {
		t.Fatal("expected Lake Tahoe to resolve")
	}
	if p.Lat < 38 || p.Lat > 40 || p.Lng > -119 || p.Lng < -121 {
		t.Errorf("unexpected Lake Tahoe coordinates %+v", p)
	}
	if _, ok := c.RegionCenter("Atlantis"); ok {
		t.Error("expected unknown region to fail")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "malformed",
			yaml:    "activities: [",
			wantErr: "decode catalog",
		},
		{
			name: "bad difficulty",
			yaml: `
activities:
  - {id: x, name: X, category: sports, energy: high, setting: indoor, difficulty: 9}
`,
			wantErr: "difficulty",
		},
		{
			name: "bad energy",
			yaml: `
activities:
  - {id: x, name: X, category: sports, energy: extreme, setting: indoor, difficulty: 2}
`,
			wantErr: "invalid energy",
		},
		{
			name: "unknown season",
			yaml: `
activities:
  - {id: x, name: X, category: sports, energy: low, difficulty: 2, seasonality: [monsoon]}
`,
			wantErr: "unknown season",
		},
		{
			name: "unknown region",
			yaml: `
activities:
  - {id: x, name: X, category: sports, energy: low, difficulty: 2, regions: [Nowhere]}
`,
			wantErr: "unknown region",
		},
		{
			name: "duplicate id",
			yaml: `
activities:
  - {id: x, name: X, category: sports, energy: low, difficulty: 2}
  - {id: x, name: Y, category: food, energy: low, difficulty: 1}
`,
			wantErr: "duplicate activity",
		},
		{
			name: "invalid region coordinates",
			yaml: `
regions:
  - {name: Bad, lat: 120, lng: 0}
`,
			wantErr: "invalid coordinates",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestParseNormalizesFields(t *testing.T) {
	c, err := Parse([]byte(`
activities:
  - {id: x, name: X, category: Unheard, energy: HIGH, setting: somewhere, difficulty: 2, seasonality: [Winter]}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	a := c.Activities()[0]
	if a.Category != recommend.BucketOther {
		t.Errorf("Category = %q, want other", a.Category)
	}
	if a.Energy != recommend.EnergyHigh {
		t.Errorf("Energy = %q, want high", a.Energy)
	}
	if a.Setting != recommend.SettingEither {
		t.Errorf("Setting = %q, want either", a.Setting)
	}
	if a.Seasonality[0] != "winter" {
		t.Errorf("Seasonality = %v, want [winter]", a.Seasonality)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, defaultCatalog, 0o600); err != nil {
		t.Fatal(err)
	}
	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if len(c.Regions()) == 0 {
		t.Error("expected regions")
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

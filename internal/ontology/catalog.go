// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package ontology provides the static activity catalog and the coordinates
// of destination regions. A Catalog is immutable once loaded and safe for
// concurrent use.
package ontology

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

//go:embed catalog.yaml
var defaultCatalog []byte

type catalogFile struct {
	Regions    []regionDef          `yaml:"regions"`
	Activities []recommend.Activity `yaml:"activities"`
}

type regionDef struct {
	Name string  `yaml:"name"`
	Lat  float64 `yaml:"lat"`
	Lng  float64 `yaml:"lng"`
}

// Catalog maps venues to activity definitions and region names to coordinates.
type Catalog struct {
	activities []recommend.Activity
	bySubtype  map[string]int
	byType     map[string]int
	regions    map[string]geo.Point
	names      []string
}

var _ recommend.Ontology = (*Catalog)(nil)

// Default loads the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile loads a catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{
		activities: make([]recommend.Activity, 0, len(f.Activities)),
		bySubtype:  make(map[string]int),
		byType:     make(map[string]int),
		regions:    make(map[string]geo.Point, len(f.Regions)),
	}

	for _, r := range f.Regions {
		key := normalize(r.Name)
		if key == "" {
			return nil, fmt.Errorf("region with empty name")
		}
		p := geo.Point{Lat: r.Lat, Lng: r.Lng}
		if !p.Known() {
			return nil, fmt.Errorf("region %q has invalid coordinates %+v", r.Name, p)
		}
		if _, dup := c.regions[key]; dup {
			return nil, fmt.Errorf("duplicate region %q", r.Name)
		}
		c.regions[key] = p
		c.names = append(c.names, r.Name)
	}

	ids := make(map[string]struct{}, len(f.Activities))
	for i := range f.Activities {
		a := f.Activities[i]
		if err := c.validate(&a); err != nil {
			return nil, err
		}
		if _, dup := ids[a.ID]; dup {
			return nil, fmt.Errorf("duplicate activity id %q", a.ID)
		}
		ids[a.ID] = struct{}{}

		idx := len(c.activities)
		c.activities = append(c.activities, a)
		for _, s := range a.Subtypes {
			if _, taken := c.bySubtype[normalize(s)]; !taken {
				c.bySubtype[normalize(s)] = idx
			}
		}
		for _, t := range a.MatchTypes {
			if _, taken := c.byType[normalize(t)]; !taken {
				c.byType[normalize(t)] = idx
			}
		}
	}

	sort.Strings(c.names)
	return c, nil
}

// validate normalizes enum fields of a and checks their ranges.
func (c *Catalog) validate(a *recommend.Activity) error {
	if a.ID == "" {
		return fmt.Errorf("activity %q has no id", a.Name)
	}

	a.Category = recommend.ParseBucket(string(a.Category))
	if recommend.ParseEnergy(string(a.Energy)) == "" {
		return fmt.Errorf("activity %q: invalid energy %q", a.ID, a.Energy)
	}
	a.Energy = recommend.ParseEnergy(string(a.Energy))
	a.Setting = recommend.ParseSetting(string(a.Setting))

	if a.Difficulty < 1 || a.Difficulty > 5 {
		return fmt.Errorf("activity %q: difficulty must be in [1, 5], got %d", a.ID, a.Difficulty)
	}
	if a.TypicalDurationHours < 0 {
		return fmt.Errorf("activity %q: negative duration", a.ID)
	}

	for i, s := range a.Seasonality {
		s = normalize(s)
		switch s {
		case string(recommend.SeasonSpring), string(recommend.SeasonSummer),
			string(recommend.SeasonAutumn), string(recommend.SeasonWinter), recommend.SeasonAllYear:
			a.Seasonality[i] = s
		default:
			return fmt.Errorf("activity %q: unknown season %q", a.ID, s)
		}
	}

	for _, r := range a.Regions {
		if _, ok := c.regions[normalize(r)]; !ok {
			return fmt.Errorf("activity %q: unknown region %q", a.ID, r)
		}
	}
	return nil
}

// ActivityFor resolves a candidate to an activity: first by subtype, then by
// provider type tags. ok is false when the catalog has no matching entry.
func (c *Catalog) ActivityFor(cand *recommend.Candidate) (recommend.Activity, bool) {
	if cand.Subtype != "" {
		if idx, ok := c.bySubtype[normalize(cand.Subtype)]; ok {
			return c.activity(idx), true
		}
	}
	for _, t := range cand.Types {
		if idx, ok := c.byType[normalize(t)]; ok {
			return c.activity(idx), true
		}
	}
	return recommend.Activity{}, false
}

// activity returns a copy that callers may not use to mutate the catalog.
func (c *Catalog) activity(idx int) recommend.Activity {
	a := c.activities[idx]
	a.Subtypes = append([]string(nil), a.Subtypes...)
	a.Seasonality = append([]string(nil), a.Seasonality...)
	a.Regions = append([]string(nil), a.Regions...)
	a.MatchTypes = append([]string(nil), a.MatchTypes...)
	return a
}

// RegionCenter returns the coordinates of a named region.
func (c *Catalog) RegionCenter(name string) (geo.Point, bool) {
	p, ok := c.regions[normalize(name)]
	return p, ok
}

// Activities returns a copy of every activity in catalog order.
func (c *Catalog) Activities() []recommend.Activity {
	out := make([]recommend.Activity, len(c.activities))
	for i := range c.activities {
		out[i] = c.activity(i)
	}
	return out
}

// Regions returns the region names in alphabetical order.
func (c *Catalog) Regions() []string {
	return append([]string(nil), c.names...)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"strings"
)

// Blender combines vibe and feasibility into the personalized score.
type Blender struct {
	vibeWeight        float64
	feasibilityWeight float64
}

// NewBlender creates a blender from the blend configuration.
func NewBlender(cfg BlendConfig) *Blender {
	return &Blender{vibeWeight: cfg.VibeWeight, feasibilityWeight: cfg.FeasibilityWeight}
}

// Blend returns vibeWeight*vibe + feasibilityWeight*feasibility.
func (b *Blender) Blend(vibe, feasibility float64) float64 {
	return b.vibeWeight*vibe + b.feasibilityWeight*feasibility
}

// Domain is a vibe theme that forces matching venues into consideration.
type Domain struct {
	// Name identifies the domain in logs and overrides.
	Name string

	// Synonyms are matched against the vibe keywords.
	Synonyms []string

	// Types are the provider type tags that belong to the domain.
	Types []string
}

// DefaultDomains is the built-in synonym table.
var DefaultDomains = []Domain{
	{
		Name:     "sports",
		Synonyms: []string{"sport", "sports", "gym", "tennis", "basketball", "soccer", "football", "fitness", "workout", "swim", "climb", "bouldering", "run"},
		Types:    []string{"gym", "stadium", "sports_complex", "tennis_court", "fitness_center", "swimming_pool", "climbing_gym", "bowling_alley", "golf_course"},
	},
	{
		Name:     "nightlife",
		Synonyms: []string{"party", "club", "clubbing", "dance", "dancing", "drinks", "cocktail", "nightlife", "bar"},
		Types:    []string{"night_club", "bar", "pub", "karaoke", "casino"},
	},
	{
		Name:     "food",
		Synonyms: []string{"food", "eat", "dinner", "lunch", "brunch", "foodie", "restaurant", "cuisine"},
		Types:    []string{"restaurant", "bakery", "food_court", "market", "cafe"},
	},
	{
		Name:     "wellness",
		Synonyms: []string{"spa", "massage", "sauna", "wellness", "meditate", "meditation", "yoga"},
		Types:    []string{"spa", "sauna", "yoga_studio", "wellness_center", "hot_spring"},
	},
}

// DomainBooster raises the score of candidates that belong to a domain the
// vibe explicitly asks for.
type DomainBooster struct {
	domains []Domain
	boost   float64
}

// NewDomainBooster creates a booster over the given domains.
func NewDomainBooster(domains []Domain, boost float64) *DomainBooster {
	return &DomainBooster{domains: domains, boost: boost}
}

// ActiveDomains returns the domains whose synonyms appear in the vibe keywords.
func (d *DomainBooster) ActiveDomains(v VibeProfile) []Domain {
	active := make([]Domain, 0, 1)
	for _, dom := range d.domains {
		if keywordsMatch(v.Keywords, dom.Synonyms) {
			active = append(active, dom)
		}
	}
	return active
}

// keywordsMatch reports whether any keyword is a synonym, its plural, or an
// inflection of a synonym of at least four letters ("climb" -> "climbing").
func keywordsMatch(keywords, synonyms []string) bool {
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		for _, syn := range synonyms {
			if kw == syn || kw == syn+"s" || (len(syn) >= 4 && strings.HasPrefix(kw, syn)) {
				return true
			}
		}
	}
	return false
}

// belongs reports whether the candidate carries one of the domain's types.
func (dom *Domain) belongs(c *Candidate) bool {
	for _, t := range dom.Types {
		if c.HasType(t) {
			return true
		}
	}
	return false
}

// Apply adds the domain bonus to every candidate of an active domain.
// A candidate is boosted at most once.
func (d *DomainBooster) Apply(items []ScoredCandidate, active []Domain) int {
	boosted := 0
	for i := range items {
		if items[i].Boosted {
			continue
		}
		for j := range active {
			if active[j].belongs(&items[i].Candidate) {
				items[i].PersonalizedScore = clamp01(items[i].PersonalizedScore + d.boost)
				items[i].Boosted = true
				items[i].BoostDomain = active[j].Name
				boosted++
				break
			}
		}
	}
	return boosted
}

// EnsureInTopFive guarantees that every active domain is represented in the
// selection. When a domain has no boosted entry, its highest-ranked boosted
// candidate from pool replaces the lowest-scoring non-boosted entry (ties
// broken by id ascending). The returned overrides record every swap.
func (d *DomainBooster) EnsureInTopFive(sel *SelectionResult, pool []ScoredCandidate, active []Domain) []Override {
	if len(sel.Items) == 0 {
		return nil
	}

	var overrides []Override
	for _, dom := range active {
		if domainRepresented(sel.Items, &dom) {
			continue
		}

		best := bestBoosted(pool, &dom, sel.Items)
		if best == nil {
			continue
		}

		victim := lowestNonBoosted(sel.Items)
		if victim < 0 {
			continue
		}

		overrides = append(overrides, Override{
			Domain:      dom.Name,
			InsertedID:  best.ID,
			DisplacedID: sel.Items[victim].ID,
		})
		sel.Items[victim] = *best
	}

	if len(overrides) > 0 {
		denominator := sel.Denominator
		if denominator < len(sel.Items) {
			denominator = len(sel.Items)
		}
		sel.Stats = ComputeDiversityStats(sel.Items, denominator)
		sel.Overrides = append(sel.Overrides, overrides...)
	}
	return overrides
}

// boostedFor reports whether c was boosted and counts toward dom. A candidate
// carrying types of several active domains is boosted once but counts toward
// each of them.
func boostedFor(c *ScoredCandidate, dom *Domain) bool {
	return c.Boosted && (c.BoostDomain == dom.Name || dom.belongs(&c.Candidate))
}

func domainRepresented(items []ScoredCandidate, dom *Domain) bool {
	for i := range items {
		if boostedFor(&items[i], dom) {
			return true
		}
	}
	return false
}

// bestBoosted returns the highest-ranked candidate boosted for dom that is
// not already selected.
func bestBoosted(pool []ScoredCandidate, dom *Domain, selected []ScoredCandidate) *ScoredCandidate {
	taken := make(map[string]struct{}, len(selected))
	for i := range selected {
		taken[selected[i].ID] = struct{}{}
	}

	var best *ScoredCandidate
	for i := range pool {
		c := &pool[i]
		if !boostedFor(c, dom) {
			continue
		}
		if _, ok := taken[c.ID]; ok {
			continue
		}
		if best == nil || RankLess(c, best) {
			best = c
		}
	}
	return best
}

// lowestNonBoosted returns the index of the lowest-scoring non-boosted item,
// preferring the smallest id among equal scores, or -1.
func lowestNonBoosted(items []ScoredCandidate) int {
	idx := -1
	for i := range items {
		if items[i].Boosted {
			continue
		}
		if idx < 0 {
			idx = i
			continue
		}
		cur, low := items[i].PersonalizedScore, items[idx].PersonalizedScore
		if cur < low || (cur == low && items[i].ID < items[idx].ID) {
			idx = i
		}
	}
	return idx
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package database

import (
	"context"
	"strings"
	"testing"

	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

var timesSquare = geo.Point{Lat: 40.7580, Lng: -73.9855}

func ptrF(f float64) *float64 { return &f }
func ptrI(i int) *int         { return &i }

func seedVenues() []recommend.Candidate {
	return []recommend.Candidate{
		{ID: "moma", Name: "Museum of Modern Art", Bucket: recommend.BucketCulture, Subtype: "art_museum",
			Location: geo.Point{Lat: 40.7614, Lng: -73.9776}, Region: "Manhattan",
			Rating: ptrF(4.6), ReviewCount: 52000, PriceLevel: ptrI(3), Types: []string{"Museum", "tourist_attraction"}},
		{ID: "bryant", Name: "Bryant Park", Bucket: recommend.BucketNature, Subtype: "park",
			Location: geo.Point{Lat: 40.7536, Lng: -73.9832}, Types: []string{"park"}},
		{ID: "boulders", Name: "Brooklyn Boulders", Bucket: recommend.BucketAdventure,
			Location: geo.Point{Lat: 40.6855, Lng: -73.9825}, Rating: ptrF(4.4), ReviewCount: 900,
			Types: []string{"gym", "climbing", "GYM"}},
		{ID: "philly", Name: "Philadelphia Museum of Art", Bucket: "CULTURE",
			Location: geo.Point{Lat: 39.9656, Lng: -75.1810}, Types: []string{"museum"}},
		{ID: "", Name: "No id", Location: timesSquare},
		{ID: "bad", Name: "Bad location", Location: geo.Point{Lat: 99}},
	}
}

func candidateIDs(cs []recommend.Candidate) string {
	ids := make([]string, len(cs))
	for i := range cs {
		ids[i] = cs[i].ID
	}
	return strings.Join(ids, ",")
}

func TestUpsertVenues(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	n, err := db.UpsertVenues(ctx, seedVenues())
	if err != nil {
		t.Fatalf("UpsertVenues() error = %v", err)
	}
	if n != 4 {
		t.Errorf("UpsertVenues() wrote %d, want 4", n)
	}

	// Replacing a venue updates it in place and rewrites its types.
	updated := seedVenues()[0]
	updated.Name = "MoMA"
	updated.Types = []string{"gallery"}
	if _, err := db.UpsertVenues(ctx, []recommend.Candidate{updated}); err != nil {
		t.Fatalf("second UpsertVenues() error = %v", err)
	}

	count, err := db.CountVenues(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if count != 4 {
		t.Errorf("CountVenues() = %d, want 4", count)
	}

	got, err := db.Candidates(ctx, recommend.PoolQuery{Center: timesSquare, RadiusKm: 5, Types: []string{"gallery"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "MoMA" {
		t.Errorf("after replace = %+v", got)
	}
	got, err = db.Candidates(ctx, recommend.PoolQuery{Center: timesSquare, RadiusKm: 5, Types: []string{"museum"}})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("stale type still matches: %+v", got)
	}
}

func TestCandidates(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.UpsertVenues(ctx, seedVenues()); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		q    recommend.PoolQuery
		want string
	}{
		{"nearest first", recommend.PoolQuery{Center: timesSquare, RadiusKm: 20}, "bryant,moma,boulders"},
		{"wide radius", recommend.PoolQuery{Center: timesSquare, RadiusKm: 200}, "bryant,moma,boulders,philly"},
		{"type filter is case-insensitive", recommend.PoolQuery{Center: timesSquare, RadiusKm: 200, Types: []string{"MUSEUM"}}, "moma,philly"},
		{"keyword filter", recommend.PoolQuery{Center: timesSquare, RadiusKm: 200, Keywords: []string{"climbing"}}, "boulders"},
		{"limit", recommend.PoolQuery{Center: timesSquare, RadiusKm: 200, Limit: 1}, "bryant"},
		{"empty area", recommend.PoolQuery{Center: geo.Point{Lat: 48.85, Lng: 2.35}, RadiusKm: 50}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := db.Candidates(ctx, tt.q)
			if err != nil {
				t.Fatalf("Candidates() error = %v", err)
			}
			if candidateIDs(got) != tt.want {
				t.Errorf("Candidates() = %q, want %q", candidateIDs(got), tt.want)
			}
		})
	}
}

func TestCandidates_RoundTripFields(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	if _, err := db.UpsertVenues(ctx, seedVenues()); err != nil {
		t.Fatal(err)
	}

	got, err := db.Candidates(ctx, recommend.PoolQuery{Center: timesSquare, RadiusKm: 200})
	if err != nil {
		t.Fatal(err)
	}
	byID := make(map[string]recommend.Candidate, len(got))
	for _, c := range got {
		byID[c.ID] = c
	}

	moma := byID["moma"]
	if moma.Bucket != recommend.BucketCulture || moma.Subtype != "art_museum" || moma.Region != "Manhattan" {
		t.Errorf("moma = %+v", moma)
	}
	if moma.Rating == nil || *moma.Rating != 4.6 || moma.ReviewCount != 52000 {
		t.Errorf("moma rating = %v/%d", moma.Rating, moma.ReviewCount)
	}
	if moma.PriceLevel == nil || *moma.PriceLevel != 3 {
		t.Errorf("moma price = %v", moma.PriceLevel)
	}
	if len(moma.Types) != 2 || moma.Types[0] != "Museum" {
		t.Errorf("moma types = %v", moma.Types)
	}

	bryant := byID["bryant"]
	if bryant.Rating != nil || bryant.PriceLevel != nil || bryant.Region != "" {
		t.Errorf("bryant nullable fields = %+v", bryant)
	}

	if byID["philly"].Bucket != recommend.BucketCulture {
		t.Errorf("philly bucket = %q, want normalized culture", byID["philly"].Bucket)
	}
}

func TestCandidates_InvalidCenter(t *testing.T) {
	db := setupTestDB(t)

	if _, err := db.Candidates(context.Background(), recommend.PoolQuery{Center: geo.Point{Lat: 100}}); err == nil {
		t.Error("Candidates() with invalid center should fail")
	}
}

func TestSeedIfEmpty(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	n, err := db.SeedIfEmpty(ctx, seedVenues())
	if err != nil {
		t.Fatalf("SeedIfEmpty() error = %v", err)
	}
	if n != 4 {
		t.Errorf("first seed wrote %d, want 4", n)
	}

	n, err = db.SeedIfEmpty(ctx, seedVenues()[:1])
	if err != nil {
		t.Fatalf("second SeedIfEmpty() error = %v", err)
	}
	if n != 0 {
		t.Errorf("second seed wrote %d, want 0", n)
	}
}

func TestUniqueLower(t *testing.T) {
	t.Parallel()

	got := uniqueLower([]string{"Gym", " gym ", "", "Climbing"})
	if strings.Join(got, ",") != "gym,climbing" {
		t.Errorf("uniqueLower() = %v", got)
	}
}

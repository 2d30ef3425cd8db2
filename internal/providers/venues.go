// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package providers

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// venueSearchPath is the Places-style text search endpoint.
const venueSearchPath = "/maps/api/place/textsearch/json"

// VenueClient verifies challenge destinations against a Places-style text
// search API. Responses look like:
//
//	{"status": "OK", "results": [{"place_id": "...", "name": "...",
//	  "geometry": {"location": {"lat": 0, "lng": 0}},
//	  "rating": 4.6, "user_ratings_total": 120}]}
type VenueClient struct {
	client *Client
}

// NewVenueClient creates a venue verifier on top of client.
func NewVenueClient(client *Client) *VenueClient {
	return &VenueClient{client: client}
}

// Verify implements recommend.VenueVerifier.
func (v *VenueClient) Verify(ctx context.Context, q recommend.VerifyQuery) ([]recommend.Venue, error) {
	if !q.Center.Valid() {
		return nil, fmt.Errorf("verify venues: invalid center %v", q.Center)
	}

	text := strings.Join(q.Keywords, " ")
	if q.Region != "" {
		text = strings.TrimSpace(text + " in " + q.Region)
	}

	key := cache.GenerateKey("venues", struct {
		Text   string
		Lat    float64
		Lng    float64
		Radius float64
	}{text, round4(q.Center.Lat), round4(q.Center.Lng), q.RadiusKm})

	var venues []recommend.Venue
	if v.client.cacheGet(ctx, key, &venues) {
		return venues, nil
	}

	params := url.Values{}
	params.Set("query", text)
	params.Set("location", strconv.FormatFloat(q.Center.Lat, 'f', 6, 64)+","+strconv.FormatFloat(q.Center.Lng, 'f', 6, 64))
	if q.RadiusKm > 0 {
		params.Set("radius", strconv.Itoa(int(q.RadiusKm*1000)))
	}

	body, err := v.client.Get(ctx, venueSearchPath, params)
	if err != nil {
		return nil, err
	}

	venues, err = parseVenues(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", v.client.Name(), err)
	}

	v.client.cachePut(ctx, key, venues)
	return venues, nil
}

// parseVenues extracts venues from a text search response. Results without a
// name or a valid location are skipped.
func parseVenues(body []byte) ([]recommend.Venue, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("invalid JSON response")
	}

	switch status := gjson.GetBytes(body, "status").Str; status {
	case "", "OK", "ZERO_RESULTS":
	default:
		msg := gjson.GetBytes(body, "error_message").Str
		return nil, fmt.Errorf("search status %s: %s", status, msg)
	}

	results := gjson.GetBytes(body, "results").Array()
	venues := make([]recommend.Venue, 0, len(results))
	for _, r := range results {
		loc := r.Get("geometry.location")
		if !loc.Exists() {
			continue
		}
		venue := recommend.Venue{
			ID:          r.Get("place_id").String(),
			Name:        r.Get("name").String(),
			Location:    geo.Point{Lat: loc.Get("lat").Float(), Lng: loc.Get("lng").Float()},
			Rating:      r.Get("rating").Float(),
			ReviewCount: int(r.Get("user_ratings_total").Int()),
		}
		if venue.Name == "" || !venue.Location.Valid() {
			continue
		}
		if venue.ID == "" {
			venue.ID = venue.Name
		}
		venues = append(venues, venue)
	}
	return venues, nil
}

// round4 rounds to four decimals (about 11 m) so that nearby queries share a
// cache entry.
func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}

var _ recommend.VenueVerifier = (*VenueClient)(nil)

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package challenge

import (
	"github.com/tomtom215/vibecompass/internal/geo"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

// Travel model constants.
const (
	averageDrivingKPH = 80.0
	maxFeasibleKm     = 400.0
	maxDriveKm        = 200.0
	maxTrainKm        = 600.0
	unknownTravel     = 0.3
)

// travelBands maps an upper distance bound to the travel sub-score.
var travelBands = []struct {
	maxKm float64
	score float64
}{
	{50, 1.0},
	{100, 0.8},
	{200, 0.6},
	{400, 0.4},
}

// TravelScore returns the distance-banded travel sub-score. A nil distance
// means the location is unknown.
func TravelScore(distanceKm *float64) float64 {
	if distanceKm == nil {
		return unknownTravel
	}
	for _, b := range travelBands {
		if *distanceKm <= b.maxKm {
			return b.score
		}
	}
	return 0.2
}

// EstimateTravel describes a trip of distanceKm.
func EstimateTravel(distanceKm float64) recommend.TravelEstimate {
	mode := recommend.TransportFlight
	switch {
	case distanceKm <= maxDriveKm:
		mode = recommend.TransportDrive
	case distanceKm <= maxTrainKm:
		mode = recommend.TransportTrain
	}
	return recommend.TravelEstimate{
		DistanceKm:       distanceKm,
		DrivingTimeHours: distanceKm / averageDrivingKPH,
		TransportMode:    mode,
		Feasible:         distanceKm <= maxFeasibleKm,
	}
}

// destination resolves where a challenge takes place: the first of the
// activity's regions with known coordinates, then the candidate's own region,
// then the candidate's location.
func destination(c *recommend.Candidate, a *recommend.Activity, ont recommend.Ontology) (string, geo.Point, bool) {
	if ont != nil {
		for _, r := range a.Regions {
			if p, ok := ont.RegionCenter(r); ok {
				return r, p, true
			}
		}
		if c.Region != "" {
			if p, ok := ont.RegionCenter(c.Region); ok {
				return c.Region, p, true
			}
		}
	}
	if c.Location.Known() {
		return c.Region, c.Location, true
	}
	return c.Region, geo.Point{}, false
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package geo provides the small amount of spherical geometry the
// recommendation pipeline needs: great-circle distance and bounding boxes.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for haversine distances.
const EarthRadiusKm = 6371.0

// Point is a WGS84 coordinate.
type Point struct {
	Lat float64 `json:"lat" koanf:"lat" yaml:"lat"`
	Lng float64 `json:"lng" koanf:"lng" yaml:"lng"`
}

// IsZero reports whether the point is the zero value (0,0), which providers
// use to signal an unknown location.
func (p Point) IsZero() bool {
	return p.Lat == 0 && p.Lng == 0
}

// Valid reports whether the point lies inside the WGS84 coordinate ranges.
func (p Point) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Known reports whether the point is valid and not the zero value.
func (p Point) Known() bool {
	return p.Valid() && !p.IsZero()
}

// DistanceKm returns the great-circle distance between two points in kilometres.
func DistanceKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// BoundingBox returns the south-west and north-east corners of a box that
// contains every point within radiusKm of center. The box is used as a cheap
// pre-filter before the exact haversine check.
func BoundingBox(center Point, radiusKm float64) (sw, ne Point) {
	dLat := radiusKm / EarthRadiusKm * 180 / math.Pi
	cosLat := math.Cos(center.Lat * math.Pi / 180)
	dLng := 180.0
	if cosLat > 1e-9 {
		dLng = math.Min(180, dLat/cosLat)
	}

	sw = Point{Lat: math.Max(-90, center.Lat-dLat), Lng: math.Max(-180, center.Lng-dLng)}
	ne = Point{Lat: math.Min(90, center.Lat+dLat), Lng: math.Min(180, center.Lng+dLng)}
	return sw, ne
}

// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package geo

import "time"

// Meteorological season names returned by SeasonAt.
const (
	Spring = "spring"
	Summer = "summer"
	Autumn = "autumn"
	Winter = "winter"
)

// northernSeasons maps a month to its meteorological season north of the
// equator. The southern hemisphere is shifted by six months.
var northernSeasons = [12]string{
	Winter, Winter, Spring, Spring, Spring, Summer,
	Summer, Summer, Autumn, Autumn, Autumn, Winter,
}

// SeasonAt returns the meteorological season at latitude lat on t's date.
// Points on the equator are treated as northern hemisphere.
func SeasonAt(t time.Time, lat float64) string {
	month := int(t.Month()) - 1
	if lat < 0 {
		month = (month + 6) % 12
	}
	return northernSeasons[month]
}

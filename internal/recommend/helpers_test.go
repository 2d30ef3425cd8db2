// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import "math"

func ptrFloat(v float64) *float64 { return &v }

func ptrInt(v int) *int { return &v }

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

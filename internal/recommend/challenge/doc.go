// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package challenge selects up to K "stretch" recommendations that sit
// outside the user's comfort zone.
//
// The branch runs on the same scored pool as the primary selection:
//
//   - Finder: drops top-five categories, evaluates six challenge factors
//     and applies the exploration-bias gate
//   - Scorer: 0.30 weather + 0.20 travel + 0.25 novelty + 0.15 seasonal +
//     0.10 safety
//   - Select: score descending, one per bucket first, then fill
//   - Assembler: travel estimate, forecast badge, verified venues and
//     rationale, with external calls bounded by a CallBudget
//
// Only the Assembler blocks. A failed or empty venue verification drops that
// candidate alone; Plan returns an empty list, not an error, when nothing
// survives.
package challenge

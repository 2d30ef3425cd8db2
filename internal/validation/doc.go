// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is configured once with json tag names,
// so error messages and field paths use the names clients actually send
// ("location.lat", "types[2]"), and with the custom "type_tag" rule for
// venue type filters.
//
// # Usage
//
//	type RecommendationRequest struct {
//	    VibeText string    `json:"vibe_text" validate:"required_without=Vibe,max=500"`
//	    Location *Location `json:"location" validate:"required"`
//	    Types    []string  `json:"types" validate:"max=20,dive,type_tag"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Code == "VALIDATION_ERROR"
//	}
//
// A single failure puts "field" and "tag" in APIError.Details; several
// failures are listed under "fields" with one message each.
package validation

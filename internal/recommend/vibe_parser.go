// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// VibeParser turns free text into a structured VibeProfile. Implementations
// return a *ParseError when the text could not be interpreted.
type VibeParser interface {
	Parse(ctx context.Context, text string) (VibeProfile, error)
}

// ParseError reports a vibe that could not be parsed.
type ParseError struct {
	Text   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse vibe %q: %s: %v", e.Text, e.Reason, e.Err)
	}
	return fmt.Sprintf("parse vibe %q: %s", e.Text, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseVibe parses text with p. A *ParseError yields DefaultVibeProfile with
// the text's words as keywords and a nil error, so that callers always have a
// usable profile. Any other error (context cancellation, nil parser) is
// returned unchanged.
func ParseVibe(ctx context.Context, p VibeParser, text string) (VibeProfile, error) {
	if p == nil {
		return VibeProfile{}, errors.New("vibe parser is nil")
	}

	profile, err := p.Parse(ctx, text)
	if err == nil {
		return NormalizeVibe(profile), nil
	}

	var perr *ParseError
	if !errors.As(err, &perr) {
		return VibeProfile{}, err
	}

	fallback := DefaultVibeProfile()
	fallback.Keywords = Keywords(text)
	return fallback, nil
}

// NormalizeVibe replaces unknown enum values with the default profile's.
func NormalizeVibe(v VibeProfile) VibeProfile {
	def := DefaultVibeProfile()
	if v.Energy.Rank() < 0 {
		v.Energy = def.Energy
	}
	switch v.Social {
	case SocialAlone, SocialIntimate, SocialSmallGroup, SocialCrowd:
	default:
		v.Social = def.Social
	}
	switch v.Budget {
	case BudgetFree, BudgetLow, BudgetMedium, BudgetHigh, BudgetAny:
	default:
		v.Budget = def.Budget
	}
	v.Mood = strings.ToLower(strings.TrimSpace(v.Mood))
	if v.Mood == "" {
		v.Mood = def.Mood
	}
	if len(v.Categories) > 0 {
		cats := make([]Bucket, len(v.Categories))
		for i, c := range v.Categories {
			cats[i] = ParseBucket(string(c))
		}
		v.Categories = cats
	}
	v.Confidence = clamp01(v.Confidence)
	return v
}

// Keywords splits free text into lower-case words of at least three letters.
func Keywords(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-'
	})
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}
	return out
}

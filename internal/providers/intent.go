// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package providers

import (
	"context"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vibecompass/internal/cache"
	"github.com/tomtom215/vibecompass/internal/recommend"
)

const intentPath = "/v1/intent"

// IntentClient is a recommend.VibeParser backed by an external intent
// service. The service receives {"text": "..."} and answers with a
// VibeProfile document.
//
// Every upstream failure, including an open breaker, is reported as a
// *recommend.ParseError so that recommend.ParseVibe falls back to the default
// profile. Errors caused by the caller's context ending are returned as is.
type IntentClient struct {
	client *Client
}

// NewIntentClient creates a vibe parser on top of client.
func NewIntentClient(client *Client) *IntentClient {
	return &IntentClient{client: client}
}

type intentRequest struct {
	Text string `json:"text"`
}

// Parse implements recommend.VibeParser.
func (p *IntentClient) Parse(ctx context.Context, text string) (recommend.VibeProfile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return recommend.VibeProfile{}, &recommend.ParseError{Text: text, Reason: "empty text"}
	}

	key := cache.GenerateKey("intent", strings.ToLower(text))
	var profile recommend.VibeProfile
	if p.client.cacheGet(ctx, key, &profile) {
		return profile, nil
	}

	body, err := p.client.PostJSON(ctx, intentPath, intentRequest{Text: text})
	if err != nil {
		if ctx.Err() != nil {
			return recommend.VibeProfile{}, err
		}
		return recommend.VibeProfile{}, &recommend.ParseError{Text: text, Reason: "intent service failed", Err: err}
	}

	if err := json.Unmarshal(body, &profile); err != nil {
		return recommend.VibeProfile{}, &recommend.ParseError{Text: text, Reason: "malformed intent response", Err: err}
	}
	if profile.Energy == "" && profile.Social == "" && profile.Mood == "" && len(profile.Categories) == 0 {
		return recommend.VibeProfile{}, &recommend.ParseError{Text: text, Reason: "intent response carried no vibe"}
	}

	profile = recommend.NormalizeVibe(profile)
	p.client.cachePut(ctx, key, profile)
	return profile, nil
}

var _ recommend.VibeParser = (*IntentClient)(nil)

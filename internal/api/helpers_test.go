// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/vibecompass/internal/recommend"
)

// mockEngine records requests and returns a canned response.
type mockEngine struct {
	mu    sync.Mutex
	got   []recommend.Request
	resp  *recommend.Response
	err   error
	stats recommend.Stats
}

func (m *mockEngine) Recommend(_ context.Context, req recommend.Request) (*recommend.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.got = append(m.got, req)
	if m.err != nil {
		return nil, m.err
	}
	if m.resp != nil {
		return m.resp, nil
	}
	return &recommend.Response{
		TopFive:    []recommend.ScoredCandidate{},
		Challenges: []recommend.ChallengeRecommendation{},
		Metadata:   recommend.ResponseMetadata{RequestID: req.RequestID},
	}, nil
}

func (m *mockEngine) GetStats() recommend.Stats {
	return m.stats
}

func (m *mockEngine) last(t *testing.T) recommend.Request {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.got) == 0 {
		t.Fatal("engine was not called")
	}
	return m.got[len(m.got)-1]
}

func (m *mockEngine) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.got)
}

// mockParser returns a fixed profile or error.
type mockParser struct {
	profile recommend.VibeProfile
	err     error
}

func (p *mockParser) Parse(_ context.Context, _ string) (recommend.VibeProfile, error) {
	return p.profile, p.err
}

type fakeBreaker struct {
	name, state string
}

func (b fakeBreaker) Name() string         { return b.name }
func (b fakeBreaker) BreakerState() string { return b.state }

// envelope mirrors APIResponse with a raw payload.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    *APIMeta        `json:"meta"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	if env.Meta == nil {
		t.Error("response is missing meta")
	}
	return env
}

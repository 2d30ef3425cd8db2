// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func newTestRouter(engine *mockEngine, mw *ChiMiddlewareConfig) http.Handler {
	h := NewHandler(engine, HandlerConfig{})
	return NewRouter(h, mw).SetupChi()
}

func TestRouter_RecommendEndToEnd(t *testing.T) {
	t.Parallel()

	engine := &mockEngine{}
	router := newTestRouter(engine, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations",
		strings.NewReader(`{"vibe_text":"rainy day reading","location":{"lat":51.5,"lng":-0.12}}`))
	req.Header.Set("X-Request-ID", "client-req-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Request-ID") != "client-req-1" {
		t.Errorf("X-Request-ID = %q", rec.Header().Get("X-Request-ID"))
	}
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Error("security headers missing")
	}
	if got := engine.last(t).RequestID; got != "client-req-1" {
		t.Errorf("engine request id = %q, want the propagated id", got)
	}
	if env := decodeEnvelope(t, rec); env.Meta.RequestID != "client-req-1" {
		t.Errorf("meta.request_id = %q", env.Meta.RequestID)
	}
}

func TestRouter_NotFoundAndMethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockEngine{}, nil)

	tests := []struct {
		method, path string
		wantStatus   int
		wantCode     string
	}{
		{http.MethodGet, "/api/v1/nope", http.StatusNotFound, ErrCodeNotFound},
		{http.MethodGet, "/api/v1/recommendations", http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

		if rec.Code != tt.wantStatus {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.path, rec.Code, tt.wantStatus)
			continue
		}
		env := decodeEnvelope(t, rec)
		if env.Error == nil || env.Error.Code != tt.wantCode {
			t.Errorf("%s %s: error = %+v", tt.method, tt.path, env.Error)
		}
	}
}

func TestRouter_BodyTooLarge(t *testing.T) {
	t.Parallel()

	mw := DefaultChiMiddlewareConfig()
	mw.MaxBodyBytes = 64
	engine := &mockEngine{}
	router := newTestRouter(engine, mw)

	body := `{"vibe_text":"` + strings.Repeat("a", 200) + `","location":{"lat":1,"lng":1}}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", strings.NewReader(body)))

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rec.Code)
	}
	if engine.calls() != 0 {
		t.Error("engine should not be called")
	}
}

func TestRouter_RateLimit(t *testing.T) {
	t.Parallel()

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 1
	mw.RateLimitWindow = time.Minute
	router := newTestRouter(&mockEngine{}, mw)

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d", first.Code)
	}

	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
	if second.Code != http.StatusTooManyRequests {
		t.Fatalf("second status = %d, want 429", second.Code)
	}
	if env := decodeEnvelope(t, second); env.Error == nil || env.Error.Code != ErrCodeTooManyRequests {
		t.Errorf("error = %+v", env.Error)
	}

	// Health has its own, permissive budget.
	health := httptest.NewRecorder()
	router.ServeHTTP(health, httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil))
	if health.Code != http.StatusOK {
		t.Errorf("health status = %d", health.Code)
	}
}

func TestRouter_RateLimitDisabled(t *testing.T) {
	t.Parallel()

	mw := DefaultChiMiddlewareConfig()
	mw.RateLimitRequests = 1
	mw.RateLimitDisabled = true
	router := newTestRouter(&mockEngine{}, mw)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: status = %d", i, rec.Code)
		}
	}
}

func TestRouter_StatsIncludesEndpointLatency(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockEngine{}, nil)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/recommendations",
		strings.NewReader(`{"vibe_text":"x","location":{"lat":1,"lng":1}}`)))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil))

	var stats StatsResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &stats); err != nil {
		t.Fatal(err)
	}
	found := false
	for _, e := range stats.Endpoints {
		if e.Endpoint == "POST /api/v1/recommendations" && e.RequestCount == 1 {
			found = true
		}
	}
	if !found {
		t.Errorf("endpoints = %+v", stats.Endpoints)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	t.Parallel()

	mw := DefaultChiMiddlewareConfig()
	mw.CORSAllowedOrigins = []string{"https://app.example.com"}
	router := newTestRouter(&mockEngine{}, mw)

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/recommendations", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestRouter_Metrics(t *testing.T) {
	t.Parallel()

	router := newTestRouter(&mockEngine{}, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing default collectors")
	}
}

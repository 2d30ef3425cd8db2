// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package metrics

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordDBQuery tests database query metric recording
func TestRecordDBQuery(t *testing.T) {
	tests := []struct {
		name      string
		operation string
		table     string
		duration  time.Duration
		err       error
	}{
		{
			name:      "successful SELECT query",
			operation: "SELECT",
			table:     "venues",
			duration:  10 * time.Millisecond,
		},
		{
			name:      "failed query with short error",
			operation: "SELECT",
			table:     "venues",
			duration:  100 * time.Millisecond,
			err:       errors.New("connection refused"),
		},
		{
			name:      "failed query with long error - should truncate to 50 chars",
			operation: "INSERT",
			table:     "venues",
			duration:  50 * time.Millisecond,
			err:       errors.New("this is a very long error message that exceeds fifty characters and should be truncated properly"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RecordDBQuery(tt.operation, tt.table, tt.duration, tt.err)
		})
	}
}

// TestRecordDBQuery_ErrorTruncation verifies error labels are truncated at 50 chars
func TestRecordDBQuery_ErrorTruncation(t *testing.T) {
	long := strings.Repeat("x", 80)
	before := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "truncation", long[:50]))

	RecordDBQuery("SELECT", "truncation", time.Millisecond, errors.New(long))

	after := testutil.ToFloat64(DBQueryErrors.WithLabelValues("SELECT", "truncation", long[:50]))
	if after-before != 1 {
		t.Errorf("truncated error label incremented by %v, want 1", after-before)
	}
}

func TestRecordDomainOverride(t *testing.T) {
	before := testutil.ToFloat64(DomainOverrides.WithLabelValues("sports"))
	RecordDomainOverride("sports")
	RecordDomainOverride("sports")

	if got := testutil.ToFloat64(DomainOverrides.WithLabelValues("sports")) - before; got != 2 {
		t.Errorf("sports overrides = %v, want 2", got)
	}
}

func TestRecordProviderCall(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		result string
	}{
		{"success", nil, "success"},
		{"failure", errors.New("boom"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(ProviderCalls.WithLabelValues("test_provider", tt.result))
			RecordProviderCall("test_provider", 20*time.Millisecond, tt.err)
			after := testutil.ToFloat64(ProviderCalls.WithLabelValues("test_provider", tt.result))
			if after-before != 1 {
				t.Errorf("%s calls incremented by %v, want 1", tt.result, after-before)
			}
		})
	}

	before := testutil.ToFloat64(ProviderCalls.WithLabelValues("test_provider", "rejected"))
	RecordProviderRejected("test_provider")
	if got := testutil.ToFloat64(ProviderCalls.WithLabelValues("test_provider", "rejected")) - before; got != 1 {
		t.Errorf("rejected calls incremented by %v, want 1", got)
	}
}

func TestRecordCacheLookup(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits.WithLabelValues("test"))
	misses := testutil.ToFloat64(CacheMisses.WithLabelValues("test"))

	RecordCacheLookup("test", true)
	RecordCacheLookup("test", false)
	RecordCacheLookup("test", false)

	if got := testutil.ToFloat64(CacheHits.WithLabelValues("test")) - hits; got != 1 {
		t.Errorf("hits = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses.WithLabelValues("test")) - misses; got != 2 {
		t.Errorf("misses = %v, want 2", got)
	}
}

// TestTrackActiveRequest_RequestLifecycle simulates a realistic request lifecycle
func TestTrackActiveRequest_RequestLifecycle(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	for i := 0; i < 10; i++ {
		TrackActiveRequest(true)
	}
	for i := 0; i < 10; i++ {
		TrackActiveRequest(false)
	}

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v after balanced lifecycle, want %v", got, before)
	}
}

// TestConcurrentMetricRecording tests thread safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	var wg sync.WaitGroup
	numGoroutines := 50
	operationsPerGoroutine := 20

	wg.Add(numGoroutines * 3)
	for i := 0; i < numGoroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordRecommendation("success", time.Duration(j)*time.Millisecond, j)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordStage("score", time.Duration(j)*time.Microsecond)
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < operationsPerGoroutine; j++ {
				RecordAPIRequest("POST", "/api/v1/recommendations", "200", time.Millisecond)
			}
		}()
	}

	wg.Wait()
}

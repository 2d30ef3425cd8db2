// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	if a == b {
		t.Error("GenerateRequestID returned duplicates")
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("GenerateRequestID() = %q is not a UUID: %v", a, err)
	}
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	if got := RequestIDFromContext(ctx); got != "" {
		t.Errorf("RequestIDFromContext(empty) = %q", got)
	}

	ctx = ContextWithRequestID(ctx, "req-1")
	if got := RequestIDFromContext(ctx); got != "req-1" {
		t.Errorf("RequestIDFromContext() = %q, want req-1", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	ctx := ContextWithLogger(context.Background(), NewTestLogger(&buf))

	logger := LoggerFromContext(ctx)
	logger.Info().Msg("from context")
	if !strings.Contains(buf.String(), "from context") {
		t.Errorf("context logger not used: %s", buf.String())
	}
}

func TestCtx(t *testing.T) {
	global := resetGlobal(t)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	Ctx(ctx).Info().Msg("handled")

	out := global.String()
	if !strings.Contains(out, `"request_id":"req-42"`) {
		t.Errorf("Ctx() missing request_id: %s", out)
	}

	global.Reset()
	Ctx(context.Background()).Info().Msg("bare")
	if strings.Contains(global.String(), "request_id") {
		t.Errorf("Ctx() added request_id without one in context: %s", global.String())
	}
}

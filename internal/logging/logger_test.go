// Vibecompass - Vibe-Based Venue Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/vibecompass

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// Tests in this package mutate the global logger and level, so none of them
// run in parallel.

func resetGlobal(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	Init(Config{Level: "trace", Format: "json", Output: &buf})
	t.Cleanup(func() { Init(DefaultConfig()) })
	return &buf
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != "info" || cfg.Format != "json" {
		t.Errorf("DefaultConfig() = %+v, want info/json", cfg)
	}
	if cfg.Caller {
		t.Error("expected default caller to be false")
	}
	if !cfg.Timestamp {
		t.Error("expected default timestamp to be true")
	}
}

func TestInit(t *testing.T) {
	buf := resetGlobal(t)
	Init(Config{Level: "warn", Format: "json", Output: buf})

	Info().Msg("hidden")
	Warn().Str("provider", "weather").Msg("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message written at warn level: %s", out)
	}
	if !strings.Contains(out, `"provider":"weather"`) || !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("warn message missing fields: %s", out)
	}
}

func TestInit_Console(t *testing.T) {
	buf := resetGlobal(t)
	Init(Config{Level: "info", Format: "console", Output: buf})

	Info().Msg("console line")

	out := buf.String()
	if !strings.Contains(out, "console line") {
		t.Errorf("console output missing message: %s", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("console output looks like JSON: %s", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"disabled", zerolog.Disabled},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	for _, l := range []string{"debug", "info", "warn", "error"} {
		if !ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = false", l)
		}
	}
	for _, l := range []string{"", "verbose"} {
		if ValidLevel(l) {
			t.Errorf("ValidLevel(%q) = true", l)
		}
	}
}

func TestWithComponent(t *testing.T) {
	buf := resetGlobal(t)

	logger := WithComponent("challenge")
	logger.Info().Msg("planned")

	if !strings.Contains(buf.String(), `"component":"challenge"`) {
		t.Errorf("missing component field: %s", buf.String())
	}
}

func TestErr(t *testing.T) {
	buf := resetGlobal(t)

	Err(errors.New("boom")).Msg("failed")

	out := buf.String()
	if !strings.Contains(out, `"error":"boom"`) || !strings.Contains(out, `"level":"error"`) {
		t.Errorf("Err() output = %s", out)
	}
}

func TestSetLevelString(t *testing.T) {
	buf := resetGlobal(t)

	SetLevelString("error")
	Warn().Msg("dropped")
	if buf.Len() != 0 {
		t.Errorf("warn written at error level: %s", buf.String())
	}

	SetLevelString("debug")
	Debug().Msg("kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("debug message missing: %s", buf.String())
	}
}

func TestSetLogger(t *testing.T) {
	resetGlobal(t)

	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	Info().Msg("replaced")

	if !strings.Contains(buf.String(), "replaced") {
		t.Errorf("SetLogger did not take effect: %s", buf.String())
	}
}

// Fundmatch - Hybrid Project Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/fundmatch

package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid JSON %q: %v", buf.String(), err)
	}
	return entry
}

func TestSlogHandler_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, "debug"},
		{slog.LevelInfo, "info"},
		{slog.LevelWarn, "warn"},
		{slog.LevelError, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf)))
			logger.Log(context.Background(), tt.level, "supervisor event")

			if buf.Len() == 0 {
				// Debug is below the default global level.
				if tt.level == slog.LevelDebug && zerolog.GlobalLevel() > zerolog.DebugLevel {
					return
				}
				t.Fatal("nothing written")
			}
			entry := decodeLine(t, &buf)
			if entry["level"] != tt.want || entry["message"] != "supervisor event" {
				t.Errorf("entry = %v", entry)
			}
		})
	}
}

func TestSlogHandler_Enabled(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(NewTestLogger(&bytes.Buffer{}).Level(zerolog.WarnLevel))
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info should be disabled for a warn logger")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error should be enabled for a warn logger")
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf))).
		With("supervisor", "fundmatch").
		WithGroup("service")

	logger.Warn("restart",
		"name", "recommend",
		"failures", 2,
		"backoff", 1.5,
		"healthy", false,
		"wait", 3*time.Second,
		"err", errors.New("train failed"),
		slog.Group("model", "version", 4),
	)

	entry := decodeLine(t, &buf)
	want := map[string]interface{}{
		"supervisor":            "fundmatch",
		"service.name":          "recommend",
		"service.failures":      float64(2),
		"service.backoff":       1.5,
		"service.healthy":       false,
		"service.err":           "train failed",
		"service.model.version": float64(4),
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %v", k, entry[k], v)
		}
	}
	if _, ok := entry["service.wait"]; !ok {
		t.Errorf("duration missing: %v", entry)
	}
}

func TestSlogHandler_NestedGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(NewSlogHandlerWithLogger(NewTestLogger(&buf))).
		WithGroup("a").WithGroup("b")
	logger.Info("msg", "k", "v")

	if !strings.Contains(buf.String(), `"a.b.k":"v"`) {
		t.Errorf("output = %q", buf.String())
	}
}

func TestSlogHandler_WithGroupEmpty(t *testing.T) {
	t.Parallel()

	h := NewSlogHandlerWithLogger(NewTestLogger(&bytes.Buffer{}))
	if h.WithGroup("") != h {
		t.Error("WithGroup(\"\") should return the same handler")
	}
}

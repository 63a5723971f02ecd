// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"
)

func TestTUILogHandlerLevels(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn, nil)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled without a tee")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error not enabled")
	}

	teed := NewTUILogHandler(slog.LevelWarn, slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelDebug}))
	if !teed.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug not enabled although the tee wants it")
	}
}

func TestTUILogHandlerTeesWithoutProgram(t *testing.T) {
	var buffer bytes.Buffer
	handler := NewTUILogHandler(slog.LevelWarn, slog.NewJSONHandler(&buffer, nil))
	logger := slog.New(handler).With("component", "store")

	logger.Warn("reseeded", "key", "pm_projectsData")

	var entry map[string]any
	if err := json.Unmarshal(buffer.Bytes(), &entry); err != nil {
		t.Fatalf("tee output is not JSON: %v (%q)", err, buffer.String())
	}
	if entry["msg"] != "reseeded" || entry["component"] != "store" || entry["key"] != "pm_projectsData" {
		t.Errorf("entry = %v", entry)
	}
}

func TestTUILogHandlerSummary(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn, nil)
	derived := handler.WithAttrs([]slog.Attr{slog.String("backend", "redis")}).WithGroup("put").(*TUILogHandler)
	if derived.program != handler.program {
		t.Fatal("derived handler does not share the program pointer")
	}

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "write slow", 0)
	record.AddAttrs(slog.Int("attempt", 2))
	if got, want := derived.summarize(record), "write slow (backend=redis, put.attempt=2)"; got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}

	bare := slog.NewRecord(time.Now(), slog.LevelWarn, "plain", 0)
	if got := handler.summarize(bare); got != "plain" {
		t.Errorf("summary = %q, want %q", got, "plain")
	}
}

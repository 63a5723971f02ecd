// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package gridui

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg carries a log record to the model for the status line.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg clears a log record from the status line. Sequence
// identifies the record it was scheduled for, so a newer record is not
// cleared early.
type logRecordFadeMsg struct {
	Sequence uint64
}

// logRecordFadeDelay is how long a log record stays in the status line.
const logRecordFadeDelay = 5 * time.Second

// TUILogHandler is a slog.Handler that delivers records at or above
// its level into a running bubbletea program, and optionally passes
// every record it sees on to a second handler (a JSON log file).
//
// Create the handler before the program, then call SetProgram. Records
// arriving before SetProgram reach only the tee. Handlers derived with
// WithAttrs and WithGroup share the program pointer.
type TUILogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	tee     slog.Handler
	attrs   []slog.Attr
	groups  []string
}

// NewTUILogHandler returns a handler delivering records at or above
// level to the program. tee may be nil.
func NewTUILogHandler(level slog.Level, tee slog.Handler) *TUILogHandler {
	return &TUILogHandler{
		level:   level,
		program: &atomic.Pointer[tea.Program]{},
		tee:     tee,
	}
}

// SetProgram sets the program that receives records. Safe to call from
// any goroutine.
func (handler *TUILogHandler) SetProgram(program *tea.Program) {
	handler.program.Store(program)
}

// Enabled implements slog.Handler.
func (handler *TUILogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= handler.level {
		return true
	}
	return handler.tee != nil && handler.tee.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (handler *TUILogHandler) Handle(ctx context.Context, record slog.Record) error {
	var teeErr error
	if handler.tee != nil && handler.tee.Enabled(ctx, record.Level) {
		teeErr = handler.tee.Handle(ctx, record)
	}
	if record.Level < handler.level {
		return teeErr
	}
	program := handler.program.Load()
	if program == nil {
		return teeErr
	}
	program.Send(logRecordMsg{Summary: handler.summarize(record), Level: record.Level})
	return teeErr
}

// summarize renders "message (key=value, ...)", handler attributes
// first.
func (handler *TUILogHandler) summarize(record slog.Record) string {
	prefix := ""
	if len(handler.groups) > 0 {
		prefix = strings.Join(handler.groups, ".") + "."
	}
	var parts []string
	for _, attr := range handler.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s%s=%s", prefix, attr.Key, attr.Value))
		return true
	})
	if len(parts) == 0 {
		return record.Message
	}
	return record.Message + " (" + strings.Join(parts, ", ") + ")"
}

// WithAttrs implements slog.Handler.
func (handler *TUILogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	derived := handler.derive()
	derived.attrs = append(derived.attrs, attrs...)
	if handler.tee != nil {
		derived.tee = handler.tee.WithAttrs(attrs)
	}
	return derived
}

// WithGroup implements slog.Handler.
func (handler *TUILogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return handler
	}
	derived := handler.derive()
	derived.groups = append(derived.groups, name)
	if handler.tee != nil {
		derived.tee = handler.tee.WithGroup(name)
	}
	return derived
}

func (handler *TUILogHandler) derive() *TUILogHandler {
	return &TUILogHandler{
		level:   handler.level,
		program: handler.program,
		tee:     handler.tee,
		attrs:   slices.Clone(handler.attrs),
		groups:  slices.Clone(handler.groups),
	}
}

var _ slog.Handler = (*TUILogHandler)(nil)

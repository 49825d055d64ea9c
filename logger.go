// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package lightshow

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while a show is running.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for lightshow and all its sub-packages.
// By default, lightshow produces no log output.
//
// SetLogger is safe for concurrent use. Pass nil to restore the default
// silent behavior.
//
// Log levels used by lightshow:
//   - [slog.LevelDebug]: configuration diagnostics (stage wiring, arena growth)
//   - [slog.LevelInfo]: lifecycle events (module created, curve swapped, show loaded)
//   - [slog.LevelWarn]: degraded paths (unresolved channels, skipped pixels)
//
// Frame processing never logs.
//
// Example:
//
//	lightshow.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by lightshow.
// Sub-packages call this to share the same logger configuration without
// introducing import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

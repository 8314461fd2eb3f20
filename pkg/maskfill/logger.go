package maskfill

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false so callers skip
// attribute formatting altogether.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(discardHandler{}))
}

// SetLogger installs the logger used by the mask and compositing pipeline.
// The package is silent until SetLogger is called; passing nil silences it again.
//
// Levels:
//   - [slog.LevelDebug]: region counts, fallback decisions, chosen instruction variant
//   - [slog.LevelWarn]: settings that had to be normalized
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(discardHandler{})
	}
	loggerPtr.Store(l)
}

// Logger returns the active package logger. Safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

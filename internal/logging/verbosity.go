package logging

import (
	"context"
	"log/slog"
)

// LevelTrace is a custom level below slog.LevelDebug for very chatty
// diagnostics (individual page lookups, archive entries).
const LevelTrace = slog.Level(-8)

// LevelFromVerbosity maps a -v flag count to a slog level.
//
//	0: Info (default)
//	1: Debug
//	2+: Trace
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelInfo
	case v == 1:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// ctxKey is the context key type for logger storage.
type ctxKey struct{}

// NewContext returns a context carrying the given logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default if none.
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

package impulsego

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/impulsego/model"
)

// Logger wraps slog.Logger with impulsego-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithBlockID adds a block_id field to the logger.
func (l *Logger) WithBlockID(id model.BlockID) *Logger {
	return &Logger{
		Logger: l.Logger.With("block_id", uint32(id)),
	}
}

// WithKind adds a block kind field to the logger.
func (l *Logger) WithKind(kind model.BlockKind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind.String()),
	}
}

// LogLifecycle logs a runtime lifecycle transition (init/deinit).
func (l *Logger) LogLifecycle(ctx context.Context, op string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "runtime lifecycle failed",
			"op", op,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "runtime lifecycle completed",
			"op", op,
		)
	}
}

// LogClassify logs a classification run.
func (l *Logger) LogClassify(ctx context.Context, samples int, debug bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "classification failed",
			"samples", samples,
			"debug", debug,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "classification completed",
			"samples", samples,
			"debug", debug,
		)
	}
}

// LogThresholdUpdate logs a threshold setter outcome.
func (l *Logger) LogThresholdUpdate(ctx context.Context, id model.BlockID, kind model.BlockKind, err error) {
	if err != nil {
		l.WarnContext(ctx, "threshold update failed",
			"block_id", uint32(id),
			"kind", kind.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "threshold updated",
			"block_id", uint32(id),
			"kind", kind.String(),
		)
	}
}

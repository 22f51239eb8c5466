package memvec

import (
	"context"
	"io"
	"log/slog"
	"math"
	"os"
)

// Logger wraps slog.Logger with memvec-specific context.
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
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{Logger: slog.New(handler)}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(math.MaxInt),
	}))}
}

// LogInit logs index initialization.
func (l *Logger) LogInit(dimension int) {
	l.Debug("index initialized", "dimension", dimension)
}

// LogAdd logs an add operation.
func (l *Logger) LogAdd(ctx context.Context, id string, dimension int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add failed",
			"id", id,
			"dimension", dimension,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "add completed",
			"id", id,
			"dimension", dimension,
		)
	}
}

// LogAddBatch logs a batch add operation.
func (l *Logger) LogAddBatch(ctx context.Context, count, failed int) {
	if failed > 0 {
		l.WarnContext(ctx, "batch add completed with failures",
			"total", count,
			"failed", failed,
			"success", count-failed,
		)
	} else {
		l.DebugContext(ctx, "batch add completed",
			"count", count,
		)
	}
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(ctx context.Context, id string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "remove failed",
			"id", id,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "remove completed",
			"id", id,
		)
	}
}

// LogSearch logs a search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "search completed",
			"k", k,
			"results", resultsFound,
		)
	}
}

// LogClear logs a clear operation.
func (l *Logger) LogClear() {
	l.Debug("index cleared")
}

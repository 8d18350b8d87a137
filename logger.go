package primecount

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with primecount-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// WithStrategy adds a strategy field to the logger.
func (l *Logger) WithStrategy(s Strategy) *Logger {
	return &Logger{
		Logger: l.Logger.With("strategy", s.String()),
	}
}

// WithWorkers adds a workers field to the logger.
func (l *Logger) WithWorkers(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("workers", n),
	}
}

// LogCount logs a count operation.
func (l *Logger) LogCount(ctx context.Context, s Strategy, n uint64, workers int, count uint64, err error) {
	log := l.WithStrategy(s).WithWorkers(workers)
	if err != nil {
		log.ErrorContext(ctx, "count failed", "n", n, "error", err)
		return
	}
	log.InfoContext(ctx, "count completed", "n", n, "count", count)
}

// LogSearch logs an early-stop search.
func (l *Logger) LogSearch(ctx context.Context, k uint64, workers int, kth uint64, err error) {
	log := l.WithWorkers(workers)
	if err != nil {
		log.ErrorContext(ctx, "search failed", "k", k, "error", err)
		return
	}
	log.InfoContext(ctx, "search completed", "k", k, "kth", kth)
}

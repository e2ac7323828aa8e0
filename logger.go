package ivfflat

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with ivfflat-specific context.
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

// WithDimension adds a dimension field to the logger.
func (l *Logger) WithDimension(dim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("dimension", dim),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs a Build operation: cluster count, vector count, sample
// size, and empty-cluster count on success; the error on failure.
func (l *Logger) LogBuild(ctx context.Context, k, n, sampleSize, emptyClusters int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"clusters", k,
			"vectors", n,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "build completed",
		"clusters", k,
		"vectors", n,
		"sample_size", sampleSize,
		"empty_clusters", emptyClusters,
	)
}

// LogSearch logs a Search operation.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed",
			"k", k,
			"error", err,
		)
		return
	}
	l.DebugContext(ctx, "search completed",
		"k", k,
		"results", resultsFound,
	)
}

// LogPersist logs a Write operation.
func (l *Logger) LogPersist(ctx context.Context, baseName string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "persist failed",
			"base_name", baseName,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "persist completed",
		"base_name", baseName,
	)
}

// LogLoad logs a Read operation.
func (l *Logger) LogLoad(ctx context.Context, baseName string, vectors int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"base_name", baseName,
			"error", err,
		)
		return
	}
	l.InfoContext(ctx, "load completed",
		"base_name", baseName,
		"vectors", vectors,
	)
}

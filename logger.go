package labeltransform

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/labeltransform/encoder"
)

// Logger wraps slog.Logger with label transform specific helpers.
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

// WithKind adds a record kind field to the logger.
func (l *Logger) WithKind(kind RecordKind) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", string(kind)),
	}
}

// LogFit logs the encoder selection step of a fit.
func (l *Logger) LogFit(ctx context.Context, kind RecordKind, discovered bool, labels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "label transform fit failed",
			"kind", string(kind),
			"error", err,
		)
		return
	}
	if discovered {
		l.InfoContext(ctx, "label encoder discovered",
			"kind", string(kind),
			"labels", labels,
		)
	} else {
		l.InfoContext(ctx, "label encoder provided",
			"kind", string(kind),
			"labels", labels,
		)
	}
}

// LogTransform logs a transform over a dataset.
func (l *Logger) LogTransform(ctx context.Context, kind RecordKind, dir encoder.Direction, records int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "label transform failed",
			"kind", string(kind),
			"direction", dir.String(),
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "label transform completed",
			"kind", string(kind),
			"direction", dir.String(),
			"records", records,
		)
	}
}

// LogExport logs a model export.
func (l *Logger) LogExport(ctx context.Context, labels int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "label transform export failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "label transform exported",
			"labels", labels,
		)
	}
}

// LogLoad logs a model load.
func (l *Logger) LogLoad(ctx context.Context, labels int, needRun bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "label transform load failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "label transform loaded",
			"labels", labels,
			"need_run", needRun,
		)
	}
}

package log

import (
	"context"
	"log/slog"
)

type contextKey string

const loggerContextKey contextKey = "logger"

// WithContext returns a copy of ctx carrying logger.
func WithContext(ctx context.Context, logger *Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey, logger)
}

// FromContext extracts a logger from ctx, falling back to the default logger.
func FromContext(ctx context.Context) *Logger {
	if logger, ok := ctx.Value(loggerContextKey).(*Logger); ok {
		return logger
	}
	return &Logger{
		Logger:    slog.Default(),
		component: "unknown",
	}
}

// StructuredLogger provides structured logging methods with context awareness
type StructuredLogger struct {
	logger *Logger
}

// NewStructuredLogger creates a new structured logger
func NewStructuredLogger(logger *Logger) *StructuredLogger {
	return &StructuredLogger{
		logger: logger,
	}
}

// LogSeeded logs a completed generation run. seed reproduces the run.
func (sl *StructuredLogger) LogSeeded(ctx context.Context, count int, backend string, seed uint64, durationMs int64) {
	fields := NewFields().
		WithOperation(OpSeed).
		WithComponent(ComponentGenerator).
		WithDuration(durationMs).
		ToSlice()

	fields = append(fields, FieldSaleCount, count, FieldBackend, backend, FieldSeed, seed)

	sl.logger.Logger.InfoContext(ctx, "Sales generated", fields...)
}

// LogReportBuilt logs a successfully assembled report
func (sl *StructuredLogger) LogReportBuilt(ctx context.Context, runID string, sales, categories, days int, topProduct string, topQuantity int, durationMs int64) {
	fields := NewFields().
		WithRunID(runID).
		WithReport(sales, categories, days, topProduct, topQuantity).
		WithOperation(OpAggregate).
		WithComponent(ComponentReport).
		WithDuration(durationMs)
	fields[FieldSuccess] = true

	sl.logger.Logger.InfoContext(ctx, "Report built", fields.ToSlice()...)
}

// LogError logs an error with structured context
func (sl *StructuredLogger) LogError(ctx context.Context, msg string, err error, component string, operation string, fields LogFields) {
	if fields == nil {
		fields = NewFields()
	}
	allFields := fields.
		WithError(err).
		WithOperation(operation).
		WithComponent(component)

	sl.logger.Logger.ErrorContext(ctx, msg, allFields.ToSlice()...)
}

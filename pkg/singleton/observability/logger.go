// Package observability provides production-grade observability features
// for singleton registries: structured logging, metrics, and distributed
// tracing.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds singleton context to a logger.
// Returns a new logger with type_key and attempt fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "*pkg.Database", 1)
//	enriched.Info("doing work") // includes type_key, attempt
func EnrichLogger(logger *slog.Logger, typeKey string, attempt int64) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("type_key", typeKey),
		slog.Int64("attempt", attempt),
	)
}

// LogCreationStart logs the start of a construction attempt.
func LogCreationStart(logger *slog.Logger, typeKey string, attempt int64) {
	if logger == nil {
		return
	}
	logger.Debug("instance construction starting",
		slog.String("type_key", typeKey),
		slog.Int64("attempt", attempt),
	)
}

// LogCreationComplete logs successful instance construction.
func LogCreationComplete(logger *slog.Logger, typeKey, instanceID string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Info("instance constructed",
		slog.String("type_key", typeKey),
		slog.String("instance_id", instanceID),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogCreationError logs a failed construction attempt.
func LogCreationError(logger *slog.Logger, typeKey string, err error, durationMs float64, attempt int64) {
	if logger == nil {
		return
	}
	logger.Error("instance construction failed",
		slog.String("type_key", typeKey),
		slog.String("error", err.Error()),
		slog.Float64("duration_ms", durationMs),
		slog.Int64("attempt", attempt),
	)
}

// LogCacheHit logs a request served from an already-constructed instance.
func LogCacheHit(logger *slog.Logger, typeKey, instanceID string) {
	if logger == nil {
		return
	}
	logger.Debug("instance served from cache",
		slog.String("type_key", typeKey),
		slog.String("instance_id", instanceID),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time in milliseconds.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	durationMs := done()
func TimedOperation() func() float64 {
	start := time.Now()
	return func() float64 {
		return float64(time.Since(start).Milliseconds())
	}
}

package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records singleton registry metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordCreation records a construction attempt with its duration and
	// error status.
	RecordCreation(ctx context.Context, typeKey string, duration time.Duration, err error)

	// RecordHit records a request served from an already-constructed instance.
	RecordHit(ctx context.Context, typeKey string)

	// RecordWait records how long a caller blocked behind another caller's
	// construction attempt.
	RecordWait(ctx context.Context, typeKey string, waited time.Duration)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	creations       metric.Int64Counter
	creationLatency metric.Float64Histogram
	creationErrors  metric.Int64Counter
	hits            metric.Int64Counter
	waitLatency     metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics returns the default OTel metrics instance.
// Lazily initializes the metrics on first call.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

// newOtelMetrics creates a new OTel metrics instance.
func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("singleton")

	creations, err := meter.Int64Counter("singleton.creations",
		metric.WithDescription("Number of construction attempts"),
	)
	if err != nil {
		return nil, err
	}

	creationLatency, err := meter.Float64Histogram("singleton.creation.latency_ms",
		metric.WithDescription("Construction latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	creationErrors, err := meter.Int64Counter("singleton.creation.errors",
		metric.WithDescription("Number of failed construction attempts"),
	)
	if err != nil {
		return nil, err
	}

	hits, err := meter.Int64Counter("singleton.hits",
		metric.WithDescription("Number of requests served from cached instances"),
	)
	if err != nil {
		return nil, err
	}

	waitLatency, err := meter.Float64Histogram("singleton.wait_ms",
		metric.WithDescription("Time callers blocked behind another construction attempt"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		creations:       creations,
		creationLatency: creationLatency,
		creationErrors:  creationErrors,
		hits:            hits,
		waitLatency:     waitLatency,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordCreation records a construction attempt.
func (m *otelMetrics) RecordCreation(ctx context.Context, typeKey string, duration time.Duration, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("type_key", typeKey),
	}

	m.creations.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.creationLatency.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))

	if err != nil {
		m.creationErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}

// RecordHit records a cache hit.
func (m *otelMetrics) RecordHit(ctx context.Context, typeKey string) {
	m.hits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type_key", typeKey),
	))
}

// RecordWait records time spent blocked behind another construction attempt.
func (m *otelMetrics) RecordWait(ctx context.Context, typeKey string, waited time.Duration) {
	m.waitLatency.Record(ctx, float64(waited.Milliseconds()), metric.WithAttributes(
		attribute.String("type_key", typeKey),
	))
}

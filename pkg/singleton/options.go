package singleton

import (
	"log/slog"

	"github.com/randalmurphal/singleton/pkg/singleton/observability"
)

// config holds per-registry configuration.
type config struct {
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
}

// defaultConfig returns the default registry configuration:
// no logging, no-op metrics, no-op tracing.
func defaultConfig() config {
	return config{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures a Registry at creation time.
type Option func(*config)

// WithLogger enables structured logging of construction events.
// A nil logger disables logging (the default).
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
//	reg := singleton.New(singleton.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics via the global meter provider.
// Default: disabled (no-op recorder).
func WithMetrics(enabled bool) Option {
	return func(c *config) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry tracing via the global tracer provider.
// Default: disabled (no-op span manager).
func WithTracing(enabled bool) Option {
	return func(c *config) {
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}

// WithMetricsRecorder installs a custom metrics recorder.
// Panics if recorder is nil; use WithMetrics(false) to disable metrics.
func WithMetricsRecorder(recorder observability.MetricsRecorder) Option {
	if recorder == nil {
		panic("singleton: metrics recorder must not be nil")
	}
	return func(c *config) {
		c.metrics = recorder
	}
}

// WithSpanManager installs a custom span manager.
// Panics if spans is nil; use WithTracing(false) to disable tracing.
func WithSpanManager(spans observability.SpanManager) Option {
	if spans == nil {
		panic("singleton: span manager must not be nil")
	}
	return func(c *config) {
		c.spans = spans
	}
}

/*
Package singleton provides process-wide single-instance construction control.

# Overview

singleton guarantees that at most one live instance of a given type exists in
the process: lazily created on first request, returned unchanged on every
subsequent request. Construction arguments supplied after the first successful
call are accepted but ignored; only the first call's arguments shape the
instance. This mirrors the classic singleton contract, generalized to any
number of independent types sharing one registry.

The mechanism is a single Registry behind two thin integration styles:

  - Gate: an external wrapper around a type's real constructor. Callers hold
    the gate (or a wrapped constructor function) instead of the constructor.
  - Interceptor: an interception point built into the type's own construction
    path, declared once where the type is defined, so ordinary construction
    calls transparently receive the shared instance.

Both styles delegate to Registry.GetOrCreate and are observably identical.

# Basic Usage

Wrap a constructor with a gate:

	type Database struct {
	    dsn string
	}

	func openDatabase(ctx context.Context, dsn string) (*Database, error) {
	    return &Database{dsn: dsn}, nil
	}

	gate := singleton.NewGate(nil, openDatabase) // nil = singleton.Default

	a, _ := gate.Construct(ctx, "postgres://primary")
	b, _ := gate.Construct(ctx, "postgres://ignored") // arguments discarded

	singleton.Same(a, b) // true: one instance, first call's DSN

Or build interception into the type's package:

	var shared = singleton.EnableInterception(nil, func(ctx context.Context, size int) (*Pool, error) {
	    return &Pool{workers: make([]worker, size)}, nil
	})

	// NewPool looks like a plain constructor to callers.
	func NewPool(ctx context.Context, size int) (*Pool, error) {
	    return shared.New(ctx, size)
	}

The initializer never checks whether it has run before; the interceptor owns
that concern.

# Concurrency

Registry.GetOrCreate uses double-checked acquisition: a lock-free read path
once an instance is published, and a per-key creation lock before that. N
concurrent first callers for a type result in exactly one factory execution;
the losers block until the winner finishes and then observe its instance.
Distinct types never contend on each other's locks, and no lock spans more
than one type's construction.

# Failure

A factory error leaves the entry empty and surfaces as *ConstructionError to
the caller whose attempt ran the factory. Nothing is cached on failure, so a
later call retries construction. Callers that were blocked behind a failed
attempt retry it themselves rather than inheriting the stale error.

# Observability

Enable logging, metrics, and tracing on a registry:

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	reg := singleton.New(
	    singleton.WithLogger(logger),
	    singleton.WithMetrics(true),
	    singleton.WithTracing(true),
	)

Logs include structured fields: type_key, instance_id, duration_ms, attempt.
OpenTelemetry metrics: singleton.creations, singleton.creation.latency_ms, etc.
OpenTelemetry tracing: one singleton.create span per construction attempt.

# Thread Safety

  - Registry IS safe for concurrent use.
  - Gate and Interceptor ARE safe for concurrent use (immutable after creation).
  - Instances are shared by identity, never copied; their internal thread
    safety is the instance author's concern.

There is no destroy or reset: a registry entry that reaches Ready keeps its
instance for the remaining lifetime of the process.

# Subpackages

  - observability: Logging, metrics, and tracing helpers
*/
package singleton

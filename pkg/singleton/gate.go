package singleton

import "context"

// Constructor builds a new T from construction arguments.
// It is the raw, un-gated construction path for a type.
type Constructor[A, T any] func(ctx context.Context, args A) (T, error)

// Gate wraps a type's real constructor with registry consultation: the first
// Construct call runs the constructor and caches the result, every later call
// returns the cached instance and discards its arguments.
//
// The gate's key is derived from T, so creating several gates for the same
// type is idempotent: they share one registry entry, never two.
//
// A Gate is safe for concurrent use.
type Gate[A, T any] struct {
	reg  *Registry
	key  Key
	ctor Constructor[A, T]
}

// NewGate wraps ctor with a construction gate backed by r.
// A nil registry means the process-wide Default registry.
// Panics if ctor is nil.
func NewGate[A, T any](r *Registry, ctor Constructor[A, T]) *Gate[A, T] {
	if ctor == nil {
		panic("singleton: constructor must not be nil")
	}
	if r == nil {
		r = Default
	}
	return &Gate[A, T]{
		reg:  r,
		key:  KeyOf[T](),
		ctor: ctor,
	}
}

// Construct returns the shared instance of T, building it with the wrapped
// constructor on first call. Arguments on later calls are accepted but have
// no effect on the instance.
func (g *Gate[A, T]) Construct(ctx context.Context, args A) (T, error) {
	return GetOrCreate(ctx, g.reg, func(ctx context.Context) (T, error) {
		return g.ctor(ctx, args)
	})
}

// Key returns the registry key the gate resolves to.
func (g *Gate[A, T]) Key() Key {
	return g.key
}

// Instantiated reports whether the gated type has been constructed.
func (g *Gate[A, T]) Instantiated() bool {
	return g.reg.Instantiated(g.key)
}

// WrapConstructor returns a drop-in replacement for ctor with the identical
// signature. The wrapped constructor delegates to a Gate: one instance per
// type, first call's arguments win.
//
// Example:
//
//	open := singleton.WrapConstructor(nil, openDatabase)
//	db, err := open(ctx, "postgres://primary") // constructs
//	db, err = open(ctx, "postgres://ignored")  // cached, args discarded
func WrapConstructor[A, T any](r *Registry, ctor Constructor[A, T]) Constructor[A, T] {
	g := NewGate(r, ctor)
	return g.Construct
}

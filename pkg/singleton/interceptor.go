package singleton

import "context"

// Initializer builds one instance of T from construction arguments.
// It carries no singleton logic: it never checks whether it has run before,
// and it is never told. Interception is the Interceptor's concern.
type Initializer[A, T any] func(ctx context.Context, args A) (T, error)

// Interceptor is the integration point a type builds into its own
// construction path. Where a Gate is applied from the outside by callers, an
// Interceptor is declared once in the type's defining package, and the type's
// exported constructor delegates to it. Call sites keep ordinary construction
// syntax and transparently receive the shared instance.
//
// Many types may opt into interception on one registry simultaneously; each
// gets its own key and independent lifecycle.
//
// An Interceptor is safe for concurrent use.
type Interceptor[A, T any] struct {
	reg  *Registry
	key  Key
	init Initializer[A, T]
}

// EnableInterception declares T as intercepted on r and returns the
// interceptor the type's constructor should delegate to. Call it once, at
// type-definition time (typically a package-level var). The type's entry is
// materialized immediately, empty, so it shows up in registry snapshots
// before first construction.
//
// A nil registry means the process-wide Default registry.
// Panics if init is nil.
//
// Example:
//
//	var shared = singleton.EnableInterception(nil, func(ctx context.Context, size int) (*Pool, error) {
//	    return newPool(size), nil
//	})
//
//	func NewPool(ctx context.Context, size int) (*Pool, error) {
//	    return shared.New(ctx, size)
//	}
func EnableInterception[A, T any](r *Registry, init Initializer[A, T]) *Interceptor[A, T] {
	if init == nil {
		panic("singleton: initializer must not be nil")
	}
	if r == nil {
		r = Default
	}
	ic := &Interceptor[A, T]{
		reg:  r,
		key:  KeyOf[T](),
		init: init,
	}
	r.declare(ic.key)
	return ic
}

// New returns the shared instance of T, running the initializer on first
// call. Arguments on later calls are accepted but have no effect on the
// instance.
func (ic *Interceptor[A, T]) New(ctx context.Context, args A) (T, error) {
	return GetOrCreate(ctx, ic.reg, func(ctx context.Context) (T, error) {
		return ic.init(ctx, args)
	})
}

// Key returns the registry key the interceptor resolves to.
func (ic *Interceptor[A, T]) Key() Key {
	return ic.key
}

// Instantiated reports whether the intercepted type has been constructed.
func (ic *Interceptor[A, T]) Instantiated() bool {
	return ic.reg.Instantiated(ic.key)
}

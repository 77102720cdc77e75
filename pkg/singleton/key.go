package singleton

import "reflect"

// Key identifies a constructible type within a Registry.
//
// Keys are comparable and derived from the Go type itself, so every call
// site that names the same type resolves to the same Key. This is what makes
// wrapping a type twice idempotent: both wrappers share one registry entry.
type Key struct {
	t reflect.Type
}

// KeyOf returns the Key for type T.
//
// Example:
//
//	key := singleton.KeyOf[*Database]()
func KeyOf[T any]() Key {
	return Key{t: reflect.TypeOf((*T)(nil)).Elem()}
}

// KeyFor returns the Key for the dynamic type of v.
// Returns the zero Key if v is nil.
func KeyFor(v any) Key {
	if v == nil {
		return Key{}
	}
	return Key{t: reflect.TypeOf(v)}
}

// IsZero reports whether the key does not identify any type.
func (k Key) IsZero() bool {
	return k.t == nil
}

// Type returns the underlying reflect.Type, or nil for the zero Key.
func (k Key) Type() reflect.Type {
	return k.t
}

// String returns a human-readable representation of the key,
// e.g. "*pkg.Database" or "pkg.Cache".
func (k Key) String() string {
	if k.t == nil {
		return "<none>"
	}
	return k.t.String()
}

package singleton

import "reflect"

// Same reports whether a and b refer to the same underlying instance.
//
// For reference kinds (pointers, maps, channels, functions, slices) this is
// true identity: both values must point at the same object. For value kinds,
// identity is not observable after assignment, so Same falls back to equality
// when the values are comparable and reports false otherwise.
//
// Instances managed by a Registry are usually pointers, where Same(a, b)
// matches the intuitive "a and b are the one shared instance".
func Same(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	va := reflect.ValueOf(a)
	vb := reflect.ValueOf(b)
	if va.Type() != vb.Type() {
		return false
	}

	switch va.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return va.Pointer() == vb.Pointer()
	case reflect.Slice:
		// Same backing array, same window.
		return va.Pointer() == vb.Pointer() && va.Len() == vb.Len() && va.Cap() == vb.Cap()
	}

	if !va.Type().Comparable() {
		return false
	}
	return a == b
}

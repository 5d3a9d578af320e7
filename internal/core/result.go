package core

import "encoding/json"

// Result holds either a value or nothing. Lookups that can legitimately find
// no data return a Result instead of a nil pointer so callers must handle the
// empty branch.
type Result[T any] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// None returns an empty result.
func None[T any]() Result[T] {
	return Result[T]{}
}

// Get returns the value and whether it is present.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// OK reports whether a value is present.
func (r Result[T]) OK() bool {
	return r.ok
}

// OrElse returns the value, or fallback when empty.
func (r Result[T]) OrElse(fallback T) T {
	if r.ok {
		return r.value
	}
	return fallback
}

// MarshalJSON encodes the value, or null when empty.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return []byte("null"), nil
	}
	return json.Marshal(r.value)
}

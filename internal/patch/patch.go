// Package patch models partial updates where every field is either kept or set.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field is Keep (zero value) or Set(value). JSON null and absent keys both decode to Keep.
type Field[T any] struct {
	set   bool
	value T
}

func Keep[T any]() Field[T] {
	return Field[T]{}
}

func Set[T any](v T) Field[T] {
	return Field[T]{set: true, value: v}
}

func (f Field[T]) IsSet() bool { return f.set }

// Value returns the value and whether it was set.
func (f Field[T]) Value() (T, bool) { return f.value, f.set }

// ApplyTo overwrites *dst when the field is set.
func (f Field[T]) ApplyTo(dst *T) {
	if f.set {
		*dst = f.value
	}
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = Keep[T]()
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Set(v)
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.set {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}

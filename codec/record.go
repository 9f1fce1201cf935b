package codec

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"structcodec/node"
)

// FieldSpec declares one field of record type T.
type FieldSpec[T any] struct {
	field node.Field
}

// Field declares a record field named name whose storage is returned by at.
// at must return a non-nil pointer into the record it is given.
func Field[T, F any](name string, at func(*T) *F) FieldSpec[T] {
	var slot func(reflect.Value) reflect.Value
	if at != nil {
		slot = func(v reflect.Value) reflect.Value {
			return reflect.ValueOf(at(v.Addr().Interface().(*T))).Elem()
		}
	}

	return FieldSpec[T]{field: node.Field{
		Name:      name,
		Type:      reflect.TypeFor[F](),
		Slot:      slot,
		NeedsAddr: true,
	}}
}

// RegisterRecord replaces the reflection-derived fields of T with an explicit
// list. Fields are encoded in the given order.
func RegisterRecord[T any](r *Registry, fields ...FieldSpec[T]) error {
	t := reflect.TypeFor[T]()

	descs := make([]node.Field, len(fields))
	for i, f := range fields {
		if f.field.Slot == nil || f.field.Name == "" {
			return fmt.Errorf("%w: record %s: field %d has no name or accessor", ErrInvalidDescriptor, t, i)
		}

		descs[i] = f.field
		descs[i].Index = i
	}

	layout, err := newRecordLayout(descs)
	if err != nil {
		return fmt.Errorf("%w: record %s: %w", ErrInvalidDescriptor, t, err)
	}

	r.mu.Lock()
	r.records[t] = layout
	r.invalidateLocked()
	r.mu.Unlock()

	r.logger.Debug("registered record", zap.Stringer("type", t), zap.Strings("fields", layout.keys.Names()))

	return nil
}

// MustRegisterRecord is like RegisterRecord but panics on error.
func MustRegisterRecord[T any](r *Registry, fields ...FieldSpec[T]) {
	if err := RegisterRecord(r, fields...); err != nil {
		panic(err)
	}
}

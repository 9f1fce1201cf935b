package node

import (
	"reflect"

	"structcodec/primitive"
)

// TupleLayout marks a struct as a fixed tuple when embedded: its remaining
// exported fields become positional slots instead of named record fields.
//
//	type Inner struct {
//		node.TupleLayout
//		Label string
//		Tags  []string
//	}
type TupleLayout struct{}

var tupleLayoutType = reflect.TypeFor[TupleLayout]()

// Dispatch classifies t into the shape whose traversal handles it. Interfaces
// classify as ShapeUnion; whether a union is actually usable depends on its
// alternatives being registered.
func Dispatch(t reflect.Type) ShapeEnum {
	if t == nil {
		return ShapeUnknown
	}

	if primitive.FromReflectType(t) != 0 {
		return ShapeScalar
	}

	switch t.Kind() {
	case reflect.Ptr:
		if t.Elem().Kind() == reflect.Ptr {
			// **T has no unambiguous null representation
			return ShapeUnknown
		}

		return ShapeOptional

	case reflect.Interface:
		return ShapeUnion

	case reflect.Slice:
		return ShapeSequence

	case reflect.Array:
		return ShapeTuple

	case reflect.Map:
		if primitive.FromReflectType(t.Key()) == primitive.KindString {
			return ShapeMap
		}

		return ShapeUnknown

	case reflect.Struct:
		if IsTupleStruct(t) {
			return ShapeTuple
		}

		return ShapeRecord
	}

	return ShapeUnknown
}

// IsTupleStruct reports whether t is a struct embedding TupleLayout.
func IsTupleStruct(t reflect.Type) bool {
	if t.Kind() != reflect.Struct {
		return false
	}

	for i := range t.NumField() {
		f := t.Field(i)
		if f.Anonymous && f.Type == tupleLayoutType {
			return true
		}
	}

	return false
}

// base strips every pointer level from t.
func base(t reflect.Type) reflect.Type {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	return t
}

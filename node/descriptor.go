package node

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

var (
	ErrNotAStruct     = errors.New("type is not a struct")
	ErrNotAnArray     = errors.New("type is not an array or tuple struct")
	ErrDuplicateField = errors.New("duplicate field name")
)

// Field describes one member of a record or one slot of a tuple.
type Field struct {
	Name  string
	Index int // ordinal in traversal order
	Type  reflect.Type
	// Slot returns the storage of the field given the containing value. The
	// result is settable whenever the containing value is addressable.
	Slot func(reflect.Value) reflect.Value
	// NeedsAddr is set when Slot requires an addressable containing value.
	NeedsAddr bool
}

// Alternative describes one member of a tagged union.
type Alternative struct {
	Name  string
	Index int
	Type  reflect.Type
}

// AlternativeName returns the default tag name of a union alternative: the
// name of the type, looking through pointers.
func AlternativeName(t reflect.Type) string {
	return base(t).Name()
}

// TagName returns the name a field is given by its `codec` tag, then its
// `json` tag. tagged is false when neither tag names the field. A bare "-"
// skips the field, while "-," names it "-".
func TagName(tag reflect.StructTag) (name string, skip, tagged bool) {
	for _, key := range []string{"codec", "json"} {
		value, ok := tag.Lookup(key)
		if !ok {
			continue
		}

		if value == "-" {
			return "", true, true
		}

		if name, _, _ = strings.Cut(value, ","); name != "" {
			return name, false, true
		}
	}

	return "", false, false
}

// FieldName resolves the wire name of a struct field from its tags, falling
// back to the Go name. The second result is false when the field is skipped
// with "-".
func FieldName(f reflect.StructField) (string, bool) {
	name, skip, tagged := TagName(f.Tag)

	switch {
	case skip:
		return "", false
	case tagged:
		return name, true
	default:
		return f.Name, true
	}
}

// RecordFields derives the field descriptors of struct type t by reflection.
// Exported fields are kept in declaration order. Embedded structs whose tags
// give no name are flattened into the parent; a named or "-" tag makes them an
// ordinary field.
func RecordFields(t reflect.Type) ([]Field, error) {
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s", ErrNotAStruct, t)
	}

	var fields []Field
	if err := collectFields(t, nil, &fields); err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(fields))
	for i := range fields {
		if _, dup := seen[fields[i].Name]; dup {
			return nil, fmt.Errorf("%w %q in %s", ErrDuplicateField, fields[i].Name, t)
		}

		seen[fields[i].Name] = struct{}{}
		fields[i].Index = i
	}

	return fields, nil
}

func collectFields(t reflect.Type, prefix []int, out *[]Field) error {
	for i := range t.NumField() {
		sf := t.Field(i)

		if sf.Type == tupleLayoutType {
			continue
		}

		index := append(append([]int(nil), prefix...), i)

		if sf.Anonymous && sf.Type.Kind() == reflect.Struct {
			if _, _, tagged := TagName(sf.Tag); !tagged {
				if err := collectFields(sf.Type, index, out); err != nil {
					return err
				}

				continue
			}
		}

		if !sf.IsExported() {
			continue
		}

		name, ok := FieldName(sf)
		if !ok {
			continue
		}

		*out = append(*out, Field{
			Name: name,
			Type: sf.Type,
			Slot: slotByIndex(index),
		})
	}

	return nil
}

func slotByIndex(index []int) func(reflect.Value) reflect.Value {
	if len(index) == 1 {
		i := index[0]
		return func(v reflect.Value) reflect.Value { return v.Field(i) }
	}

	return func(v reflect.Value) reflect.Value { return v.FieldByIndex(index) }
}

// TupleSlots returns the positional slots of an array type or a struct
// embedding TupleLayout. Array slots are named by position ("0", "1", ...).
func TupleSlots(t reflect.Type) ([]Field, error) {
	switch {
	case t.Kind() == reflect.Array:
		slots := make([]Field, t.Len())
		for i := range slots {
			slots[i] = Field{
				Name:  strconv.Itoa(i),
				Index: i,
				Type:  t.Elem(),
				Slot:  func(v reflect.Value) reflect.Value { return v.Index(i) },
			}
		}

		return slots, nil

	case IsTupleStruct(t):
		var slots []Field
		for i := range t.NumField() {
			sf := t.Field(i)
			if sf.Type == tupleLayoutType || !sf.IsExported() {
				continue
			}

			slots = append(slots, Field{
				Name:  sf.Name,
				Index: len(slots),
				Type:  sf.Type,
				Slot:  slotByIndex([]int{i}),
			})
		}

		return slots, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrNotAnArray, t)
	}
}

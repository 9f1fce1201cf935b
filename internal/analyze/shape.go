package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"reflect"

	"structcodec/node"
	"structcodec/primitive"
)

// ErrUnsupportedType reports a type the codec engine has no traversal for.
var ErrUnsupportedType = errors.New("unsupported type")

var (
	nullID        = reflectID(reflect.TypeFor[primitive.Null]())
	tupleLayoutID = reflectID(reflect.TypeFor[node.TupleLayout]())
)

func reflectID(t reflect.Type) TypeID {
	return TypeID{PkgPath: t.PkgPath(), Name: t.Name()}
}

// ScalarKind returns the scalar kind of t, or zero when t is not a scalar.
// Named types are classified by their underlying basic type.
func ScalarKind(t types.Type) primitive.KindEnum {
	t = types.Unalias(t)

	if named, ok := t.(*types.Named); ok && idOf(named.Obj()) == nullID {
		return primitive.KindNull
	}

	basic, ok := t.Underlying().(*types.Basic)
	if !ok {
		return 0
	}

	switch basic.Kind() {
	case types.Bool:
		return primitive.KindBool
	case types.Int:
		return primitive.KindInt
	case types.Int8:
		return primitive.KindInt8
	case types.Int16:
		return primitive.KindInt16
	case types.Int32:
		return primitive.KindInt32
	case types.Int64:
		return primitive.KindInt64
	case types.Uint:
		return primitive.KindUint
	case types.Uint8:
		return primitive.KindUint8
	case types.Uint16:
		return primitive.KindUint16
	case types.Uint32:
		return primitive.KindUint32
	case types.Uint64:
		return primitive.KindUint64
	case types.Float32:
		return primitive.KindFloat32
	case types.Float64:
		return primitive.KindFloat64
	case types.String:
		return primitive.KindString
	default:
		return 0
	}
}

// IsTupleStruct reports whether st embeds node.TupleLayout.
func IsTupleStruct(st *types.Struct) bool {
	for i := range st.NumFields() {
		f := st.Field(i)
		if !f.Embedded() {
			continue
		}

		if named, ok := types.Unalias(f.Type()).(*types.Named); ok && idOf(named.Obj()) == tupleLayoutID {
			return true
		}
	}

	return false
}

// Classify returns the traversal shape of t. Element, key and slot types are
// checked as well; named structs and interfaces are not entered since they
// are classified where they are declared.
func Classify(t types.Type) (node.ShapeEnum, error) {
	c := &classifier{visiting: make(map[*types.Named]struct{})}
	return c.classify(t)
}

type classifier struct {
	visiting map[*types.Named]struct{}
}

func (c *classifier) classify(t types.Type) (node.ShapeEnum, error) {
	t = types.Unalias(t)

	if ScalarKind(t) != 0 {
		return node.ShapeScalar, nil
	}

	if named, ok := t.(*types.Named); ok {
		if _, seen := c.visiting[named]; seen {
			return c.shallow(named.Underlying()), nil
		}

		c.visiting[named] = struct{}{}
		defer delete(c.visiting, named)

		switch u := named.Underlying().(type) {
		case *types.Struct:
			if IsTupleStruct(u) {
				return checked(node.ShapeTuple, c.tupleSlots(u))
			}

			return node.ShapeRecord, nil

		case *types.Interface:
			if u.Empty() {
				return node.ShapeUnknown, fmt.Errorf("%w: empty interface %s", ErrUnsupportedType, t)
			}

			return node.ShapeUnion, nil
		}

		return c.classify(named.Underlying())
	}

	switch u := t.(type) {
	case *types.Pointer:
		if _, ok := types.Unalias(u.Elem()).Underlying().(*types.Pointer); ok {
			return node.ShapeUnknown, fmt.Errorf("%w: %s has no unambiguous null", ErrUnsupportedType, t)
		}

		return checked(node.ShapeOptional, c.element(t, u.Elem()))

	case *types.Slice:
		return checked(node.ShapeSequence, c.element(t, u.Elem()))

	case *types.Array:
		return checked(node.ShapeTuple, c.element(t, u.Elem()))

	case *types.Map:
		if ScalarKind(u.Key()) != primitive.KindString {
			return node.ShapeUnknown, fmt.Errorf("%w: %s has a non-string key", ErrUnsupportedType, t)
		}

		return checked(node.ShapeMap, c.element(t, u.Elem()))

	case *types.Struct:
		if IsTupleStruct(u) {
			return checked(node.ShapeTuple, c.tupleSlots(u))
		}

		return node.ShapeRecord, nil
	}

	return node.ShapeUnknown, fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

func checked(shape node.ShapeEnum, err error) (node.ShapeEnum, error) {
	if err != nil {
		return node.ShapeUnknown, err
	}

	return shape, nil
}

func (c *classifier) element(outer, elem types.Type) error {
	if _, err := c.classify(elem); err != nil {
		return fmt.Errorf("element of %s: %w", outer, err)
	}

	return nil
}

func (c *classifier) tupleSlots(st *types.Struct) error {
	for i := range st.NumFields() {
		f := st.Field(i)
		if f.Embedded() || !f.Exported() {
			continue
		}

		if _, err := c.classify(f.Type()); err != nil {
			return fmt.Errorf("tuple slot %s: %w", f.Name(), err)
		}
	}

	return nil
}

// shallow classifies a type already being visited without descending.
func (c *classifier) shallow(u types.Type) node.ShapeEnum {
	switch u := u.(type) {
	case *types.Pointer:
		return node.ShapeOptional
	case *types.Slice:
		return node.ShapeSequence
	case *types.Array:
		return node.ShapeTuple
	case *types.Map:
		return node.ShapeMap
	case *types.Interface:
		return node.ShapeUnion
	case *types.Struct:
		if IsTupleStruct(u) {
			return node.ShapeTuple
		}

		return node.ShapeRecord
	default:
		return node.ShapeUnknown
	}
}

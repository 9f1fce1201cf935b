package codec

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"structcodec/node"
	"structcodec/primitive"
	"structcodec/wire"
)

func (c *compiler) buildEncoder(p *typePlan) error {
	t := p.typ

	layout, isRecord, err := c.recordFor(p)
	if err != nil {
		return err
	}

	if isRecord {
		fields, err := c.recordChildren(layout)
		if err != nil {
			return err
		}

		p.encode = recordEncoder(t, layout, fields)

		return nil
	}

	switch p.shape {
	case node.ShapeScalar:
		p.encode = scalarEncoder(t, primitive.FromReflectType(t))

	case node.ShapeOptional:
		elem, err := c.compile(t.Elem())
		if err != nil {
			return fmt.Errorf("pointee: %w", err)
		}

		p.encode = optionalEncoder(elem)

	case node.ShapeSequence:
		elem, err := c.compile(t.Elem())
		if err != nil {
			return fmt.Errorf("element: %w", err)
		}

		p.encode = sequenceEncoder(t, elem)

	case node.ShapeTuple:
		slots, plans, err := c.tupleChildren(t)
		if err != nil {
			return err
		}

		p.encode = tupleEncoder(t, slots, plans)

	case node.ShapeMap:
		elem, err := c.compile(t.Elem())
		if err != nil {
			return fmt.Errorf("map value: %w", err)
		}

		p.encode = mapEncoder(t, elem)

	case node.ShapeUnion:
		u, alts, err := c.unionFor(t)
		if err != nil {
			return err
		}

		p.encode = unionEncoder(t, u, alts)

	default:
		return unsupported(t)
	}

	return nil
}

func scalarEncoder(t reflect.Type, kind primitive.KindEnum) encodeFunc {
	switch {
	case kind == primitive.KindNull:
		return func(es *encodeState, s wire.Sink, _ reflect.Value) error {
			return es.sinkError(s.WriteNull(), t)
		}
	case kind == primitive.KindBool:
		return func(es *encodeState, s wire.Sink, v reflect.Value) error {
			return es.sinkError(s.WriteBool(v.Bool()), t)
		}
	case kind.IsSigned():
		return func(es *encodeState, s wire.Sink, v reflect.Value) error {
			return es.sinkError(s.WriteInt(v.Int()), t)
		}
	case kind.IsUnsigned():
		return func(es *encodeState, s wire.Sink, v reflect.Value) error {
			return es.sinkError(s.WriteUint(v.Uint()), t)
		}
	case kind.IsFloat():
		bits := kind.Bits()

		return func(es *encodeState, s wire.Sink, v reflect.Value) error {
			return es.sinkError(s.WriteFloat(v.Float(), bits), t)
		}
	default:
		return func(es *encodeState, s wire.Sink, v reflect.Value) error {
			return es.sinkError(s.WriteString(v.String()), t)
		}
	}
}

func optionalEncoder(elem *typePlan) encodeFunc {
	return func(es *encodeState, s wire.Sink, v reflect.Value) error {
		if v.IsNil() {
			return es.sinkError(s.WriteNull(), v.Type())
		}

		return elem.encode(es, s, v.Elem())
	}
}

func sequenceEncoder(t reflect.Type, elem *typePlan) encodeFunc {
	return func(es *encodeState, s wire.Sink, v reflect.Value) error {
		if !es.descend() {
			return es.fail(ErrDepthExceeded, t, "")
		}
		defer es.ascend()

		arr, err := s.BeginArray()
		if err != nil {
			return es.sinkError(err, t)
		}

		for i := range v.Len() {
			es.path.pushIndex(i)
			err := elem.encode(es, arr, v.Index(i))
			es.path.pop()

			if err != nil {
				return err
			}
		}

		return es.sinkError(arr.End(), t)
	}
}

func tupleEncoder(t reflect.Type, slots []node.Field, plans []*typePlan) encodeFunc {
	return func(es *encodeState, s wire.Sink, v reflect.Value) error {
		if !es.descend() {
			return es.fail(ErrDepthExceeded, t, "")
		}
		defer es.ascend()

		arr, err := s.BeginArray()
		if err != nil {
			return es.sinkError(err, t)
		}

		for i, slot := range slots {
			es.path.pushIndex(i)
			err := plans[i].encode(es, arr, slot.Slot(v))
			es.path.pop()

			if err != nil {
				return err
			}
		}

		return es.sinkError(arr.End(), t)
	}
}

func recordEncoder(t reflect.Type, layout *recordLayout, plans []*typePlan) encodeFunc {
	return func(es *encodeState, s wire.Sink, v reflect.Value) error {
		if !es.descend() {
			return es.fail(ErrDepthExceeded, t, "")
		}
		defer es.ascend()

		if layout.needsAddr && !v.CanAddr() {
			tmp := reflect.New(t).Elem()
			tmp.Set(v)
			v = tmp
		}

		obj, err := s.BeginObject()
		if err != nil {
			return es.sinkError(err, t)
		}

		for i, f := range layout.fields {
			if err := obj.WriteKey(f.Name); err != nil {
				return es.sinkError(err, t)
			}

			es.path.pushKey(f.Name)
			err := plans[i].encode(es, obj, f.Slot(v))
			es.path.pop()

			if err != nil {
				return err
			}
		}

		return es.sinkError(obj.End(), t)
	}
}

func mapEncoder(t reflect.Type, elem *typePlan) encodeFunc {
	return func(es *encodeState, s wire.Sink, v reflect.Value) error {
		if !es.descend() {
			return es.fail(ErrDepthExceeded, t, "")
		}
		defer es.ascend()

		keys := v.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			return cmp.Compare(a.String(), b.String())
		})

		obj, err := s.BeginObject()
		if err != nil {
			return es.sinkError(err, t)
		}

		for _, k := range keys {
			name := k.String()
			if err := obj.WriteKey(name); err != nil {
				return es.sinkError(err, t)
			}

			es.path.pushKey(name)
			err := elem.encode(es, obj, v.MapIndex(k))
			es.path.pop()

			if err != nil {
				return err
			}
		}

		return es.sinkError(obj.End(), t)
	}
}

func unionEncoder(t reflect.Type, u *unionLayout, plans []*typePlan) encodeFunc {
	return func(es *encodeState, s wire.Sink, v reflect.Value) error {
		if v.IsNil() {
			return es.fail(ErrNilUnion, t, "")
		}

		dyn := v.Elem()

		idx, ok := u.byType[dyn.Type()]
		if !ok {
			return es.fail(ErrUnknownAlternative, t, fmt.Sprintf("%s is not a registered alternative", dyn.Type()))
		}

		if !es.descend() {
			return es.fail(ErrDepthExceeded, t, "")
		}
		defer es.ascend()

		obj, err := s.BeginObject()
		if err != nil {
			return es.sinkError(err, t)
		}

		name := u.alts[idx].Name
		if err := obj.WriteKey(name); err != nil {
			return es.sinkError(err, t)
		}

		es.path.pushKey(name)
		err = plans[idx].encode(es, obj, dyn)
		es.path.pop()

		if err != nil {
			return err
		}

		return es.sinkError(obj.End(), t)
	}
}

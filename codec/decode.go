package codec

import (
	"fmt"
	"reflect"

	"github.com/bits-and-blooms/bitset"

	"structcodec/internal/match"
	"structcodec/node"
	"structcodec/primitive"
	"structcodec/wire"
)

func (c *compiler) buildDecoder(p *typePlan) error {
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

		p.decode = recordDecoder(t, layout, fields)

		return nil
	}

	switch p.shape {
	case node.ShapeScalar:
		p.decode = scalarDecoder(t, primitive.FromReflectType(t))

	case node.ShapeOptional:
		elem, err := c.compile(t.Elem())
		if err != nil {
			return fmt.Errorf("pointee: %w", err)
		}

		p.decode = optionalDecoder(t, elem)

	case node.ShapeSequence:
		elem, err := c.compile(t.Elem())
		if err != nil {
			return fmt.Errorf("element: %w", err)
		}

		p.decode = sequenceDecoder(t, elem)

	case node.ShapeTuple:
		slots, plans, err := c.tupleChildren(t)
		if err != nil {
			return err
		}

		p.decode = tupleDecoder(t, slots, plans)

	case node.ShapeMap:
		elem, err := c.compile(t.Elem())
		if err != nil {
			return fmt.Errorf("map value: %w", err)
		}

		p.decode = mapDecoder(t, elem)

	case node.ShapeUnion:
		u, alts, err := c.unionFor(t)
		if err != nil {
			return err
		}

		p.decode = unionDecoder(t, u, alts)

	default:
		return unsupported(t)
	}

	return nil
}

// readScalar fetches the next token of the given kind, turning an absent
// token into ErrUnexpectedShape.
func (ds *decodeState) readScalar(t reflect.Type, src wire.Source, kind wire.TokenKind) (wire.Token, error) {
	tok, ok, err := src.ReadScalar(kind)
	if err != nil {
		return "", ds.sourceError(err, t, src)
	}

	if !ok {
		return "", ds.fail(ErrUnexpectedShape, t, src, "expected scalar of kind "+kind.String())
	}

	return tok, nil
}

func (ds *decodeState) parseError(err error, t reflect.Type, src wire.Source, tok wire.Token, kind wire.TokenKind) error {
	e := ds.fail(ErrParse, t, src, fmt.Sprintf("cannot parse %q as %s", tok, kind))
	e.Err = err

	return e
}

func scalarDecoder(t reflect.Type, kind primitive.KindEnum) decodeFunc {
	tk := kind.Token()

	switch {
	case kind == primitive.KindNull:
		return func(ds *decodeState, src wire.Source, _ reflect.Value) error {
			_, err := ds.readScalar(t, src, tk)
			return err
		}
	case kind == primitive.KindBool:
		return func(ds *decodeState, src wire.Source, v reflect.Value) error {
			tok, err := ds.readScalar(t, src, tk)
			if err != nil {
				return err
			}

			b, err := src.Parser().ParseBool(tok)
			if err != nil {
				return ds.parseError(err, t, src, tok, tk)
			}

			v.SetBool(b)

			return nil
		}
	case kind.IsSigned():
		bits := kind.Bits()

		return func(ds *decodeState, src wire.Source, v reflect.Value) error {
			tok, err := ds.readScalar(t, src, tk)
			if err != nil {
				return err
			}

			n, err := src.Parser().ParseInt(tok, bits)
			if err != nil {
				return ds.parseError(err, t, src, tok, tk)
			}

			v.SetInt(n)

			return nil
		}
	case kind.IsUnsigned():
		bits := kind.Bits()

		return func(ds *decodeState, src wire.Source, v reflect.Value) error {
			tok, err := ds.readScalar(t, src, tk)
			if err != nil {
				return err
			}

			n, err := src.Parser().ParseUint(tok, bits)
			if err != nil {
				return ds.parseError(err, t, src, tok, tk)
			}

			v.SetUint(n)

			return nil
		}
	case kind.IsFloat():
		bits := kind.Bits()

		return func(ds *decodeState, src wire.Source, v reflect.Value) error {
			tok, err := ds.readScalar(t, src, tk)
			if err != nil {
				return err
			}

			f, err := src.Parser().ParseFloat(tok, bits)
			if err != nil {
				return ds.parseError(err, t, src, tok, tk)
			}

			v.SetFloat(f)

			return nil
		}
	default:
		return func(ds *decodeState, src wire.Source, v reflect.Value) error {
			tok, err := ds.readScalar(t, src, tk)
			if err != nil {
				return err
			}

			s, err := src.Parser().ParseString(tok)
			if err != nil {
				return ds.parseError(err, t, src, tok, tk)
			}

			v.SetString(s)

			return nil
		}
	}
}

func optionalDecoder(t reflect.Type, elem *typePlan) decodeFunc {
	return func(ds *decodeState, src wire.Source, v reflect.Value) error {
		_, isNull, err := src.ReadScalar(wire.TokenNull)
		if err != nil {
			return ds.sourceError(err, t, src)
		}

		if isNull {
			v.SetZero()
			return nil
		}

		if v.IsNil() {
			v.Set(reflect.New(t.Elem()))
		}

		return elem.decode(ds, src, v.Elem())
	}
}

func (ds *decodeState) beginArray(t reflect.Type, src wire.Source) (wire.ArraySource, error) {
	arr, ok, err := src.BeginArray()
	if err != nil {
		return nil, ds.sourceError(err, t, src)
	}

	if !ok {
		return nil, ds.fail(ErrUnexpectedShape, t, src, "expected array")
	}

	if !ds.descend() {
		return nil, ds.fail(ErrDepthExceeded, t, src, "")
	}

	return arr, nil
}

func (ds *decodeState) beginObject(t reflect.Type, src wire.Source) (wire.ObjectSource, error) {
	obj, ok, err := src.BeginObject()
	if err != nil {
		return nil, ds.sourceError(err, t, src)
	}

	if !ok {
		return nil, ds.fail(ErrUnexpectedShape, t, src, "expected object")
	}

	if !ds.descend() {
		return nil, ds.fail(ErrDepthExceeded, t, src, "")
	}

	return obj, nil
}

// readKey reads the next object key and resolves it to a string.
func (ds *decodeState) readKey(t reflect.Type, obj wire.ObjectSource) (string, error) {
	tok, ok, err := obj.ReadKey()
	if err != nil {
		return "", ds.sourceError(err, t, obj)
	}

	if !ok {
		return "", ds.fail(ErrUnexpectedShape, t, obj, "expected key")
	}

	name, err := obj.Parser().ParseString(tok)
	if err != nil {
		return "", ds.parseError(err, t, obj, tok, wire.TokenString)
	}

	return name, nil
}

// scope is an open array or object.
type scope interface {
	wire.Source
	ReadEnd() (bool, error)
}

func (ds *decodeState) readEnd(t reflect.Type, src scope) (bool, error) {
	end, err := src.ReadEnd()
	if err != nil {
		return false, ds.sourceError(err, t, src)
	}

	return end, nil
}

func sequenceDecoder(t reflect.Type, elem *typePlan) decodeFunc {
	return func(ds *decodeState, src wire.Source, v reflect.Value) error {
		arr, err := ds.beginArray(t, src)
		if err != nil {
			return err
		}
		defer ds.ascend()

		out := reflect.MakeSlice(t, 0, 0)

		for i := 0; ; i++ {
			end, err := ds.readEnd(t, arr)
			if err != nil {
				return err
			}

			if end {
				break
			}

			out = reflect.Append(out, reflect.Zero(t.Elem()))

			ds.path.pushIndex(i)
			err = elem.decode(ds, arr, out.Index(i))
			ds.path.pop()

			if err != nil {
				return err
			}
		}

		v.Set(out)

		return nil
	}
}

func tupleDecoder(t reflect.Type, slots []node.Field, plans []*typePlan) decodeFunc {
	return func(ds *decodeState, src wire.Source, v reflect.Value) error {
		arr, err := ds.beginArray(t, src)
		if err != nil {
			return err
		}
		defer ds.ascend()

		for i, slot := range slots {
			end, err := ds.readEnd(t, arr)
			if err != nil {
				return err
			}

			if end {
				return ds.fail(ErrUnexpectedShape, t, arr,
					fmt.Sprintf("expected %d elements, found %d", len(slots), i))
			}

			ds.path.pushIndex(i)
			err = plans[i].decode(ds, arr, slot.Slot(v))
			ds.path.pop()

			if err != nil {
				return err
			}
		}

		end, err := ds.readEnd(t, arr)
		if err != nil {
			return err
		}

		if !end {
			return ds.fail(ErrTrailingData, t, arr,
				fmt.Sprintf("expected end of tuple after %d elements", len(slots)))
		}

		return nil
	}
}

func recordDecoder(t reflect.Type, layout *recordLayout, plans []*typePlan) decodeFunc {
	n := uint(len(layout.fields))

	return func(ds *decodeState, src wire.Source, v reflect.Value) error {
		obj, err := ds.beginObject(t, src)
		if err != nil {
			return err
		}
		defer ds.ascend()

		seen := bitset.New(n)

		for {
			end, err := ds.readEnd(t, obj)
			if err != nil {
				return err
			}

			if end {
				break
			}

			name, err := ds.readKey(t, obj)
			if err != nil {
				return err
			}

			idx, ok := layout.keys.Lookup(name)
			if !ok {
				e := ds.fail(ErrUnknownField, t, obj, fmt.Sprintf("unknown field %q", name))
				e.Name = name
				e.Suggestion, _ = match.Suggest(name, layout.keys.Names())

				return e
			}

			if seen.Test(uint(idx)) {
				e := ds.fail(ErrDuplicateField, t, obj, fmt.Sprintf("duplicate field %q", name))
				e.Name = name

				return e
			}

			seen.Set(uint(idx))

			ds.path.pushKey(name)
			err = plans[idx].decode(ds, obj, layout.fields[idx].Slot(v))
			ds.path.pop()

			if err != nil {
				return err
			}
		}

		if seen.Count() == n {
			return nil
		}

		var missing []string
		for i, f := range layout.fields {
			if !seen.Test(uint(i)) {
				missing = append(missing, f.Name)
			}
		}

		msg := "missing field " + quoteAll(missing)
		if len(missing) > 1 {
			msg = "missing fields " + quoteAll(missing)
		}

		e := ds.fail(ErrMissingFields, t, obj, msg)
		e.Name = missing[0]
		e.Missing = missing

		return e
	}
}

func mapDecoder(t reflect.Type, elem *typePlan) decodeFunc {
	return func(ds *decodeState, src wire.Source, v reflect.Value) error {
		obj, err := ds.beginObject(t, src)
		if err != nil {
			return err
		}
		defer ds.ascend()

		out := reflect.MakeMap(t)

		for {
			end, err := ds.readEnd(t, obj)
			if err != nil {
				return err
			}

			if end {
				break
			}

			name, err := ds.readKey(t, obj)
			if err != nil {
				return err
			}

			key := reflect.ValueOf(name).Convert(t.Key())
			if out.MapIndex(key).IsValid() {
				e := ds.fail(ErrDuplicateField, t, obj, fmt.Sprintf("duplicate key %q", name))
				e.Name = name

				return e
			}

			val := reflect.New(t.Elem()).Elem()

			ds.path.pushKey(name)
			err = elem.decode(ds, obj, val)
			ds.path.pop()

			if err != nil {
				return err
			}

			out.SetMapIndex(key, val)
		}

		v.Set(out)

		return nil
	}
}

func unionDecoder(t reflect.Type, u *unionLayout, plans []*typePlan) decodeFunc {
	return func(ds *decodeState, src wire.Source, v reflect.Value) error {
		obj, err := ds.beginObject(t, src)
		if err != nil {
			return err
		}
		defer ds.ascend()

		end, err := ds.readEnd(t, obj)
		if err != nil {
			return err
		}

		if end {
			return ds.fail(ErrUnexpectedShape, t, obj, "expected exactly one alternative key, found none")
		}

		name, err := ds.readKey(t, obj)
		if err != nil {
			return err
		}

		idx, ok := u.keys.Lookup(name)
		if !ok {
			e := ds.fail(ErrUnknownAlternative, t, obj, fmt.Sprintf("unknown alternative %q", name))
			e.Name = name
			e.Suggestion, _ = match.Suggest(name, u.keys.Names())

			return e
		}

		alt := reflect.New(u.alts[idx].Type).Elem()

		ds.path.pushKey(name)
		err = plans[idx].decode(ds, obj, alt)
		ds.path.pop()

		if err != nil {
			return err
		}

		end, err = ds.readEnd(t, obj)
		if err != nil {
			return err
		}

		if !end {
			return ds.fail(ErrTrailingData, t, obj, "expected exactly one alternative key, found more")
		}

		v.Set(alt)

		return nil
	}
}

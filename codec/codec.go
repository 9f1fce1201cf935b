package codec

import (
	"reflect"

	"structcodec/wire"
)

// Encode writes v to s using the Default registry and no context.
func Encode[T any](s wire.Sink, v T) error {
	return EncodeWith(Default, s, v, NoContext{})
}

// EncodeContext writes v to s, handing ctx to every custom encoder.
func EncodeContext[T, C any](s wire.Sink, v T, ctx C) error {
	return EncodeWith(Default, s, v, ctx)
}

// EncodeWith writes v to s using the plans of r.
func EncodeWith[T, C any](r *Registry, s wire.Sink, v T, ctx C) error {
	ct := reflect.TypeFor[C]()

	p, err := r.plan(reflect.TypeFor[T](), ct, dirEncode)
	if err != nil {
		return err
	}

	es := &encodeState{state: newState(r, ctx, ct)}

	return p.encode(es, s, reflect.ValueOf(&v).Elem())
}

// Decode reads a T from src using the Default registry and no context.
func Decode[T any](src wire.Source) (T, error) {
	return DecodeWith[T](Default, src, NoContext{})
}

// DecodeContext reads a T from src, handing ctx to every custom decoder.
func DecodeContext[T, C any](src wire.Source, ctx C) (T, error) {
	return DecodeWith[T](Default, src, ctx)
}

// DecodeWith reads a T from src using the plans of r. On error the zero value
// is returned; the source must not be reused.
func DecodeWith[T, C any](r *Registry, src wire.Source, ctx C) (T, error) {
	var out T

	ct := reflect.TypeFor[C]()

	p, err := r.plan(reflect.TypeFor[T](), ct, dirDecode)
	if err != nil {
		return out, err
	}

	ds := &decodeState{state: newState(r, ctx, ct)}
	if err := p.decode(ds, src, reflect.ValueOf(&out).Elem()); err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

// Compile builds and caches the encode and decode plans of T under context
// type C, reporting unsupported types and ambiguous handlers up front.
func Compile[T, C any](r *Registry) error {
	t, ct := reflect.TypeFor[T](), reflect.TypeFor[C]()

	for _, dir := range []direction{dirEncode, dirDecode} {
		if _, err := r.plan(t, ct, dir); err != nil {
			return err
		}
	}

	return nil
}

// MustCompile is like Compile but panics on error.
func MustCompile[T, C any](r *Registry) {
	if err := Compile[T, C](r); err != nil {
		panic(err)
	}
}

// Matches reports whether src holds a valid T. It consumes src.
func Matches[T any](src wire.Source) bool {
	_, err := Decode[T](src)
	return err == nil
}

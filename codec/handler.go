package codec

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"structcodec/wire"
)

// EncodeFunc writes v to s. ctx is the value passed to the encode call.
type EncodeFunc[T, C any] func(e *Encoder, s wire.Sink, v T, ctx C) error

// DecodeFunc reads a T from src. ctx is the value passed to the decode call.
type DecodeFunc[T, C any] func(d *Decoder, src wire.Source, ctx C) (T, error)

// Encoder is handed to custom encoders so they can delegate nested values
// back to the engine with EncodeNested.
type Encoder struct {
	state *encodeState
}

// Context returns the context value of the current call.
func (e *Encoder) Context() any {
	return e.state.ctx
}

// Path returns the location of the value being encoded.
func (e *Encoder) Path() string {
	return e.state.path.String()
}

// Decoder is handed to custom decoders so they can delegate nested values
// back to the engine with DecodeNested.
type Decoder struct {
	state *decodeState
}

func (d *Decoder) Context() any {
	return d.state.ctx
}

func (d *Decoder) Path() string {
	return d.state.path.String()
}

// EncodeNested encodes v with the plan of T under the current context.
func EncodeNested[T any](e *Encoder, s wire.Sink, v T) error {
	p, err := e.state.reg.plan(reflect.TypeFor[T](), e.state.ctxType, dirEncode)
	if err != nil {
		return err
	}

	return p.encode(e.state, s, reflect.ValueOf(&v).Elem())
}

// DecodeNested decodes a T with its plan under the current context.
func DecodeNested[T any](d *Decoder, src wire.Source) (T, error) {
	var out T

	p, err := d.state.reg.plan(reflect.TypeFor[T](), d.state.ctxType, dirDecode)
	if err != nil {
		return out, err
	}

	if err := p.decode(d.state, src, reflect.ValueOf(&out).Elem()); err != nil {
		var zero T

		return zero, err
	}

	return out, nil
}

type handler struct {
	ctx    reflect.Type
	encode encodeFunc
	decode decodeFunc
}

// RegisterEncoder installs a custom encoder for T used when the call's
// context type is C, implements C, or C is any.
func RegisterEncoder[T, C any](r *Registry, fn EncodeFunc[T, C]) error {
	enc := func(es *encodeState, s wire.Sink, v reflect.Value) error {
		val, _ := v.Interface().(T)
		ctx, _ := es.ctx.(C)

		return fn(&Encoder{state: es}, s, val, ctx)
	}

	return r.addHandler(dirEncode, reflect.TypeFor[T](), handler{ctx: reflect.TypeFor[C](), encode: enc})
}

// RegisterDecoder installs a custom decoder for T, resolved like
// RegisterEncoder.
func RegisterDecoder[T, C any](r *Registry, fn DecodeFunc[T, C]) error {
	dec := func(ds *decodeState, src wire.Source, v reflect.Value) error {
		ctx, _ := ds.ctx.(C)

		out, err := fn(&Decoder{state: ds}, src, ctx)
		if err != nil {
			return err
		}

		v.Set(reflect.ValueOf(&out).Elem())

		return nil
	}

	return r.addHandler(dirDecode, reflect.TypeFor[T](), handler{ctx: reflect.TypeFor[C](), decode: dec})
}

// MustRegisterEncoder is like RegisterEncoder but panics on error.
func MustRegisterEncoder[T, C any](r *Registry, fn EncodeFunc[T, C]) {
	if err := RegisterEncoder(r, fn); err != nil {
		panic(err)
	}
}

// MustRegisterDecoder is like RegisterDecoder but panics on error.
func MustRegisterDecoder[T, C any](r *Registry, fn DecodeFunc[T, C]) {
	if err := RegisterDecoder(r, fn); err != nil {
		panic(err)
	}
}

func (r *Registry) addHandler(dir direction, t reflect.Type, h handler) error {
	r.mu.Lock()

	table := r.encoders
	if dir == dirDecode {
		table = r.decoders
	}

	list := table[t]
	replaced := false

	for i, existing := range list {
		if existing.ctx == h.ctx {
			list[i] = h
			replaced = true

			break
		}
	}

	if !replaced {
		list = append(list, h)
	}

	table[t] = list
	r.invalidateLocked()
	r.mu.Unlock()

	r.logger.Debug("registered handler",
		zap.Stringer("type", t),
		zap.Stringer("context", h.ctx),
		zap.Stringer("direction", dir),
		zap.Bool("replaced", replaced),
	)

	return nil
}

// lookupHandler picks the most specific handler for t under context type ctx:
// exact match, then a single implemented non-empty interface, then any.
func (r *Registry) lookupHandler(t, ctx reflect.Type, dir direction) (handler, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	table := r.encoders
	if dir == dirDecode {
		table = r.decoders
	}

	list := table[t]
	if len(list) == 0 {
		return handler{}, false, nil
	}

	var (
		iface    []handler
		fallback *handler
	)

	for i, h := range list {
		switch {
		case h.ctx == ctx:
			return h, true, nil
		case h.ctx.Kind() != reflect.Interface:
		case h.ctx.NumMethod() == 0:
			fallback = &list[i]
		case ctx.Implements(h.ctx):
			iface = append(iface, h)
		}
	}

	switch len(iface) {
	case 0:
	case 1:
		return iface[0], true, nil
	default:
		return handler{}, false, fmt.Errorf("%w: %s %s under context %s matches %s and %s",
			ErrAmbiguousHandler, dir, t, ctx, iface[0].ctx, iface[1].ctx)
	}

	if fallback != nil {
		return *fallback, true, nil
	}

	return handler{}, false, nil
}

package codec

import (
	"reflect"
	"strconv"
	"strings"

	"structcodec/wire"
)

type segment struct {
	key   string
	index int // -1 for object keys
}

// path is the stack of keys and indices leading to the current value.
type path []segment

func (p *path) pushKey(key string) {
	*p = append(*p, segment{key: key, index: -1})
}

func (p *path) pushIndex(i int) {
	*p = append(*p, segment{index: i})
}

func (p *path) pop() {
	*p = (*p)[:len(*p)-1]
}

func (p path) String() string {
	var b strings.Builder

	b.WriteString("$")
	for _, s := range p {
		if s.index >= 0 {
			b.WriteString("[")
			b.WriteString(strconv.Itoa(s.index))
			b.WriteString("]")

			continue
		}

		b.WriteString(".")
		b.WriteString(s.key)
	}

	return b.String()
}

// state is owned by one Encode or Decode call.
type state struct {
	reg     *Registry
	ctx     any
	ctxType reflect.Type
	depth   int
	path    path
}

func newState(r *Registry, ctx any, ctxType reflect.Type) state {
	return state{reg: r, ctx: ctx, ctxType: ctxType, path: make(path, 0, 8)}
}

// descend enters an array or object scope.
func (st *state) descend() bool {
	st.depth++

	return st.reg.maxDepth == 0 || st.depth <= st.reg.maxDepth
}

func (st *state) ascend() {
	st.depth--
}

type encodeState struct {
	state
}

func (es *encodeState) fail(kind error, t reflect.Type, msg string) error {
	return &EncodeError{Kind: kind, Type: t, Path: es.path.String(), Msg: msg}
}

// sinkError wraps a backend failure. Errors already produced by the engine
// pass through.
func (es *encodeState) sinkError(err error, t reflect.Type) error {
	if err == nil {
		return nil
	}

	if _, ok := err.(*EncodeError); ok {
		return err
	}

	return &EncodeError{Kind: ErrEncodeIO, Type: t, Path: es.path.String(), Err: err}
}

type decodeState struct {
	state
}

func (ds *decodeState) fail(kind error, t reflect.Type, src wire.Source, msg string) *DecodeError {
	e := &DecodeError{Kind: kind, Type: t, Path: ds.path.String(), Msg: msg}
	if p, ok := src.(wire.Positioner); ok {
		e.Position = p.Position()
	}

	return e
}

// sourceError wraps a backend failure as a parse error.
func (ds *decodeState) sourceError(err error, t reflect.Type, src wire.Source) error {
	if _, ok := err.(*DecodeError); ok {
		return err
	}

	e := ds.fail(ErrParse, t, src, "malformed input")
	e.Err = err

	return e
}

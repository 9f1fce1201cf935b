package jsonwire

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"structcodec/wire"
)

var (
	ErrUnsupportedFloat = errors.New("jsonwire: unsupported float value")
	ErrClosedScope      = errors.New("jsonwire: write to closed scope")
	ErrMisplacedValue   = errors.New("jsonwire: value or key out of place")
)

// Writer is a wire.Sink rendering JSON text. Output is buffered; call Flush
// when done. The first error is sticky.
type Writer struct {
	out  *bufio.Writer
	opts Options
	buf  []byte
	err  error
	root frame
}

var (
	_ wire.Sink       = (*Writer)(nil)
	_ wire.ArraySink  = (*frame)(nil)
	_ wire.ObjectSink = (*frame)(nil)
)

// NewWriter returns a Writer rendering to w with the given layout.
func NewWriter(w io.Writer, opts Options) (*Writer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	jw := &Writer{out: bufio.NewWriter(w), opts: opts}
	jw.root = frame{w: jw, kind: rootScope}

	return jw, nil
}

// Flush writes any buffered output.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}

	w.err = w.out.Flush()

	return w.err
}

func (w *Writer) WriteNull() error                     { return w.root.WriteNull() }
func (w *Writer) WriteBool(v bool) error               { return w.root.WriteBool(v) }
func (w *Writer) WriteInt(v int64) error               { return w.root.WriteInt(v) }
func (w *Writer) WriteUint(v uint64) error             { return w.root.WriteUint(v) }
func (w *Writer) WriteFloat(v float64, bits int) error { return w.root.WriteFloat(v, bits) }
func (w *Writer) WriteString(v string) error           { return w.root.WriteString(v) }
func (w *Writer) BeginArray() (wire.ArraySink, error)  { return w.root.BeginArray() }

func (w *Writer) BeginObject() (wire.ObjectSink, error) {
	return w.root.BeginObject()
}

func (w *Writer) write(b []byte) {
	if w.err == nil {
		_, w.err = w.out.Write(b)
	}
}

func (w *Writer) writeString(s string) {
	if w.err == nil {
		_, w.err = w.out.WriteString(s)
	}
}

func (w *Writer) spaces(n int) {
	if n > 0 {
		w.writeString(strings.Repeat(" ", n))
	}
}

func (w *Writer) newline(depth int) {
	if w.opts.Indent == 0 {
		return
	}

	w.writeString("\n")
	w.spaces(depth * w.opts.Indent)
}

type scopeKind int

const (
	rootScope scopeKind = iota
	arrayScope
	objectScope
)

// frame is one open scope. Members of a frame are indented by depth levels.
type frame struct {
	w      *Writer
	kind   scopeKind
	depth  int
	used   bool
	keyed  bool
	closed bool
}

// separate writes the comma and indentation preceding an array element or
// object key.
func (f *frame) separate() {
	w := f.w
	if f.used {
		w.writeString(",")
		if w.opts.Indent == 0 {
			w.spaces(w.opts.CommaSpace)
		}
	}

	f.used = true
	w.newline(f.depth)
}

// value prepares the frame for one value.
func (f *frame) value() error {
	if f.w.err != nil {
		return f.w.err
	}

	if f.closed {
		return ErrClosedScope
	}

	switch f.kind {
	case arrayScope:
		f.separate()
	case objectScope:
		if !f.keyed {
			return fmt.Errorf("%w: object value without key", ErrMisplacedValue)
		}

		f.keyed = false
	}

	return f.w.err
}

func (f *frame) WriteNull() error {
	if err := f.value(); err != nil {
		return err
	}

	f.w.writeString("null")

	return f.w.err
}

func (f *frame) WriteBool(v bool) error {
	if err := f.value(); err != nil {
		return err
	}

	f.w.writeString(strconv.FormatBool(v))

	return f.w.err
}

func (f *frame) WriteInt(v int64) error {
	if err := f.value(); err != nil {
		return err
	}

	f.w.buf = strconv.AppendInt(f.w.buf[:0], v, 10)
	f.w.write(f.w.buf)

	return f.w.err
}

func (f *frame) WriteUint(v uint64) error {
	if err := f.value(); err != nil {
		return err
	}

	f.w.buf = strconv.AppendUint(f.w.buf[:0], v, 10)
	f.w.write(f.w.buf)

	return f.w.err
}

// WriteFloat renders the shortest decimal that reads back as the same value
// at the given precision.
func (f *frame) WriteFloat(v float64, bits int) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		if f.w.err == nil {
			f.w.err = fmt.Errorf("%w: %v", ErrUnsupportedFloat, v)
		}

		return f.w.err
	}

	if err := f.value(); err != nil {
		return err
	}

	f.w.buf = strconv.AppendFloat(f.w.buf[:0], v, 'g', -1, bits)
	f.w.write(f.w.buf)

	return f.w.err
}

func (f *frame) WriteString(v string) error {
	if err := f.value(); err != nil {
		return err
	}

	f.w.buf = appendQuoted(f.w.buf[:0], v)
	f.w.write(f.w.buf)

	return f.w.err
}

func (f *frame) BeginArray() (wire.ArraySink, error) {
	if err := f.value(); err != nil {
		return nil, err
	}

	f.w.writeString("[")

	return &frame{w: f.w, kind: arrayScope, depth: f.depth + 1}, f.w.err
}

func (f *frame) BeginObject() (wire.ObjectSink, error) {
	if err := f.value(); err != nil {
		return nil, err
	}

	f.w.writeString("{")

	return &frame{w: f.w, kind: objectScope, depth: f.depth + 1}, f.w.err
}

func (f *frame) WriteKey(name string) error {
	if f.w.err != nil {
		return f.w.err
	}

	if f.closed {
		return ErrClosedScope
	}

	if f.kind != objectScope || f.keyed {
		return fmt.Errorf("%w: key %q", ErrMisplacedValue, name)
	}

	f.separate()
	f.w.buf = appendQuoted(f.w.buf[:0], name)
	f.w.write(f.w.buf)
	f.w.writeString(":")
	f.w.spaces(f.w.opts.ColonSpace)
	f.keyed = true

	return f.w.err
}

// End closes the scope. Non-empty scopes put the closing delimiter on its own
// line when indenting.
func (f *frame) End() error {
	if f.w.err != nil {
		return f.w.err
	}

	if f.closed || f.kind == rootScope {
		return ErrClosedScope
	}

	f.closed = true

	if f.used {
		f.w.newline(f.depth - 1)
	}

	if f.kind == arrayScope {
		f.w.writeString("]")
	} else {
		f.w.writeString("}")
	}

	return f.w.err
}

const hex = "0123456789abcdef"

// appendQuoted appends s as a JSON string literal. Quotes, backslashes and
// control characters are escaped, and invalid UTF-8 bytes become \ufffd;
// everything else is copied as is.
func appendQuoted(dst []byte, s string) []byte {
	dst = append(dst, '"')

	start := 0
	for i := 0; i < len(s); {
		c := s[i]
		if c >= utf8.RuneSelf {
			r, size := utf8.DecodeRuneInString(s[i:])
			if r == utf8.RuneError && size == 1 {
				dst = append(dst, s[start:i]...)
				dst = append(dst, `\ufffd`...)
				start = i + 1
			}

			i += size

			continue
		}

		if c >= 0x20 && c != '"' && c != '\\' {
			i++
			continue
		}

		dst = append(dst, s[start:i]...)

		switch c {
		case '"', '\\':
			dst = append(dst, '\\', c)
		case '\n':
			dst = append(dst, '\\', 'n')
		case '\r':
			dst = append(dst, '\\', 'r')
		case '\t':
			dst = append(dst, '\\', 't')
		case '\b':
			dst = append(dst, '\\', 'b')
		case '\f':
			dst = append(dst, '\\', 'f')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hex[c>>4], hex[c&0xf])
		}

		i++
		start = i
	}

	dst = append(dst, s[start:]...)

	return append(dst, '"')
}

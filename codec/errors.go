package codec

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
)

var (
	ErrUnexpectedShape    = errors.New("unexpected shape")
	ErrUnknownField       = errors.New("unknown field")
	ErrDuplicateField     = errors.New("duplicate field")
	ErrMissingFields      = errors.New("missing fields")
	ErrUnknownAlternative = errors.New("unknown alternative")
	ErrTrailingData       = errors.New("trailing data")
	ErrParse              = errors.New("parse error")
	ErrEncodeIO           = errors.New("encode i/o error")
	ErrDepthExceeded      = errors.New("maximum depth exceeded")
	ErrNilUnion           = errors.New("nil union value")

	ErrUnsupportedType   = errors.New("unsupported type")
	ErrAmbiguousHandler  = errors.New("ambiguous handler")
	ErrInvalidDescriptor = errors.New("invalid descriptor")
)

// DecodeError reports a structural or parse failure while decoding.
type DecodeError struct {
	// Kind is one of the Err* sentinels.
	Kind error
	// Type is the Go type being decoded when the failure happened.
	Type reflect.Type
	// Path locates the value inside the input, e.g. `$.inner[1]`.
	Path string
	// Position is the input location reported by the source, if any.
	Position string
	// Name is the offending key or alternative name.
	Name string
	// Missing lists absent record fields in declaration order.
	Missing []string
	// Suggestion is the closest known name for an unknown key.
	Suggestion string
	// Msg is the human-readable description.
	Msg string
	// Err is the underlying parser or source error.
	Err error
}

func (e *DecodeError) Error() string {
	var b strings.Builder

	b.WriteString("codec: decode")
	if e.Type != nil {
		b.WriteString(" ")
		b.WriteString(e.Type.String())
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	if e.Position != "" {
		b.WriteString(" (")
		b.WriteString(e.Position)
		b.WriteString(")")
	}

	b.WriteString(": ")
	b.WriteString(e.message())

	if e.Suggestion != "" {
		fmt.Fprintf(&b, " (did you mean %q?)", e.Suggestion)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *DecodeError) message() string {
	if e.Msg != "" {
		return e.Msg
	}

	if e.Kind != nil {
		return e.Kind.Error()
	}

	return "unknown error"
}

// Unwrap exposes both the kind and the underlying error to errors.Is/As.
func (e *DecodeError) Unwrap() []error {
	return nonNil(e.Kind, e.Err)
}

// EncodeError reports a failure while encoding.
type EncodeError struct {
	Kind error
	Type reflect.Type
	Path string
	Msg  string
	Err  error
}

func (e *EncodeError) Error() string {
	var b strings.Builder

	b.WriteString("codec: encode")
	if e.Type != nil {
		b.WriteString(" ")
		b.WriteString(e.Type.String())
	}

	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}

	b.WriteString(": ")
	switch {
	case e.Msg != "":
		b.WriteString(e.Msg)
	case e.Kind != nil:
		b.WriteString(e.Kind.Error())
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *EncodeError) Unwrap() []error {
	return nonNil(e.Kind, e.Err)
}

func nonNil(errs ...error) []error {
	out := errs[:0:0]
	for _, err := range errs {
		if err != nil {
			out = append(out, err)
		}
	}

	return out
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}

	return strings.Join(quoted, ", ")
}

package jsonwire

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"structcodec/codec"
	"structcodec/primitive"
	"structcodec/wire"
)

// Reader is a wire.Source over a JSON token stream with one token of
// lookahead. Keys and strings arrive unescaped; numbers arrive as their
// original lexeme.
type Reader struct {
	dec    *json.Decoder
	next   json.Token
	peeked bool
	err    error
}

var (
	_ wire.Source       = (*Reader)(nil)
	_ wire.ArraySource  = arrayReader{}
	_ wire.ObjectSource = objectReader{}
	_ wire.Positioner   = (*Reader)(nil)
)

func NewReader(r io.Reader) *Reader {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	return &Reader{dec: dec}
}

// Position reports the byte offset just past the last token read.
func (r *Reader) Position() string {
	return "offset " + strconv.FormatInt(r.dec.InputOffset(), 10)
}

func (r *Reader) Parser() wire.Parser {
	return primitive.TextParser{}
}

func (r *Reader) peek() (json.Token, error) {
	if r.err != nil {
		return nil, r.err
	}

	if !r.peeked {
		tok, err := r.dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}

			r.err = err

			return nil, err
		}

		r.next, r.peeked = tok, true
	}

	return r.next, nil
}

func (r *Reader) consume() {
	r.next, r.peeked = nil, false
}

func (r *Reader) ReadScalar(kind wire.TokenKind) (wire.Token, bool, error) {
	tok, err := r.peek()
	if err != nil {
		return "", false, err
	}

	var out wire.Token

	switch v := tok.(type) {
	case nil:
		if kind != wire.TokenNull {
			return "", false, nil
		}
	case bool:
		if kind != wire.TokenBool {
			return "", false, nil
		}

		out = wire.Token(strconv.FormatBool(v))
	case json.Number:
		if kind != wire.TokenFloat && (kind != wire.TokenInt || !isInteger(string(v))) {
			return "", false, nil
		}

		out = wire.Token(v)
	case string:
		if kind != wire.TokenString {
			return "", false, nil
		}

		out = wire.Token(v)
	default:
		return "", false, nil
	}

	r.consume()

	return out, true, nil
}

// isInteger reports whether a JSON number lexeme has no fraction or exponent.
func isInteger(lexeme string) bool {
	return !strings.ContainsAny(lexeme, ".eE")
}

func (r *Reader) readDelim(d json.Delim) (bool, error) {
	tok, err := r.peek()
	if err != nil {
		return false, err
	}

	if got, ok := tok.(json.Delim); !ok || got != d {
		return false, nil
	}

	r.consume()

	return true, nil
}

func (r *Reader) BeginArray() (wire.ArraySource, bool, error) {
	ok, err := r.readDelim('[')
	if !ok || err != nil {
		return nil, false, err
	}

	return arrayReader{r}, true, nil
}

func (r *Reader) BeginObject() (wire.ObjectSource, bool, error) {
	ok, err := r.readDelim('{')
	if !ok || err != nil {
		return nil, false, err
	}

	return objectReader{r}, true, nil
}

// Finish checks that nothing but whitespace follows the value already read.
func (r *Reader) Finish() error {
	if r.err != nil {
		return r.err
	}

	if !r.peeked {
		tok, err := r.dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return &codec.DecodeError{
				Kind:     codec.ErrTrailingData,
				Position: r.Position(),
				Msg:      "unexpected input after top-level value",
				Err:      err,
			}
		}

		r.next, r.peeked = tok, true
	}

	return &codec.DecodeError{
		Kind:     codec.ErrTrailingData,
		Position: r.Position(),
		Msg:      "unexpected input after top-level value",
	}
}

type arrayReader struct {
	*Reader
}

func (a arrayReader) ReadEnd() (bool, error) {
	return a.readDelim(']')
}

type objectReader struct {
	*Reader
}

func (o objectReader) ReadEnd() (bool, error) {
	return o.readDelim('}')
}

func (o objectReader) ReadKey() (wire.Token, bool, error) {
	tok, err := o.peek()
	if err != nil {
		return "", false, err
	}

	key, ok := tok.(string)
	if !ok {
		return "", false, nil
	}

	o.consume()

	return wire.Token(key), true, nil
}

package jsonwire

import (
	"errors"
	"fmt"
)

var ErrInvalidOptions = errors.New("jsonwire: invalid options")

// Options controls the layout of Writer output.
type Options struct {
	// Indent is the number of spaces per nesting level. Zero renders
	// everything on one line.
	Indent int
	// ColonSpace is the number of spaces after each key's colon.
	ColonSpace int
	// CommaSpace is the number of spaces after each comma. Ignored when
	// Indent is non-zero.
	CommaSpace int
}

// DefaultOptions returns the compact layout.
func DefaultOptions() Options {
	return Options{}
}

// PrettyOptions returns a two-space indented layout with a space after
// colons.
func PrettyOptions() Options {
	return Options{Indent: 2, ColonSpace: 1}
}

func (o Options) Validate() error {
	switch {
	case o.Indent < 0:
		return fmt.Errorf("%w: negative indent %d", ErrInvalidOptions, o.Indent)
	case o.ColonSpace < 0:
		return fmt.Errorf("%w: negative colon space %d", ErrInvalidOptions, o.ColonSpace)
	case o.CommaSpace < 0:
		return fmt.Errorf("%w: negative comma space %d", ErrInvalidOptions, o.CommaSpace)
	}

	return nil
}

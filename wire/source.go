package wire

// Source reads scalars and opens nested scopes.
//
// The boolean result reports whether the requested shape is present at the
// current position. A false result never consumes input. A non-nil error is a
// backend failure (malformed input, I/O) and is terminal.
type Source interface {
	ReadScalar(kind TokenKind) (Token, bool, error)
	BeginArray() (ArraySource, bool, error)
	BeginObject() (ObjectSource, bool, error)
	Parser() Parser
}

// ArraySource is a Source scoped to an open array.
type ArraySource interface {
	Source
	// ReadEnd reports whether the closing delimiter is next, consuming it if so.
	ReadEnd() (bool, error)
}

// ObjectSource is a Source scoped to an open object.
type ObjectSource interface {
	Source
	ReadEnd() (bool, error)
	ReadKey() (Token, bool, error)
}

// Positioner is implemented by sources that can describe where they are in
// the input, e.g. "offset 42" or "line 3, column 7".
type Positioner interface {
	Position() string
}

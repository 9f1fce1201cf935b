package wire

// Sink accepts scalar values and opens nested scopes. Every call appends to
// the backend in call order.
type Sink interface {
	WriteNull() error
	WriteBool(v bool) error
	WriteInt(v int64) error
	WriteUint(v uint64) error
	// WriteFloat writes v using the shortest representation that round-trips
	// at the given bit size (32 or 64).
	WriteFloat(v float64, bits int) error
	WriteString(v string) error

	BeginArray() (ArraySink, error)
	BeginObject() (ObjectSink, error)
}

// ArraySink is a Sink scoped to an open array.
type ArraySink interface {
	Sink
	End() error
}

// ObjectSink is a Sink scoped to an open object. WriteKey must precede every
// value written into the scope.
type ObjectSink interface {
	Sink
	WriteKey(name string) error
	End() error
}

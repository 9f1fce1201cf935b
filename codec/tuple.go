package codec

import (
	"structcodec/node"
	"structcodec/primitive"
)

// TupleLayout, embedded in a struct, makes the struct a fixed-arity tuple of
// its exported fields instead of a record.
type TupleLayout = node.TupleLayout

// Null always encodes as the null value.
type Null = primitive.Null

// NoContext is the context type of calls that do not pass one.
type NoContext struct{}

// Pair is a two-element tuple.
type Pair[A, B any] struct {
	TupleLayout
	First  A
	Second B
}

// MakePair returns the tuple (a, b).
func MakePair[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

// Triple is a three-element tuple.
type Triple[A, B, C any] struct {
	TupleLayout
	First  A
	Second B
	Third  C
}

func MakeTriple[A, B, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{First: a, Second: b, Third: c}
}

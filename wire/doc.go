// Package wire defines the capabilities the codec engine talks to.
//
// A Sink accepts an ordered stream of write events (scalars, array and object
// scopes, object keys) and renders them to some backend. A Source yields the
// mirror stream of read events. Neither side knows anything about Go types:
// the engine in package codec walks the type and drives the capability.
//
// Key types:
//   - Sink, ArraySink, ObjectSink: write side
//   - Source, ArraySource, ObjectSource: read side
//   - Parser: turns raw scalar tokens into typed values
//   - TokenKind: the scalar class requested from a Source
package wire

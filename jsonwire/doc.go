// Package jsonwire renders and reads JSON for the codec engine.
//
// Writer is a wire.Sink producing deterministic JSON text: with the zero
// Options it is compact, with Indent > 0 every element and key goes on its
// own line. Reader is a wire.Source over the encoding/json token stream.
//
//	data, err := jsonwire.Marshal(v)
//	v, err := jsonwire.Unmarshal[T](data)
package jsonwire

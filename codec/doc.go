// Package codec is the type-directed dispatch engine.
//
// Given the static type of a value and the static type of an ambient context,
// the engine compiles a plan once: a tree of small encode or decode functions,
// one per type, chosen by the type's shape (scalar, optional, sequence, tuple,
// map, record, union) or by a registered custom handler. Encoding walks the
// plan and drives a wire.Sink; decoding walks it while consuming a wire.Source
// and enforces the structural invariants:
//   - every record field present exactly once, unknown keys rejected
//   - tuples hold exactly their declared number of elements
//   - unions hold exactly one known alternative key
//
// # Shapes
//
//	bool, ints, uints, floats, string, Null  scalar
//	*T                                       null or T
//	[]T                                      array
//	[N]T, structs embedding TupleLayout      fixed-arity array
//	map[K]V with string-kinded K             object with sorted keys
//	struct                                   object, fields in declaration order
//	interface with registered alternatives   {"AltName": payload}
//
// Record fields are derived by reflection (`codec:"name"` tag, then
// `json:"name"`, then the Go name) unless explicit descriptors were registered
// with RegisterRecord, which is what cmd/codecgen emits.
//
// # Context and custom handlers
//
// The context is any value passed to EncodeContext/DecodeContext. It is
// handed unchanged to every custom handler. Handlers registered with
// RegisterEncoder/RegisterDecoder are keyed by (T, C); the most specific one
// for the call's context type wins: exact C, then a non-empty interface the
// context implements, then C = any, then the shape default. Resolution happens
// while compiling the plan, never per value.
//
// # Errors
//
// Decoding fails fast with a *DecodeError whose Kind is one of the Err*
// sentinels, so callers can use errors.Is. No partial value is returned.
package codec

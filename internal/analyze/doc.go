// Package analyze loads Go packages and extracts the record and union models
// codecgen emits descriptors for.
//
// It uses golang.org/x/tools/go/packages with go/types to find:
//   - Records: exported struct types, with embedded structs flattened and
//     wire names resolved from `codec` and `json` tags
//   - Interfaces: exported non-empty interfaces with the package types that
//     implement them, by value or by pointer
//
// Every field type is classified into a traversal shape the way the codec
// engine does at run time, so types the engine would reject are reported
// before any code is generated.
package analyze

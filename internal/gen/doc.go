// Package gen emits the codec registration file for an analyzed package.
//
// Generation uses text/template + go/format. The output is a single file with
// an init function that registers, on one codec.Registry:
//   - every described record with codec.MustRegisterRecord and one
//     codec.Field accessor per encoded field
//   - every described union with codec.MustRegisterUnion and one codec.Alt
//     per alternative
//
// Types are emitted in name order so regeneration is byte-stable.
package gen

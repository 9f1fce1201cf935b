// Package mapping provides the YAML configuration of a codecgen run: which
// records to describe, which interfaces become unions and under which
// alternative names, and wire name overrides.
//
// # Schema Overview
//
//	version: "1"
//	package: ./examples/geometry
//	output: geometry_codec.go
//	# Records to describe; empty means every exported struct.
//	include: [Drawing, Point]
//	# Types that are neither records nor unions.
//	exclude: [Scratch]
//	unions:
//	  - interface: Shape
//	    # Empty means every implementer, named after its type.
//	    alternatives:
//	      - Circle                 # shorthand for {type: Circle}
//	      - type: Polygon
//	        name: poly
//	# Wire name overrides keyed by "Type.Field".
//	fields:
//	  Point.X: px
//
// When the unions section is absent every exported interface with at least
// one implementer in the package is described as a union.
package mapping

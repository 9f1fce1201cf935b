package analyze

import (
	"slices"
	"strings"
)

// TypePath builds a readable location string inside a type.
// Examples:
//   - "Drawing" for the type itself
//   - "Drawing.Shapes" for a field
//   - "Label.Anchor.X" for a field promoted from an embedded struct
type TypePath struct {
	parts []string
}

// NewTypePath creates a new TypePath from a root type name.
func NewTypePath(root string) *TypePath {
	return &TypePath{parts: []string{root}}
}

// Field appends a field selector to the path.
func (p *TypePath) Field(name string) *TypePath {
	return &TypePath{parts: append(slices.Clone(p.parts), name)}
}

// String returns the full path string.
func (p *TypePath) String() string {
	return strings.Join(p.parts, ".")
}

package analyze

import (
	"go/types"
	"reflect"
	"strings"

	"structcodec/node"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "structcodec/examples/geometry"
	Name    string // e.g., "Circle"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

func idOf(obj types.Object) TypeID {
	id := TypeID{Name: obj.Name()}
	if obj.Pkg() != nil {
		id.PkgPath = obj.Pkg().Path()
	}

	return id
}

// Field describes one record member in encoding order.
type Field struct {
	GoName string            // Go field name
	Name   string            // wire name
	Path   []string          // selectors from the record value, embedded parents first
	Type   types.Type        // declared field type
	Tag    reflect.StructTag // raw struct tag
	Shape  node.ShapeEnum    // traversal shape of Type
}

// Selector returns the field access expression relative to the record value,
// e.g. "Base.X" for a field promoted from an embedded struct.
func (f *Field) Selector() string {
	return strings.Join(f.Path, ".")
}

// Skipped describes a struct field that does not take part in encoding.
type Skipped struct {
	Path   string
	Reason string
}

// Record describes an exported struct type encoded as a keyed object.
type Record struct {
	ID      TypeID
	Named   *types.Named
	Fields  []Field
	Skipped []Skipped
}

// Implementer is a package type that satisfies an interface, either by value
// or only through a pointer.
type Implementer struct {
	ID      TypeID
	Named   *types.Named
	Pointer bool
}

// Interface describes an exported non-empty interface that may act as a
// union.
type Interface struct {
	ID           TypeID
	Named        *types.Named
	Implementers []Implementer
}

// Implementer returns the implementer with the given type name.
func (i *Interface) Implementer(name string) (Implementer, bool) {
	for _, impl := range i.Implementers {
		if impl.ID.Name == name {
			return impl, true
		}
	}

	return Implementer{}, false
}

// Problem is a field whose type the codec engine cannot traverse.
type Problem struct {
	Record TypeID
	Path   string
	Err    error
}

// Package holds the models extracted from one loaded package.
type Package struct {
	Path       string
	Name       string
	Dir        string
	Types      *types.Package
	Records    []*Record
	Interfaces []*Interface
	Problems   []Problem
}

// Record returns the record with the given type name, or nil.
func (p *Package) Record(name string) *Record {
	for _, r := range p.Records {
		if r.ID.Name == name {
			return r
		}
	}

	return nil
}

// Interface returns the interface with the given type name, or nil.
func (p *Package) Interface(name string) *Interface {
	for _, i := range p.Interfaces {
		if i.ID.Name == name {
			return i
		}
	}

	return nil
}

// TypeNames returns the names of all records and interfaces in the package.
func (p *Package) TypeNames() []string {
	names := make([]string, 0, len(p.Records)+len(p.Interfaces))
	for _, r := range p.Records {
		names = append(names, r.ID.Name)
	}

	for _, i := range p.Interfaces {
		names = append(names, i.ID.Name)
	}

	return names
}

package mapping

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the only configuration version understood.
const CurrentVersion = "1"

// File is a parsed codecgen configuration.
type File struct {
	Version string            `yaml:"version"`
	Package string            `yaml:"package,omitempty"`
	Output  string            `yaml:"output,omitempty"`
	Include []string          `yaml:"include,omitempty"`
	Exclude []string          `yaml:"exclude,omitempty"`
	Unions  []Union           `yaml:"unions,omitempty"`
	Fields  map[string]string `yaml:"fields,omitempty"`
}

// Union configures one interface described as a tagged union.
type Union struct {
	Interface    string        `yaml:"interface"`
	Alternatives []Alternative `yaml:"alternatives,omitempty"`
}

// Alternative names one member type of a union and its wire tag.
type Alternative struct {
	Type string `yaml:"type"`
	Name string `yaml:"name,omitempty"`
}

// UnmarshalYAML accepts either a bare type name or a {type, name} mapping.
func (a *Alternative) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&a.Type)

	case yaml.MappingNode:
		type plain Alternative

		return node.Decode((*plain)(a))

	default:
		return fmt.Errorf("line %d: expected type name or mapping for alternative", node.Line)
	}
}

// MarshalYAML writes the shorthand form when the name is the default.
func (a Alternative) MarshalYAML() (any, error) {
	if a.Name == "" || a.Name == a.Type {
		return a.Type, nil
	}

	type plain Alternative

	return plain(a), nil
}

// FieldRef is a parsed "Type.Field" key of the fields section.
type FieldRef struct {
	Type  string
	Field string // Go selector, e.g. "X" or "Meta.Author"
}

// ParseFieldRef splits a fields key into its type and field selector.
func ParseFieldRef(s string) (FieldRef, error) {
	typ, field, ok := strings.Cut(s, ".")
	if !ok || typ == "" || field == "" {
		return FieldRef{}, fmt.Errorf("invalid field reference %q: want Type.Field", s)
	}

	return FieldRef{Type: typ, Field: field}, nil
}

// String returns the "Type.Field" form.
func (r FieldRef) String() string {
	return r.Type + "." + r.Field
}

// HasUnions reports whether the unions section was given.
func (f *File) HasUnions() bool {
	return f.Unions != nil
}

// Rename returns the configured wire name for a record field.
func (f *File) Rename(typeName, selector string) (string, bool) {
	name, ok := f.Fields[FieldRef{Type: typeName, Field: selector}.String()]
	return name, ok
}

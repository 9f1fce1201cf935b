// Package keymap implements the static name→index resolver used by record
// and union decoding.
//
// A Map is built once per type from its field or alternative names and never
// changes afterwards, so it can be shared by concurrent decoders without
// synchronization. Small maps are scanned linearly; larger ones are searched
// over a sorted copy of the names.
package keymap

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// LinearThreshold is the largest name count resolved by a linear scan.
const LinearThreshold = 8

var ErrDuplicateName = errors.New("duplicate name")

type entry struct {
	name  string
	index int
}

// Map resolves names to their declaration ordinal.
type Map struct {
	names  []string // declaration order
	sorted []entry  // nil when len(names) <= LinearThreshold
}

// New builds a Map where names[i] resolves to i.
func New(names []string) (*Map, error) {
	m := &Map{names: slices.Clone(names)}

	sorted := make([]entry, len(names))
	for i, name := range names {
		sorted[i] = entry{name: name, index: i}
	}

	slices.SortFunc(sorted, func(a, b entry) int {
		return strings.Compare(a.name, b.name)
	})

	for i := 1; i < len(sorted); i++ {
		if sorted[i].name == sorted[i-1].name {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, sorted[i].name)
		}
	}

	if len(names) > LinearThreshold {
		m.sorted = sorted
	}

	return m, nil
}

// MustNew is like New but panics on duplicate names.
func MustNew(names ...string) *Map {
	m, err := New(names)
	if err != nil {
		panic(err)
	}

	return m
}

// Lookup returns the ordinal of name. Matching is exact and case-sensitive.
func (m *Map) Lookup(name string) (int, bool) {
	if m.sorted == nil {
		for i, n := range m.names {
			if n == name {
				return i, true
			}
		}

		return -1, false
	}

	i, found := slices.BinarySearchFunc(m.sorted, name, func(e entry, target string) int {
		return strings.Compare(e.name, target)
	})
	if !found {
		return -1, false
	}

	return m.sorted[i].index, true
}

// Len returns the number of names.
func (m *Map) Len() int {
	return len(m.names)
}

// Name returns the name declared at ordinal i.
func (m *Map) Name(i int) string {
	return m.names[i]
}

// Names returns the names in declaration order.
func (m *Map) Names() []string {
	return slices.Clone(m.names)
}

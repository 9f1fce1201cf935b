package codec

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"structcodec/keymap"
	"structcodec/node"
)

// AltSpec declares one alternative of a union.
type AltSpec struct {
	name string
	typ  reflect.Type
}

// Alt declares T as a union alternative tagged name. An empty name defaults
// to the type name of T.
func Alt[T any](name string) AltSpec {
	t := reflect.TypeFor[T]()
	if name == "" {
		name = node.AlternativeName(t)
	}

	return AltSpec{name: name, typ: t}
}

// RegisterUnion makes interface type I a tagged union of the given
// alternatives. Every alternative must implement I; names and types must be
// unique.
func RegisterUnion[I any](r *Registry, alts ...AltSpec) error {
	it := reflect.TypeFor[I]()
	if it.Kind() != reflect.Interface {
		return fmt.Errorf("%w: union type %s is not an interface", ErrInvalidDescriptor, it)
	}

	if len(alts) == 0 {
		return fmt.Errorf("%w: union %s has no alternatives", ErrInvalidDescriptor, it)
	}

	u := &unionLayout{
		alts:   make([]node.Alternative, len(alts)),
		byType: make(map[reflect.Type]int, len(alts)),
	}
	names := make([]string, len(alts))

	for i, a := range alts {
		if a.typ == nil || a.name == "" {
			return fmt.Errorf("%w: union %s: alternative %d has no name", ErrInvalidDescriptor, it, i)
		}

		if !a.typ.Implements(it) {
			return fmt.Errorf("%w: union %s: %s does not implement it", ErrInvalidDescriptor, it, a.typ)
		}

		if _, dup := u.byType[a.typ]; dup {
			return fmt.Errorf("%w: union %s: %s listed twice", ErrInvalidDescriptor, it, a.typ)
		}

		u.alts[i] = node.Alternative{Name: a.name, Index: i, Type: a.typ}
		u.byType[a.typ] = i
		names[i] = a.name
	}

	keys, err := keymap.New(names)
	if err != nil {
		return fmt.Errorf("%w: union %s: %w", ErrInvalidDescriptor, it, err)
	}

	u.keys = keys

	r.mu.Lock()
	r.unions[it] = u
	r.invalidateLocked()
	r.mu.Unlock()

	r.logger.Debug("registered union", zap.Stringer("interface", it), zap.Strings("alternatives", names))

	return nil
}

// MustRegisterUnion is like RegisterUnion but panics on error.
func MustRegisterUnion[I any](r *Registry, alts ...AltSpec) {
	if err := RegisterUnion[I](r, alts...); err != nil {
		panic(err)
	}
}

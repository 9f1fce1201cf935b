package codec

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"

	"structcodec/node"
	"structcodec/wire"
)

type direction int

const (
	dirEncode direction = iota
	dirDecode
)

func (d direction) String() string {
	if d == dirDecode {
		return "decode"
	}

	return "encode"
}

type (
	encodeFunc func(es *encodeState, s wire.Sink, v reflect.Value) error
	decodeFunc func(ds *decodeState, src wire.Source, v reflect.Value) error
)

type planKey struct {
	typ reflect.Type
	ctx reflect.Type
	dir direction
}

func (k planKey) String() string {
	return fmt.Sprintf("%p|%p|%d", k.typ, k.ctx, k.dir)
}

// typePlan is the compiled traversal for one type in one direction. Child
// plans are referenced by pointer so recursive types close over themselves.
type typePlan struct {
	typ    reflect.Type
	shape  node.ShapeEnum
	custom bool
	encode encodeFunc
	decode decodeFunc
}

func (r *Registry) plan(t, ctx reflect.Type, dir direction) (*typePlan, error) {
	key := planKey{typ: t, ctx: ctx, dir: dir}
	if p, ok := r.plans.Load(key); ok {
		return p.(*typePlan), nil
	}

	gen := r.gen.Load()

	v, err, _ := r.group.Do(fmt.Sprintf("%s|%d", key, gen), func() (any, error) {
		if p, ok := r.plans.Load(key); ok {
			return p, nil
		}

		c := &compiler{reg: r, ctx: ctx, dir: dir, local: make(map[reflect.Type]*typePlan)}

		p, err := c.compile(t)
		if err != nil {
			return nil, fmt.Errorf("codec: compile %s plan for %s: %w", dir, t, err)
		}

		r.storePlans(gen, c)

		r.logger.Debug("compiled plan",
			zap.Stringer("type", t),
			zap.Stringer("context", ctx),
			zap.Stringer("shape", p.shape),
			zap.Stringer("direction", dir),
			zap.Int("types", len(c.local)),
		)

		return p, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*typePlan), nil
}

// storePlans caches the plans built by c unless a registration bumped the
// generation since gen was read. The generation only moves under r.mu.
func (r *Registry) storePlans(gen uint64, c *compiler) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.gen.Load() != gen {
		return
	}

	for t, p := range c.local {
		r.plans.LoadOrStore(planKey{typ: t, ctx: c.ctx, dir: c.dir}, p)
	}
}

type compiler struct {
	reg   *Registry
	ctx   reflect.Type
	dir   direction
	local map[reflect.Type]*typePlan
}

func (c *compiler) compile(t reflect.Type) (*typePlan, error) {
	if p, ok := c.local[t]; ok {
		return p, nil
	}

	if p, ok := c.reg.plans.Load(planKey{typ: t, ctx: c.ctx, dir: c.dir}); ok {
		return p.(*typePlan), nil
	}

	p := &typePlan{typ: t, shape: node.Dispatch(t)}
	c.local[t] = p

	h, ok, err := c.reg.lookupHandler(t, c.ctx, c.dir)
	if err != nil {
		return nil, err
	}

	if ok {
		p.custom = true
		p.encode = h.encode
		p.decode = h.decode

		c.reg.logger.Debug("custom handler selected",
			zap.Stringer("type", t),
			zap.Stringer("context", c.ctx),
			zap.Stringer("handler_context", h.ctx),
			zap.Stringer("direction", c.dir),
		)

		return p, nil
	}

	if c.dir == dirEncode {
		err = c.buildEncoder(p)
	} else {
		err = c.buildDecoder(p)
	}

	if err != nil {
		return nil, err
	}

	return p, nil
}

// recordFor reports whether t is encoded as a record and returns its layout.
// Explicitly registered layouts win over the shape of t.
func (c *compiler) recordFor(p *typePlan) (*recordLayout, bool, error) {
	c.reg.mu.RLock()
	_, explicit := c.reg.records[p.typ]
	c.reg.mu.RUnlock()

	if !explicit && p.shape != node.ShapeRecord {
		return nil, false, nil
	}

	layout, _, err := c.reg.record(p.typ)
	if err != nil {
		return nil, false, err
	}

	p.shape = node.ShapeRecord

	return layout, true, nil
}

func (c *compiler) children(types []reflect.Type, label func(i int) string) ([]*typePlan, error) {
	plans := make([]*typePlan, len(types))

	for i, t := range types {
		p, err := c.compile(t)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", label(i), err)
		}

		plans[i] = p
	}

	return plans, nil
}

func (c *compiler) unionFor(t reflect.Type) (*unionLayout, []*typePlan, error) {
	u, ok := c.reg.union(t)
	if !ok {
		return nil, nil, fmt.Errorf("%w: interface %s has no registered alternatives", ErrUnsupportedType, t)
	}

	types := make([]reflect.Type, len(u.alts))
	for i, alt := range u.alts {
		types[i] = alt.Type
	}

	plans, err := c.children(types, func(i int) string {
		return fmt.Sprintf("alternative %q", u.alts[i].Name)
	})
	if err != nil {
		return nil, nil, err
	}

	return u, plans, nil
}

func (c *compiler) recordChildren(layout *recordLayout) ([]*typePlan, error) {
	types := make([]reflect.Type, len(layout.fields))
	for i, f := range layout.fields {
		types[i] = f.Type
	}

	return c.children(types, func(i int) string {
		return fmt.Sprintf("field %q", layout.fields[i].Name)
	})
}

func (c *compiler) tupleChildren(t reflect.Type) ([]node.Field, []*typePlan, error) {
	slots, err := node.TupleSlots(t)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	types := make([]reflect.Type, len(slots))
	for i, s := range slots {
		types[i] = s.Type
	}

	plans, err := c.children(types, func(i int) string {
		return fmt.Sprintf("slot %d", i)
	})
	if err != nil {
		return nil, nil, err
	}

	return slots, plans, nil
}

func unsupported(t reflect.Type) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
}

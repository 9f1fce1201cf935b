package codec

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"structcodec/keymap"
	"structcodec/node"
)

// Registry holds custom handlers, union and record descriptors, and the plans
// compiled from them. It is safe for concurrent use. Registrations made after
// a plan was compiled invalidate every compiled plan.
type Registry struct {
	mu       sync.RWMutex
	encoders map[reflect.Type][]handler
	decoders map[reflect.Type][]handler
	unions   map[reflect.Type]*unionLayout
	records  map[reflect.Type]*recordLayout

	derived sync.Map // reflect.Type -> *recordLayout
	plans   sync.Map // planKey -> *typePlan
	group   singleflight.Group
	gen     atomic.Uint64

	logger   *zap.Logger
	maxDepth int
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger used for plan compilation and registration
// events. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger == nil {
			logger = zap.NewNop()
		}

		r.logger = logger
	}
}

// WithMaxDepth limits the nesting depth of arrays and objects. Zero means
// unlimited.
func WithMaxDepth(depth int) Option {
	return func(r *Registry) {
		if depth < 0 {
			depth = 0
		}

		r.maxDepth = depth
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		encoders: make(map[reflect.Type][]handler),
		decoders: make(map[reflect.Type][]handler),
		unions:   make(map[reflect.Type]*unionLayout),
		records:  make(map[reflect.Type]*recordLayout),
		logger:   zap.NewNop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Default is the registry used by Encode, Decode and generated code.
var Default = NewRegistry()

type recordLayout struct {
	fields    []node.Field
	keys      *keymap.Map
	needsAddr bool
}

func newRecordLayout(fields []node.Field) (*recordLayout, error) {
	names := make([]string, len(fields))
	layout := &recordLayout{fields: fields}

	for i, f := range fields {
		names[i] = f.Name
		layout.needsAddr = layout.needsAddr || f.NeedsAddr
	}

	keys, err := keymap.New(names)
	if err != nil {
		return nil, err
	}

	layout.keys = keys

	return layout, nil
}

type unionLayout struct {
	alts   []node.Alternative
	keys   *keymap.Map
	byType map[reflect.Type]int
}

// record returns the explicit layout for t if one was registered, otherwise
// the reflection-derived one.
func (r *Registry) record(t reflect.Type) (*recordLayout, bool, error) {
	r.mu.RLock()
	layout, explicit := r.records[t]
	r.mu.RUnlock()

	if explicit {
		return layout, true, nil
	}

	if cached, ok := r.derived.Load(t); ok {
		return cached.(*recordLayout), false, nil
	}

	fields, err := node.RecordFields(t)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrInvalidDescriptor, err)
	}

	layout, err = newRecordLayout(fields)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s: %w", ErrInvalidDescriptor, t, err)
	}

	actual, _ := r.derived.LoadOrStore(t, layout)

	return actual.(*recordLayout), false, nil
}

func (r *Registry) union(t reflect.Type) (*unionLayout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.unions[t]

	return u, ok
}

// invalidateLocked drops every compiled plan. The caller holds r.mu.
func (r *Registry) invalidateLocked() {
	r.gen.Add(1)
	r.plans.Clear()
	r.logger.Debug("plan cache invalidated", zap.Uint64("generation", r.gen.Load()))
}

package kotshi

// Builder accumulates adapters and factories in call order and freezes them
// into an immutable Registry. Explicitly registered adapters and user
// factories are consulted before generated per-type factories, which in turn
// precede the built-in tail for scalars and lists.
type Builder struct {
	factories []Factory
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Add appends a factory to the chain.
func (b *Builder) Add(f Factory) *Builder {
	b.factories = append(b.factories, f)
	return b
}

// AddFunc appends a plain function as a factory.
func (b *Builder) AddFunc(f FactoryFunc) *Builder {
	return b.Add(f)
}

// AddAdapter registers an adapter for exactly the given descriptor. The
// match requires full descriptor equality, including exact qualifier set
// equality: a descriptor registered for qualifiers {A, B} matches neither a
// superset nor a subset. Independently declared qualifiers therefore combine
// by registering one adapter explicitly for their union.
func (b *Builder) AddAdapter(desc TypeDescriptor, a Adapter) *Builder {
	return b.Add(&exactFactory{desc: desc, adapter: a})
}

// Build freezes the accumulated chain, appends the built-in standard tail,
// and returns the resolver. The builder may be reused afterwards; the
// registry never observes later mutations.
func (b *Builder) Build() *Registry {
	factories := make([]Factory, 0, len(b.factories)+1)
	factories = append(factories, b.factories...)
	factories = append(factories, FactoryFunc(standardFactory))
	return &Registry{
		factories: factories,
		building:  make(map[string]*deferredAdapter),
	}
}

// exactFactory matches one descriptor by full equality.
type exactFactory struct {
	desc    TypeDescriptor
	adapter Adapter
}

func (f *exactFactory) Create(desc TypeDescriptor, _ *Registry) (Adapter, error) {
	if !f.desc.Equal(desc) {
		return nil, nil
	}
	return f.adapter, nil
}

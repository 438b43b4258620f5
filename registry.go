package kotshi

import (
	"sync"
)

// UnsupportedTypeError reports that no factory in the chain recognized a
// requested descriptor. It names the raw type and its qualifier set.
type UnsupportedTypeError struct {
	Type TypeDescriptor
}

func (e *UnsupportedTypeError) Error() string {
	return "no adapter for " + e.Type.String()
}

// Registry resolves descriptors to adapters through an ordered factory chain.
// The chain is frozen at Build time; the cache is populated lazily, one
// write-once entry per descriptor, and is safe for concurrent lookup.
type Registry struct {
	factories []Factory

	cache sync.Map // descriptor key -> Adapter

	mu       sync.Mutex
	building map[string]*deferredAdapter
}

// Adapter returns the adapter for desc, constructing and caching it on first
// use. The factory chain is walked in registration order and the first
// factory to produce an adapter wins. Resolution of a descriptor already
// being constructed, anywhere in the current type graph, yields a delegating
// placeholder that is backed by the finished adapter.
func (r *Registry) Adapter(desc TypeDescriptor) (Adapter, error) {
	key := desc.Key()
	if cached, ok := r.cache.Load(key); ok {
		return cached.(Adapter), nil
	}

	r.mu.Lock()
	if d, ok := r.building[key]; ok {
		r.mu.Unlock()
		return d, nil
	}
	d := newDeferredAdapter(desc.String())
	r.building[key] = d
	r.mu.Unlock()

	adapter, err := r.create(desc)

	r.mu.Lock()
	delete(r.building, key)
	r.mu.Unlock()

	if err != nil {
		d.fail(err)
		return nil, err
	}
	d.set(adapter)

	// Concurrent first-time resolutions may construct duplicates; the first
	// stored entry wins and every caller observes it.
	actual, _ := r.cache.LoadOrStore(key, adapter)
	return actual.(Adapter), nil
}

func (r *Registry) create(desc TypeDescriptor) (Adapter, error) {
	for _, f := range r.factories {
		a, err := f.Create(desc, r)
		if err != nil {
			return nil, err
		}
		if a != nil {
			return a, nil
		}
	}
	return nil, &UnsupportedTypeError{Type: desc}
}

package kotshi

import (
	"fmt"

	"github.com/NightlyNexus/kotshi/stream"
)

// Adapter converts values of one described type to and from their JSON text
// form, driving an external token stream. Implementations must be immutable
// after construction and safe for concurrent use.
type Adapter interface {
	// Decode consumes one complete JSON value from r and returns the
	// in-memory value it denotes.
	Decode(r *stream.Reader) (any, error)

	// Encode writes value as one complete JSON value to w.
	Encode(w *stream.Writer, value any) error
}

// Factory produces adapters for the descriptors it recognizes. A factory
// that does not recognize desc returns (nil, nil); the registry then moves on
// to the next factory in the chain. A non-nil error aborts resolution.
type Factory interface {
	Create(desc TypeDescriptor, registry *Registry) (Adapter, error)
}

// FactoryFunc adapts a plain function to the Factory interface.
type FactoryFunc func(desc TypeDescriptor, registry *Registry) (Adapter, error)

func (f FactoryFunc) Create(desc TypeDescriptor, registry *Registry) (Adapter, error) {
	return f(desc, registry)
}

// deferredAdapter stands in for an adapter whose construction is still in
// progress, so recursive type graphs resolve to the placeholder instead of
// re-entering the factory chain. It is backed by the real adapter once
// construction completes. Construction itself never decodes or encodes
// through the placeholder, it only stores it; a caller on another goroutine
// that reaches it first blocks until the type graph finishes resolving.
type deferredAdapter struct {
	name    string
	done    chan struct{}
	adapter Adapter
	err     error
}

func newDeferredAdapter(name string) *deferredAdapter {
	return &deferredAdapter{name: name, done: make(chan struct{})}
}

func (d *deferredAdapter) set(a Adapter) {
	d.adapter = a
	close(d.done)
}

func (d *deferredAdapter) fail(err error) {
	d.err = err
	close(d.done)
}

func (d *deferredAdapter) resolved() (Adapter, error) {
	<-d.done
	if d.err != nil {
		return nil, fmt.Errorf("adapter for %s never finished resolving: %w", d.name, d.err)
	}
	return d.adapter, nil
}

func (d *deferredAdapter) Decode(r *stream.Reader) (any, error) {
	a, err := d.resolved()
	if err != nil {
		return nil, err
	}
	return a.Decode(r)
}

func (d *deferredAdapter) Encode(w *stream.Writer, value any) error {
	a, err := d.resolved()
	if err != nil {
		return err
	}
	return a.Encode(w, value)
}

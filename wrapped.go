package kotshi

import (
	"github.com/NightlyNexus/kotshi/stream"
)

// WrappedAdapter performs a fixed structural transform around a delegated
// inner adapter: the JSON form is a single-key object holding a one-element
// array around the delegate's own representation. The delegate is resolved
// separately, typically for the unqualified type, so only the wrapping is
// qualifier-specific. Register instances under the exact multi-qualifier set
// they implement.
type WrappedAdapter struct {
	key      string
	delegate Adapter
}

// NewWrappedAdapter builds a combinator writing key as the wrapper object's
// single key.
func NewWrappedAdapter(key string, delegate Adapter) *WrappedAdapter {
	return &WrappedAdapter{key: key, delegate: delegate}
}

// Decode opens the wrapper object, discards its single key, opens the array,
// decodes one value through the delegate, and closes both again.
func (a *WrappedAdapter) Decode(r *stream.Reader) (any, error) {
	if err := r.BeginObject(); err != nil {
		return nil, err
	}
	if _, err := r.Name(); err != nil {
		return nil, err
	}
	if err := r.BeginArray(); err != nil {
		return nil, err
	}
	value, err := a.delegate.Decode(r)
	if err != nil {
		return nil, err
	}
	if err := r.EndArray(); err != nil {
		return nil, err
	}
	if err := r.EndObject(); err != nil {
		return nil, err
	}
	return value, nil
}

// Encode mirrors Decode, writing the fixed key name.
func (a *WrappedAdapter) Encode(w *stream.Writer, value any) error {
	if err := w.BeginObject(); err != nil {
		return err
	}
	if err := w.Name(a.key); err != nil {
		return err
	}
	if err := w.BeginArray(); err != nil {
		return err
	}
	if err := a.delegate.Encode(w, value); err != nil {
		return err
	}
	if err := w.EndArray(); err != nil {
		return err
	}
	return w.EndObject()
}

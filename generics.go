package kotshi

import (
	"bytes"
	"fmt"

	"github.com/NightlyNexus/kotshi/stream"
)

// Generic helpers as top-level functions for callers that work with byte
// slices rather than managing streams directly.

// FromJSON decodes data through the adapter resolved for desc and asserts
// the result to T.
func FromJSON[T any](registry *Registry, desc TypeDescriptor, data []byte) (T, error) {
	var zero T
	adapter, err := registry.Adapter(desc)
	if err != nil {
		return zero, err
	}
	value, err := adapter.Decode(stream.NewReader(bytes.NewReader(data)))
	if err != nil {
		return zero, err
	}
	out, ok := value.(T)
	if !ok {
		return zero, fmt.Errorf("decoded %T, want %T", value, zero)
	}
	return out, nil
}

// ToJSON encodes value through the adapter resolved for desc. A non-empty
// indent selects pretty-printed output.
func ToJSON(registry *Registry, desc TypeDescriptor, value any, indent string) ([]byte, error) {
	adapter, err := registry.Adapter(desc)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := stream.NewWriter(&buf)
	w.SetIndent(indent)
	if err := adapter.Encode(w, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

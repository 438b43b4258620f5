package kotshi

import (
	"fmt"
	"strings"

	"github.com/NightlyNexus/kotshi/stream"
)

// missingPrefix starts the aggregated error raised when required properties
// never appeared during a decode.
const missingPrefix = "The following properties were null: "

// MissingPropertiesError reports every required property that was absent
// after an object decode, in declaration order.
type MissingPropertiesError struct {
	Properties []string
}

func (e *MissingPropertiesError) Error() string {
	return missingPrefix + strings.Join(e.Properties, ", ")
}

// Property describes one declared field of a record type.
type Property struct {
	// Name is the declared field name, used in diagnostics.
	Name string
	// JSONName is the key under which the value appears in JSON text.
	JSONName string
	// Type describes the field's element type.
	Type TypeDescriptor
	// Nullable marks fields whose element type admits null.
	Nullable bool
	// Default, when non-nil, supplies the value for an absent field.
	Default func() any
	// Get reads the field from a record value during encode.
	Get func(record any) any
}

// required properties have no default and a non-nullable element type.
func (p Property) required() bool {
	return !p.Nullable && p.Default == nil
}

// absentValue marks a slot no JSON key ever filled. Distinct from an
// explicit null, which fills the slot with nil.
type absentValue struct{}

var absent any = absentValue{}

// ObjectAdapter is the compiled converter for one record type. It holds one
// resolved adapter per property and is immutable once constructed; property
// order is fixed at construction and equals declaration order.
type ObjectAdapter struct {
	name       string
	construct  func(values []any) (any, error)
	properties []Property
	adapters   []Adapter
	byJSONName map[string]int
}

// NewObjectAdapter compiles an adapter for the record type named by its
// fully qualified, dot-separated nesting path. construct receives one value
// per property, in declaration order, once decoding succeeds. Property
// adapters are resolved through registry at construction time, composing the
// dependency graph bottom-up.
func NewObjectAdapter(name string, construct func(values []any) (any, error), properties []Property, registry *Registry) (*ObjectAdapter, error) {
	o := &ObjectAdapter{
		name:       name,
		construct:  construct,
		properties: properties,
		adapters:   make([]Adapter, len(properties)),
		byJSONName: make(map[string]int, len(properties)),
	}
	for i, p := range properties {
		if _, dup := o.byJSONName[p.JSONName]; dup {
			return nil, fmt.Errorf("%s: duplicate JSON key %q", name, p.JSONName)
		}
		o.byJSONName[p.JSONName] = i
		a, err := registry.Adapter(p.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: property %s: %w", name, p.Name, err)
		}
		if p.Nullable {
			a = &nullableAdapter{delegate: a}
		}
		o.adapters[i] = a
	}
	return o, nil
}

// Decode reads one JSON object. Unknown keys are skipped structurally,
// whatever their shape. Required properties still absent when the object
// ends are reported together in one aggregated error.
func (o *ObjectAdapter) Decode(r *stream.Reader) (any, error) {
	slots := make([]any, len(o.properties))
	for i := range slots {
		slots[i] = absent
	}

	if err := r.BeginObject(); err != nil {
		return nil, err
	}
	for {
		more, err := r.HasNext()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		name, err := r.Name()
		if err != nil {
			return nil, err
		}
		i, known := o.byJSONName[name]
		if !known {
			if err := r.SkipValue(); err != nil {
				return nil, err
			}
			continue
		}
		value, err := o.adapters[i].Decode(r)
		if err != nil {
			return nil, err
		}
		slots[i] = value
	}
	if err := r.EndObject(); err != nil {
		return nil, err
	}

	var missing []string
	for i, p := range o.properties {
		if slots[i] == absent && p.required() {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingPropertiesError{Properties: missing}
	}

	for i, p := range o.properties {
		if slots[i] != absent {
			continue
		}
		if p.Default != nil {
			slots[i] = p.Default()
		} else {
			slots[i] = nil
		}
	}
	return o.construct(slots)
}

// Encode writes the declared properties strictly in declaration order. Only
// declared properties are emitted; the output reflects declared shape, never
// input shape.
func (o *ObjectAdapter) Encode(w *stream.Writer, value any) error {
	if err := w.BeginObject(); err != nil {
		return err
	}
	for i, p := range o.properties {
		if err := w.Name(p.JSONName); err != nil {
			return err
		}
		if err := o.adapters[i].Encode(w, p.Get(value)); err != nil {
			return fmt.Errorf("%s: property %s: %w", o.name, p.Name, err)
		}
	}
	return w.EndObject()
}

// String returns the stable diagnostic identity of the generated adapter.
func (o *ObjectAdapter) String() string {
	return "GeneratedJsonAdapter(" + o.name + ")"
}

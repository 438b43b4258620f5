package kotshi

import (
	"fmt"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/NightlyNexus/kotshi/stream"
)

// Raw type names the built-in standard factory recognizes.
const (
	TypeString  = "String"
	TypeInt     = "Int"
	TypeFloat   = "Float"
	TypeBoolean = "Boolean"
	TypeAny     = "Any"
	TypeList    = "List"
)

// standardFactory is the built-in tail of every chain: unqualified scalars
// and List specializations. Qualified descriptors always fall through so a
// qualifier never silently resolves to the plain adapter.
func standardFactory(desc TypeDescriptor, registry *Registry) (Adapter, error) {
	if len(desc.Qualifiers) > 0 {
		return nil, nil
	}
	switch desc.Raw {
	case TypeString:
		if len(desc.Args) == 0 {
			return stringAdapter{}, nil
		}
	case TypeInt:
		if len(desc.Args) == 0 {
			return intAdapter{}, nil
		}
	case TypeFloat:
		if len(desc.Args) == 0 {
			return floatAdapter{}, nil
		}
	case TypeBoolean:
		if len(desc.Args) == 0 {
			return boolAdapter{}, nil
		}
	case TypeAny:
		if len(desc.Args) == 0 {
			return anyAdapter{}, nil
		}
	case TypeList:
		if len(desc.Args) == 1 {
			element, err := registry.Adapter(desc.Args[0])
			if err != nil {
				return nil, err
			}
			return &listAdapter{element: element}, nil
		}
	}
	return nil, nil
}

type stringAdapter struct{}

func (stringAdapter) Decode(r *stream.Reader) (any, error) {
	return r.ReadString()
}

func (stringAdapter) Encode(w *stream.Writer, value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return w.WriteString(s)
}

type intAdapter struct{}

func (intAdapter) Decode(r *stream.Reader) (any, error) {
	n, err := r.ReadNumber()
	if err != nil {
		return nil, err
	}
	return n.Int64()
}

func (intAdapter) Encode(w *stream.Writer, value any) error {
	switch v := value.(type) {
	case int64:
		return w.WriteNumber(json.Number(strconv.FormatInt(v, 10)))
	case int:
		return w.WriteNumber(json.Number(strconv.Itoa(v)))
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

type floatAdapter struct{}

func (floatAdapter) Decode(r *stream.Reader) (any, error) {
	n, err := r.ReadNumber()
	if err != nil {
		return nil, err
	}
	return n.Float64()
}

func (floatAdapter) Encode(w *stream.Writer, value any) error {
	f, ok := value.(float64)
	if !ok {
		return fmt.Errorf("expected float64, got %T", value)
	}
	return w.WriteNumber(json.Number(strconv.FormatFloat(f, 'g', -1, 64)))
}

type boolAdapter struct{}

func (boolAdapter) Decode(r *stream.Reader) (any, error) {
	return r.ReadBool()
}

func (boolAdapter) Encode(w *stream.Writer, value any) error {
	b, ok := value.(bool)
	if !ok {
		return fmt.Errorf("expected bool, got %T", value)
	}
	return w.WriteBool(b)
}

// anyAdapter converts arbitrarily shaped values. Objects decode to
// map[string]any, so their key order is not preserved across a round trip.
type anyAdapter struct{}

func (a anyAdapter) Decode(r *stream.Reader) (any, error) {
	k, err := r.Peek()
	if err != nil {
		return nil, err
	}
	switch k {
	case stream.KindBeginObject:
		out := map[string]any{}
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
			value, err := a.Decode(r)
			if err != nil {
				return nil, err
			}
			out[name] = value
		}
		return out, r.EndObject()
	case stream.KindBeginArray:
		out := []any{}
		if err := r.BeginArray(); err != nil {
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
			value, err := a.Decode(r)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, r.EndArray()
	case stream.KindString:
		return r.ReadString()
	case stream.KindNumber:
		return r.ReadNumber()
	case stream.KindBool:
		return r.ReadBool()
	case stream.KindNull:
		return nil, r.ReadNull()
	default:
		return nil, fmt.Errorf("unexpected token %s", k)
	}
}

func (a anyAdapter) Encode(w *stream.Writer, value any) error {
	switch v := value.(type) {
	case nil:
		return w.WriteNull()
	case map[string]any:
		if err := w.BeginObject(); err != nil {
			return err
		}
		for name, item := range v {
			if err := w.Name(name); err != nil {
				return err
			}
			if err := a.Encode(w, item); err != nil {
				return err
			}
		}
		return w.EndObject()
	case []any:
		if err := w.BeginArray(); err != nil {
			return err
		}
		for _, item := range v {
			if err := a.Encode(w, item); err != nil {
				return err
			}
		}
		return w.EndArray()
	case string:
		return w.WriteString(v)
	case json.Number:
		return w.WriteNumber(v)
	case int:
		return w.WriteNumber(json.Number(strconv.Itoa(v)))
	case int64:
		return w.WriteNumber(json.Number(strconv.FormatInt(v, 10)))
	case float64:
		return w.WriteNumber(json.Number(strconv.FormatFloat(v, 'g', -1, 64)))
	case bool:
		return w.WriteBool(v)
	default:
		return fmt.Errorf("cannot encode %T", value)
	}
}

// listAdapter is the List<T> specialization, closed over the adapter the
// registry resolved for the instantiation's element descriptor.
type listAdapter struct {
	element Adapter
}

func (l *listAdapter) Decode(r *stream.Reader) (any, error) {
	out := []any{}
	if err := r.BeginArray(); err != nil {
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
		value, err := l.element.Decode(r)
		if err != nil {
			return nil, err
		}
		out = append(out, value)
	}
	return out, r.EndArray()
}

func (l *listAdapter) Encode(w *stream.Writer, value any) error {
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected []any, got %T", value)
	}
	if err := w.BeginArray(); err != nil {
		return err
	}
	for _, item := range items {
		if err := l.element.Encode(w, item); err != nil {
			return err
		}
	}
	return w.EndArray()
}

// nullableAdapter admits null for its delegate's type; nil values encode as
// null.
type nullableAdapter struct {
	delegate Adapter
}

// Nullable wraps delegate so null decodes to nil and nil encodes to null.
func Nullable(delegate Adapter) Adapter {
	return &nullableAdapter{delegate: delegate}
}

func (n *nullableAdapter) Decode(r *stream.Reader) (any, error) {
	k, err := r.Peek()
	if err != nil {
		return nil, err
	}
	if k == stream.KindNull {
		return nil, r.ReadNull()
	}
	return n.delegate.Decode(r)
}

func (n *nullableAdapter) Encode(w *stream.Writer, value any) error {
	if value == nil {
		return w.WriteNull()
	}
	return n.delegate.Encode(w, value)
}

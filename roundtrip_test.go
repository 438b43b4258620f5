package kotshi

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NightlyNexus/kotshi/stream"
)

// Composite fixture covering nesting, lists, and scalar variety.
type innerValue struct {
	Flag bool
}

type outerValue struct {
	Name  string
	Count int64
	Tags  []any
	Inner innerValue
}

func outerFactory(desc TypeDescriptor, registry *Registry) (Adapter, error) {
	switch {
	case desc.Equal(NewType("Inner")):
		return NewObjectAdapter(
			"Outer.Inner",
			func(values []any) (any, error) {
				return innerValue{Flag: values[0].(bool)}, nil
			},
			[]Property{
				{
					Name:     "flag",
					JSONName: "flag",
					Type:     NewType(TypeBoolean),
					Get:      func(record any) any { return record.(innerValue).Flag },
				},
			},
			registry,
		)
	case desc.Equal(NewType("Outer")):
		return NewObjectAdapter(
			"Outer",
			func(values []any) (any, error) {
				return outerValue{
					Name:  values[0].(string),
					Count: values[1].(int64),
					Tags:  values[2].([]any),
					Inner: values[3].(innerValue),
				}, nil
			},
			[]Property{
				{
					Name:     "name",
					JSONName: "name",
					Type:     NewType(TypeString),
					Get:      func(record any) any { return record.(outerValue).Name },
				},
				{
					Name:     "count",
					JSONName: "count",
					Type:     NewType(TypeInt),
					Get:      func(record any) any { return record.(outerValue).Count },
				},
				{
					Name:     "tags",
					JSONName: "tags",
					Type:     NewType(TypeList, NewType(TypeString)),
					Get:      func(record any) any { return record.(outerValue).Tags },
				},
				{
					Name:     "inner",
					JSONName: "inner",
					Type:     NewType("Inner"),
					Get:      func(record any) any { return record.(outerValue).Inner },
				},
			},
			registry,
		)
	}
	return nil, nil
}

const outerPretty = `{
  "name": "Hello",
  "count": 2,
  "tags": [
    "a",
    "b"
  ],
  "inner": {
    "flag": true
  }
}`

func TestRoundTrip_PrettyByteIdentical(t *testing.T) {
	registry := NewBuilder().AddFunc(outerFactory).Build()

	value, err := FromJSON[outerValue](registry, NewType("Outer"), []byte(outerPretty))
	require.NoError(t, err)

	want := outerValue{Name: "Hello", Count: 2, Tags: []any{"a", "b"}, Inner: innerValue{Flag: true}}
	require.Equal(t, want, value, spew.Sdump(value))

	text, err := ToJSON(registry, NewType("Outer"), value, "  ")
	require.NoError(t, err)
	assert.Equal(t, outerPretty, string(text))
}

func TestRoundTrip_CompactByteIdentical(t *testing.T) {
	registry := NewBuilder().AddFunc(outerFactory).Build()
	compact := `{"name":"Hello","count":2,"tags":["a","b"],"inner":{"flag":true}}`

	value, err := FromJSON[outerValue](registry, NewType("Outer"), []byte(compact))
	require.NoError(t, err)

	text, err := ToJSON(registry, NewType("Outer"), value, "")
	require.NoError(t, err)
	assert.Equal(t, compact, string(text))
}

func TestRoundTrip_DoubleCycleIsIdempotent(t *testing.T) {
	registry := NewBuilder().AddFunc(outerFactory).Build()
	compact := `{"name":"Hello","count":2,"tags":["a","b"],"inner":{"flag":true}}`

	once, err := FromJSON[outerValue](registry, NewType("Outer"), []byte(compact))
	require.NoError(t, err)
	onceText, err := ToJSON(registry, NewType("Outer"), once, "")
	require.NoError(t, err)

	twice, err := FromJSON[outerValue](registry, NewType("Outer"), onceText)
	require.NoError(t, err)
	twiceText, err := ToJSON(registry, NewType("Outer"), twice, "")
	require.NoError(t, err)

	assert.Equal(t, string(onceText), string(twiceText))
	assert.Equal(t, once, twice, spew.Sdump(once, twice))
}

func TestRoundTrip_UnknownKeysNeverRoundTrip(t *testing.T) {
	registry := NewBuilder().AddFunc(outerFactory).Build()

	// Unknown keys are absorbed on decode and never re-emitted: output
	// reflects declared shape, not input shape.
	input := `{"name":"Hello","unknown":{"a":[1,2]},"count":2,"tags":["a","b"],"inner":{"flag":true},"zzz":null}`
	value, err := FromJSON[outerValue](registry, NewType("Outer"), []byte(input))
	require.NoError(t, err)

	text, err := ToJSON(registry, NewType("Outer"), value, "")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Hello","count":2,"tags":["a","b"],"inner":{"flag":true}}`, string(text))
}

func TestRoundTrip_NumberLiteralsPreserved(t *testing.T) {
	registry := NewBuilder().Build()

	// The Any adapter carries numeric literals verbatim.
	text := `[1.50,0.001,12e3]`
	value, err := FromJSON[[]any](registry, NewType(TypeList, NewType(TypeAny)), []byte(text))
	require.NoError(t, err)

	out, err := ToJSON(registry, NewType(TypeList, NewType(TypeAny)), value, "")
	require.NoError(t, err)
	assert.Equal(t, text, string(out))
}

func TestRoundTrip_MalformedInputSurfacesReaderError(t *testing.T) {
	registry := NewBuilder().AddFunc(outerFactory).Build()
	adapter, err := registry.Adapter(NewType("Outer"))
	require.NoError(t, err)

	_, err = adapter.Decode(stream.NewReader(strings.NewReader(`{"name":"Hello",`)))
	require.Error(t, err)

	var missing *MissingPropertiesError
	assert.False(t, errors.As(err, &missing), "structural failures must not masquerade as missing properties")
}

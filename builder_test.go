package kotshi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NightlyNexus/kotshi/stream"
)

// upperStringAdapter decodes strings upper-cased, to make factory precedence
// observable.
type upperStringAdapter struct{}

func (upperStringAdapter) Decode(r *stream.Reader) (any, error) {
	s, err := r.ReadString()
	if err != nil {
		return nil, err
	}
	b := []byte(s)
	for i := range b {
		if 'a' <= b[i] && b[i] <= 'z' {
			b[i] = b[i] - 'a' + 'A'
		}
	}
	return string(b), nil
}

func (upperStringAdapter) Encode(w *stream.Writer, value any) error {
	return w.WriteString(value.(string))
}

func TestBuilder_UserFactoriesPrecedeStandardTail(t *testing.T) {
	registry := NewBuilder().
		AddAdapter(NewType(TypeString), upperStringAdapter{}).
		Build()

	value, err := FromJSON[string](registry, NewType(TypeString), []byte(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, "HELLO", value)
}

func TestBuilder_StandardTailServesUnregisteredScalars(t *testing.T) {
	registry := NewBuilder().Build()

	value, err := FromJSON[string](registry, NewType(TypeString), []byte(`"hello"`))
	require.NoError(t, err)
	assert.Equal(t, "hello", value)

	n, err := FromJSON[int64](registry, NewType(TypeInt), []byte(`7`))
	require.NoError(t, err)
	assert.Equal(t, int64(7), n)

	b, err := FromJSON[bool](registry, NewType(TypeBoolean), []byte(`true`))
	require.NoError(t, err)
	assert.True(t, b)

	f, err := FromJSON[float64](registry, NewType(TypeFloat), []byte(`2.5`))
	require.NoError(t, err)
	assert.Equal(t, 2.5, f)
}

func TestBuilder_QualifiedScalarNeverFallsBackToPlainAdapter(t *testing.T) {
	registry := NewBuilder().Build()

	_, err := registry.Adapter(NewType(TypeString).WithQualifiers(NewQualifier("Tag")))
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
}

func TestBuilder_BuildFreezesTheChain(t *testing.T) {
	builder := NewBuilder()
	registry := builder.Build()

	// A factory added after Build must not be visible to the frozen chain.
	builder.AddAdapter(NewType("Late"), upperStringAdapter{})

	_, err := registry.Adapter(NewType("Late"))
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)

	// A registry built afterwards sees it.
	rebuilt := builder.Build()
	_, err = rebuilt.Adapter(NewType("Late"))
	require.NoError(t, err)
}

func TestBuilder_ListSpecialization(t *testing.T) {
	registry := NewBuilder().Build()

	values, err := FromJSON[[]any](registry, NewType(TypeList, NewType(TypeString)), []byte(`["a","b"]`))
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, values)

	text, err := ToJSON(registry, NewType(TypeList, NewType(TypeString)), []any{"a", "b"}, "")
	require.NoError(t, err)
	assert.Equal(t, `["a","b"]`, string(text))
}

func TestBuilder_ListOfQualifiedElementResolvesThroughChain(t *testing.T) {
	registry := NewBuilder().
		AddAdapter(NewType(TypeString).WithQualifiers(NewQualifier("Upper")), upperStringAdapter{}).
		Build()

	element := NewType(TypeString).WithQualifiers(NewQualifier("Upper"))
	values, err := FromJSON[[]any](registry, NewType(TypeList, element), []byte(`["a","b"]`))
	require.NoError(t, err)
	assert.Equal(t, []any{"A", "B"}, values)
}

package kotshi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromJSON_AssertsDecodedType(t *testing.T) {
	registry := NewBuilder().Build()

	_, err := FromJSON[int64](registry, NewType(TypeString), []byte(`"x"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoded string, want int64")
}

func TestFromJSON_UnsupportedTypeSurfaces(t *testing.T) {
	registry := NewBuilder().Build()

	_, err := FromJSON[string](registry, NewType("Mystery"), []byte(`"x"`))
	var unsupported *UnsupportedTypeError
	require.ErrorAs(t, err, &unsupported)
}

func TestToJSON_EncodeErrorSurfaces(t *testing.T) {
	registry := NewBuilder().Build()

	_, err := ToJSON(registry, NewType(TypeString), 42, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected string")
}

package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type opaque struct{ n int }

func TestAlways(t *testing.T) {
	values := []any{42, "hi mom", nil, "", opaque{n: 1}, []int{1, 2, 3}}
	for _, v := range values {
		assert.Nil(t, Always().Match(v))
	}
}

func TestAlways_String(t *testing.T) {
	assert.Equal(t, "Always()", Always().String())
}

func TestNever(t *testing.T) {
	values := []any{42, "hi mom", nil, "", opaque{n: 1}}
	for _, v := range values {
		assert.NotNil(t, Never().Match(v))
	}
}

func TestNever_String(t *testing.T) {
	assert.Equal(t, "Never()", Never().String())
}

func TestNever_DescriptionIncludesValue(t *testing.T) {
	mm := Never().Match(42)
	require.NotNil(t, mm)
	assert.Equal(t, "Inevitable mismatch on 42", mm.Describe())
	assert.Contains(t, mm.Describe(), "42")
}

func TestNever_Idempotent(t *testing.T) {
	// Re-evaluating a pure matcher yields bit-identical descriptions.
	first := Never().Match("boom").Describe()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Never().Match("boom").Describe())
	}
}

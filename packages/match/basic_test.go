package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquals(t *testing.T) {
	assert.Nil(t, Equals(42).Match(42))
	assert.Nil(t, Equals("a").Match("a"))
	assert.Nil(t, Equals([]int{1, 2}).Match([]int{1, 2}))
}

func TestEquals_Mismatch(t *testing.T) {
	mm := Equals(42).Match(43)
	require.NotNil(t, mm)
	assert.Contains(t, mm.Describe(), "42")
	assert.Contains(t, mm.Describe(), "43")
}

func TestEquals_TypeMismatchIsMismatchNotError(t *testing.T) {
	// int vs string must mismatch cleanly, never coerce or panic.
	assert.NotNil(t, Equals(42).Match("42"))
	assert.NotNil(t, Equals("42").Match(42))
	assert.NotNil(t, Equals(42).Match(nil))
}

func TestEquals_String(t *testing.T) {
	assert.Equal(t, "Equals(42)", Equals(42).String())
}

func TestContains_String(t *testing.T) {
	assert.Nil(t, Contains("mom").Match("hi mom"))
	mm := Contains("dad").Match("hi mom")
	require.NotNil(t, mm)
	assert.Contains(t, mm.Describe(), "dad")
	assert.Contains(t, mm.Describe(), "hi mom")
}

func TestContains_Slice(t *testing.T) {
	assert.Nil(t, Contains(2).Match([]int{1, 2, 3}))
	assert.NotNil(t, Contains(4).Match([]int{1, 2, 3}))
}

func TestContains_MapKeys(t *testing.T) {
	m := map[string]int{"a": 1, "b": 2}
	assert.Nil(t, Contains("a").Match(m))
	assert.NotNil(t, Contains("c").Match(m))
}

func TestContains_NoSilentCoercion(t *testing.T) {
	// A non-string needle against a string haystack is a mismatch, not an error.
	assert.NotNil(t, Contains(4).Match("1234"))
	assert.NotNil(t, Contains("2").Match([]int{1, 2, 3}))
	assert.NotNil(t, Contains("x").Match(42))
	assert.NotNil(t, Contains("x").Match(nil))
}

func TestNot(t *testing.T) {
	assert.Nil(t, Not(Never()).Match(42))
	mm := Not(Always()).Match(42)
	require.NotNil(t, mm)
	assert.Contains(t, mm.Describe(), "Always()")
}

func TestAfterPreprocessing(t *testing.T) {
	upper := func(v any) any {
		s, ok := v.(string)
		if !ok {
			return v
		}
		return strings.ToUpper(s)
	}

	m := AfterPreprocessing(upper, Equals("HI"))
	assert.Nil(t, m.Match("hi"))

	// The mismatch describes the transformed value, not the original.
	mm := m.Match("bye")
	require.NotNil(t, mm)
	assert.Contains(t, mm.Describe(), "BYE")
	assert.NotContains(t, mm.Describe(), "bye")
}

func TestAfterPreprocessing_String(t *testing.T) {
	m := AfterPreprocessing(func(v any) any { return v }, Equals(1))
	assert.Equal(t, "AfterPreprocessing(<function>, Equals(1))", m.String())
}

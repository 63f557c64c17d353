package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPath(t *testing.T) {
	doc := `{"user": {"name": "John", "age": 30}, "items": [1, 2, 3]}`

	assert.Nil(t, JSONPath("user.name", Equals("John")).Match(doc))
	assert.Nil(t, JSONPath("items.1", Equals(float64(2))).Match(doc))
	assert.Nil(t, JSONPath("user.name", Contains("oh")).Match([]byte(doc)))
}

func TestJSONPath_MissingPath(t *testing.T) {
	mm := JSONPath("user.email", Always()).Match(`{"user": {}}`)
	require.NotNil(t, mm)
	assert.Contains(t, mm.Describe(), `"user.email"`)
}

func TestJSONPath_NotADocument(t *testing.T) {
	assert.NotNil(t, JSONPath("a", Always()).Match(42))
	assert.NotNil(t, JSONPath("a", Always()).Match(nil))
}

func TestJSONPath_String(t *testing.T) {
	m := JSONPath("user.name", Equals("John"))
	assert.Equal(t, `JSONPath("user.name", Equals(John))`, m.String())
}

var userSchema = []byte(`{
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"},
		"age": {"type": "integer", "minimum": 0}
	}
}`)

func TestMatchesSchema(t *testing.T) {
	m := MatchesSchema(userSchema)
	assert.Nil(t, m.Match(`{"name": "John", "age": 30}`))
	assert.Nil(t, m.Match(map[string]any{"name": "John"}))
}

func TestMatchesSchema_Invalid(t *testing.T) {
	m := MatchesSchema(userSchema)

	mm := m.Match(`{"age": -1}`)
	require.NotNil(t, mm)
	assert.Contains(t, mm.Describe(), "does not satisfy schema")
}

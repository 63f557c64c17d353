package match

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xeipuuv/gojsonschema"
)

type jsonPathMatcher struct {
	path    string
	matcher Matcher
}

// JSONPath returns a matcher that extracts a gjson path from a JSON document
// (string or []byte) and delegates the extracted value to matcher. A missing
// path or a non-document candidate is a mismatch.
func JSONPath(path string, matcher Matcher) Matcher {
	return &jsonPathMatcher{path: path, matcher: matcher}
}

func (m *jsonPathMatcher) Match(value any) Mismatch {
	var doc string
	switch v := value.(type) {
	case string:
		doc = v
	case []byte:
		doc = string(v)
	case json.RawMessage:
		doc = string(v)
	default:
		return Mismatchf("%v is not a JSON document", value)
	}

	res := gjson.Get(doc, m.path)
	if !res.Exists() {
		return Mismatchf("path %q not found in %s", m.path, doc)
	}
	return m.matcher.Match(res.Value())
}

func (m *jsonPathMatcher) String() string {
	return fmt.Sprintf("JSONPath(%q, %v)", m.path, m.matcher)
}

type schemaMatcher struct {
	schema []byte
}

// MatchesSchema returns a matcher that validates the candidate against a
// JSON Schema. Text candidates are validated as-is; anything else is
// marshalled to JSON first. Validation errors aggregate into one mismatch.
func MatchesSchema(schema []byte) Matcher {
	return &schemaMatcher{schema: schema}
}

func (m *schemaMatcher) Match(value any) Mismatch {
	var doc []byte
	switch v := value.(type) {
	case string:
		doc = []byte(v)
	case []byte:
		doc = v
	case json.RawMessage:
		doc = v
	default:
		marshalled, err := json.Marshal(value)
		if err != nil {
			return Mismatchf("%v is not representable as JSON: %v", value, err)
		}
		doc = marshalled
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(m.schema),
		gojsonschema.NewBytesLoader(doc),
	)
	if err != nil {
		return Mismatchf("schema validation of %s failed: %v", doc, err)
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return Mismatchf("%s does not satisfy schema: %s", doc, strings.Join(errs, "; "))
}

func (m *schemaMatcher) String() string {
	return "MatchesSchema(<schema>)"
}

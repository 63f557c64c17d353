package match

import (
	"fmt"
	"reflect"
	"strings"
)

type equalsMatcher struct {
	expected any
}

// Equals returns a matcher that matches values deeply equal to expected.
// A type mismatch is an ordinary mismatch, never an error.
func Equals(expected any) Matcher {
	return &equalsMatcher{expected: expected}
}

func (m *equalsMatcher) Match(value any) Mismatch {
	if reflect.DeepEqual(m.expected, value) {
		return nil
	}
	return Mismatchf("%v != %v", m.expected, value)
}

func (m *equalsMatcher) String() string {
	return fmt.Sprintf("Equals(%v)", m.expected)
}

type containsMatcher struct {
	needle any
}

// Contains returns a matcher that matches when needle is found in the
// candidate: substring containment for text, element membership for slices
// and arrays, key membership for maps. Anything else mismatches.
func Contains(needle any) Matcher {
	return &containsMatcher{needle: needle}
}

func (m *containsMatcher) Match(value any) Mismatch {
	switch haystack := value.(type) {
	case string:
		s, ok := m.needle.(string)
		if !ok {
			return Mismatchf("%v is not a string, cannot be contained in %q", m.needle, haystack)
		}
		if strings.Contains(haystack, s) {
			return nil
		}
		return Mismatchf("%v not in %v", m.needle, value)
	case []byte:
		s, ok := m.needle.(string)
		if !ok {
			return Mismatchf("%v is not a string, cannot be contained in %q", m.needle, haystack)
		}
		if strings.Contains(string(haystack), s) {
			return nil
		}
		return Mismatchf("%v not in %s", m.needle, haystack)
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if reflect.DeepEqual(rv.Index(i).Interface(), m.needle) {
				return nil
			}
		}
	case reflect.Map:
		needle := reflect.ValueOf(m.needle)
		if needle.IsValid() && needle.Type().AssignableTo(rv.Type().Key()) {
			if rv.MapIndex(needle).IsValid() {
				return nil
			}
		}
	}
	return Mismatchf("%v not in %v", m.needle, value)
}

func (m *containsMatcher) String() string {
	return fmt.Sprintf("Contains(%v)", m.needle)
}

type notMatcher struct {
	matcher Matcher
}

// Not inverts a matcher.
func Not(matcher Matcher) Matcher {
	return &notMatcher{matcher: matcher}
}

func (m *notMatcher) Match(value any) Mismatch {
	if m.matcher.Match(value) == nil {
		return Mismatchf("%v matches %v", value, m.matcher)
	}
	return nil
}

func (m *notMatcher) String() string {
	return fmt.Sprintf("Not(%v)", m.matcher)
}

type afterPreprocessingMatcher struct {
	fn      func(any) any
	matcher Matcher
}

// AfterPreprocessing returns a matcher that applies fn to the candidate value
// and delegates the result to matcher. A mismatch describes the transformed
// value, not the original; callers needing traceability should encode it in
// fn's output.
func AfterPreprocessing(fn func(any) any, matcher Matcher) Matcher {
	return &afterPreprocessingMatcher{fn: fn, matcher: matcher}
}

func (m *afterPreprocessingMatcher) Match(value any) Mismatch {
	return m.matcher.Match(m.fn(value))
}

func (m *afterPreprocessingMatcher) String() string {
	return fmt.Sprintf("AfterPreprocessing(<function>, %v)", m.matcher)
}

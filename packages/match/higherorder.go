package match

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
)

type matchesAllMatcher struct {
	matchers []Matcher
}

// MatchesAll returns a matcher that matches when every child matcher matches.
// All failing children are reported, in argument order.
func MatchesAll(matchers ...Matcher) Matcher {
	return &matchesAllMatcher{matchers: matchers}
}

func (m *matchesAllMatcher) Match(value any) Mismatch {
	var failures []string
	for _, child := range m.matchers {
		if mm := child.Match(value); mm != nil {
			failures = append(failures, mm.Describe())
		}
	}
	if len(failures) == 0 {
		return nil
	}
	return Mismatchf("differences: [%s]", strings.Join(failures, "; "))
}

func (m *matchesAllMatcher) String() string {
	parts := make([]string, len(m.matchers))
	for i, child := range m.matchers {
		parts[i] = child.String()
	}
	return fmt.Sprintf("MatchesAll(%s)", strings.Join(parts, ", "))
}

// IndexMismatch reports the earliest failing position of a listwise match.
type IndexMismatch struct {
	Index int
	Cause Mismatch
}

func (m *IndexMismatch) Describe() string {
	return fmt.Sprintf("mismatch at index %d: %s", m.Index, m.Cause.Describe())
}

type matchesListwiseMatcher struct {
	matchers []Matcher
}

// MatchesListwise returns a matcher over sequences: the candidate must be a
// slice or array of the same length, and position i must satisfy matcher i.
// Unlike MatchesDict, it fails fast on the earliest failing position.
func MatchesListwise(matchers ...Matcher) Matcher {
	return &matchesListwiseMatcher{matchers: matchers}
}

func (m *matchesListwiseMatcher) Match(value any) Mismatch {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return Mismatchf("%v is not a sequence", value)
	}
	if rv.Len() != len(m.matchers) {
		return Mismatchf("expected a sequence of %d values, got %d", len(m.matchers), rv.Len())
	}
	for i, child := range m.matchers {
		if mm := child.Match(rv.Index(i).Interface()); mm != nil {
			return &IndexMismatch{Index: i, Cause: mm}
		}
	}
	return nil
}

func (m *matchesListwiseMatcher) String() string {
	parts := make([]string, len(m.matchers))
	for i, child := range m.matchers {
		parts[i] = child.String()
	}
	return fmt.Sprintf("MatchesListwise(%s)", strings.Join(parts, ", "))
}

// DictMismatch aggregates every failing key of a MatchesDict evaluation.
// ByKey maps each failing key to the child mismatch for that key's value.
type DictMismatch struct {
	Missing []string
	Extra   []string
	ByKey   map[string]Mismatch
}

func (m *DictMismatch) Describe() string {
	var parts []string
	if len(m.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing keys: %v", m.Missing))
	}
	if len(m.Extra) > 0 {
		parts = append(parts, fmt.Sprintf("unexpected keys: %v", m.Extra))
	}
	keys := make([]string, 0, len(m.ByKey))
	for k := range m.ByKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m.ByKey[k].Describe()))
	}
	return strings.Join(parts, "; ")
}

type matchesDictMatcher struct {
	spec map[string]Matcher
}

// MatchesDict returns a matcher over string-keyed mappings. The candidate
// must have exactly the spec's key set, and every key's value must satisfy
// its matcher. All failing keys are reported, not just the first.
func MatchesDict(spec map[string]Matcher) Matcher {
	return &matchesDictMatcher{spec: spec}
}

func (m *matchesDictMatcher) Match(value any) Mismatch {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return Mismatchf("%v is not a string-keyed mapping", value)
	}

	candidate := make(map[string]any, rv.Len())
	for _, key := range rv.MapKeys() {
		candidate[key.String()] = rv.MapIndex(key).Interface()
	}

	mismatch := &DictMismatch{ByKey: make(map[string]Mismatch)}
	for key, child := range m.spec {
		got, ok := candidate[key]
		if !ok {
			mismatch.Missing = append(mismatch.Missing, key)
			continue
		}
		if mm := child.Match(got); mm != nil {
			mismatch.ByKey[key] = mm
		}
	}
	for key := range candidate {
		if _, ok := m.spec[key]; !ok {
			mismatch.Extra = append(mismatch.Extra, key)
		}
	}
	sort.Strings(mismatch.Missing)
	sort.Strings(mismatch.Extra)

	if len(mismatch.Missing) == 0 && len(mismatch.Extra) == 0 && len(mismatch.ByKey) == 0 {
		return nil
	}
	return mismatch
}

func (m *matchesDictMatcher) String() string {
	keys := make([]string, 0, len(m.spec))
	for k := range m.spec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%q: %v", k, m.spec[k])
	}
	return fmt.Sprintf("MatchesDict({%s})", strings.Join(parts, ", "))
}

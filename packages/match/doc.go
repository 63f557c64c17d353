// Package match provides composable value matchers for matchspec.
//
// A Matcher decides whether a value satisfies a condition and, when it does
// not, produces a Mismatch explaining why. Matchers compose:
//   - Always / Never (constant results)
//   - Equals, Contains, Not (basic predicates)
//   - AfterPreprocessing (transform the value before matching)
//   - MatchesAll, MatchesListwise, MatchesDict (structural combinators)
//   - JSONPath, MatchesSchema (JSON document matching)
//
// All matchers are immutable and safe for concurrent use.
package match

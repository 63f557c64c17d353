// Package scenario loads declarative lifecycle suites from YAML files and
// verifies run results against their expectations.
//
// A suite file names cases by behavior keyword:
//
//	suite: lifecycle-conformance
//	cases:
//	  - name: body-errors
//	    body: error
//	    expect: error
//	    detailContains: arbitrary error
//	  - name: teardown-breaks
//	    tearDown: error-after-upcall
//	    expect: error
//
// Verification is matcher-based: the expectations compile to matchers that
// evaluate the recorded case results.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
	"github.com/abdul-hamid-achik/matchspec/packages/lifecycle"
	"github.com/abdul-hamid-achik/matchspec/packages/match"
	"github.com/abdul-hamid-achik/matchspec/packages/samples"
)

type Suite struct {
	Name  string     `yaml:"suite"`
	Cases []CaseSpec `yaml:"cases"`
}

type CaseSpec struct {
	Name     string   `yaml:"name"`
	SetUp    string   `yaml:"setUp,omitempty"`
	Body     string   `yaml:"body,omitempty"`
	TearDown string   `yaml:"tearDown,omitempty"`
	Cleanups []string `yaml:"cleanups,omitempty"`

	// Expectations, verified against the run result.
	Expect         string `yaml:"expect,omitempty"`
	DetailContains string `yaml:"detailContains,omitempty"`
}

// Load reads and validates a suite file.
func Load(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading suite: %w", err)
	}

	var suite Suite
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing suite %s: %w", path, err)
	}
	if suite.Name == "" {
		suite.Name = path
	}
	if len(suite.Cases) == 0 {
		return nil, fmt.Errorf("suite %s defines no cases", path)
	}
	for i, spec := range suite.Cases {
		if spec.Name == "" {
			return nil, fmt.Errorf("suite %s: case %d has no name", path, i)
		}
	}
	return &suite, nil
}

// Build constructs the lifecycle cases described by the suite.
func (s *Suite) Build() ([]*lifecycle.Case, error) {
	cases := make([]*lifecycle.Case, 0, len(s.Cases))
	for _, spec := range s.Cases {
		c, err := spec.build()
		if err != nil {
			return nil, fmt.Errorf("case %q: %w", spec.Name, err)
		}
		cases = append(cases, c)
	}
	return cases, nil
}

func (spec *CaseSpec) build() (*lifecycle.Case, error) {
	var opts []lifecycle.Option

	setUp, err := samples.SetUpBehavior(spec.SetUp)
	if err != nil {
		return nil, err
	}
	if setUp != nil {
		opts = append(opts, lifecycle.WithSetUp(setUp))
	}

	body, err := samples.Behavior(spec.Body)
	if err != nil {
		return nil, err
	}
	opts = append(opts, lifecycle.WithBody(body))

	tearDown, err := samples.TearDownBehavior(spec.TearDown)
	if err != nil {
		return nil, err
	}
	if tearDown != nil {
		opts = append(opts, lifecycle.WithTearDown(tearDown))
	}

	if len(spec.Cleanups) > 0 {
		cleanups := make([]lifecycle.Phase, 0, len(spec.Cleanups))
		for _, name := range spec.Cleanups {
			cleanup, err := samples.Behavior(name)
			if err != nil {
				return nil, err
			}
			cleanups = append(cleanups, cleanup)
		}
		opts = append(opts, lifecycle.WithCleanups(cleanups...))
	}

	return lifecycle.NewCase(spec.Name, opts...), nil
}

// Verify checks every expectation of the suite against a run result and
// returns one error per violated expectation.
func (s *Suite) Verify(run *runner.RunResult) []error {
	byName := make(map[string]*runner.CaseResult, len(run.Results))
	for _, cr := range run.Results {
		byName[cr.Name] = cr
	}

	var errs []error
	for _, spec := range s.Cases {
		if spec.Expect == "" && spec.DetailContains == "" {
			continue
		}
		cr, ok := byName[spec.Name]
		if !ok {
			errs = append(errs, fmt.Errorf("case %q: no result recorded", spec.Name))
			continue
		}
		if mm := spec.matcher().Match(cr); mm != nil {
			errs = append(errs, fmt.Errorf("case %q: %s", spec.Name, mm.Describe()))
		}
	}
	return errs
}

func (spec *CaseSpec) matcher() match.Matcher {
	var matchers []match.Matcher
	if spec.Expect != "" {
		matchers = append(matchers, match.AfterPreprocessing(outcomeName, match.Equals(spec.Expect)))
	}
	if spec.DetailContains != "" {
		matchers = append(matchers, match.AfterPreprocessing(detailText, match.Contains(spec.DetailContains)))
	}
	return match.MatchesAll(matchers...)
}

func outcomeName(v any) any {
	cr, ok := v.(*runner.CaseResult)
	if !ok {
		return nil
	}
	return cr.Outcome.String()
}

func detailText(v any) any {
	cr, ok := v.(*runner.CaseResult)
	if !ok {
		return nil
	}
	return cr.Detail
}

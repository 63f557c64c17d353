package runner

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abdul-hamid-achik/matchspec/packages/lifecycle"
	"github.com/abdul-hamid-achik/matchspec/packages/result"
)

// DefaultConcurrency is the default number of concurrent cases in parallel mode.
const DefaultConcurrency = 5

type Runner struct {
	config  *Config
	metrics *Metrics
}

type Config struct {
	Verbose     bool
	Bail        bool
	NameFilter  string
	Parallel    bool
	Concurrency int
}

func NewRunner(cfg *Config) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}
	return &Runner{
		config:  cfg,
		metrics: NewMetrics(),
	}
}

type RunResult struct {
	RunID     string
	Suite     string
	StartedAt time.Time
	Results   []*CaseResult
	Duration  time.Duration
	Passed    int
	Failed    int
	Skipped   int
	Stats     *Stats
}

type CaseResult struct {
	Name       string
	Outcome    lifecycle.Outcome
	Passed     bool
	Skipped    bool
	SkipReason string
	Duration   time.Duration
	Events     []result.Event
	Detail     string
}

// Run executes the cases and returns the aggregated result. In parallel
// mode the cases run concurrently under a semaphore; every case still gets
// its own event log, so logs never interleave. Case instances must be
// distinct: a lifecycle.Case is not safe for concurrent reuse.
func (r *Runner) Run(suite string, cases []*lifecycle.Case) *RunResult {
	start := time.Now()
	run := &RunResult{
		RunID:     uuid.New().String(),
		Suite:     suite,
		StartedAt: start,
	}

	var selected []*lifecycle.Case
	for _, c := range cases {
		if !matchesPattern(c.Name(), r.config.NameFilter) {
			run.Results = append(run.Results, &CaseResult{
				Name:       c.Name(),
				Skipped:    true,
				SkipReason: "filtered out",
				Outcome:    lifecycle.Skipped,
			})
			run.Skipped++
			continue
		}
		selected = append(selected, c)
	}

	if r.config.Parallel {
		for _, cr := range r.runParallel(selected) {
			run.Results = append(run.Results, cr)
			r.tally(run, cr)
		}
	} else {
		for _, c := range selected {
			cr := r.runCase(c)
			run.Results = append(run.Results, cr)
			r.tally(run, cr)
			if cr.Outcome.Failed() && r.config.Bail {
				break
			}
		}
	}

	run.Duration = time.Since(start)
	run.Stats = r.metrics.Snapshot()
	return run
}

func (r *Runner) tally(run *RunResult, cr *CaseResult) {
	switch {
	case cr.Skipped:
		run.Skipped++
	case cr.Outcome.Passed():
		run.Passed++
	default:
		run.Failed++
	}
}

func (r *Runner) runParallel(cases []*lifecycle.Case) []*CaseResult {
	concurrency := r.config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*CaseResult, len(cases))
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, c := range cases {
		wg.Add(1)
		sem <- struct{}{} // acquire semaphore

		go func(idx int, c *lifecycle.Case) {
			defer wg.Done()
			defer func() { <-sem }() // release semaphore

			results[idx] = r.runCase(c)
		}(i, c)
	}

	wg.Wait()
	return results
}

func (r *Runner) runCase(c *lifecycle.Case) *CaseResult {
	log := result.NewLog()

	start := time.Now()
	outcome := c.Run(log)
	duration := time.Since(start)

	r.metrics.Record(duration)

	cr := &CaseResult{
		Name:     c.Name(),
		Outcome:  outcome,
		Passed:   outcome.Passed(),
		Duration: duration,
		Events:   log.Events(),
	}
	if outcome == lifecycle.Skipped {
		cr.Skipped = true
	}

	for _, e := range cr.Events {
		if e.Details == nil {
			continue
		}
		if tb, ok := e.Details["traceback"].(result.Traceback); ok {
			cr.Detail = tb.AsText()
		}
		if reason, ok := e.Details["reason"].(string); ok {
			cr.SkipReason = reason
		}
	}
	return cr
}

// matchesPattern matches a case name against a simple glob pattern where a
// leading or trailing '*' matches any prefix or suffix.
func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if pattern[0] == '*' && pattern[len(pattern)-1] == '*' {
		substr := pattern[1 : len(pattern)-1]
		for i := 0; i <= len(name)-len(substr); i++ {
			if name[i:i+len(substr)] == substr {
				return true
			}
		}
		return false
	}

	if pattern[0] == '*' {
		suffix := pattern[1:]
		return len(name) >= len(suffix) && name[len(name)-len(suffix):] == suffix
	}

	if pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(name) >= len(prefix) && name[:len(prefix)] == prefix
	}

	return name == pattern
}

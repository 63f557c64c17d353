// Package history persists run results to a local SQLite database so past
// runs can be listed and compared.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	suite       TEXT NOT NULL,
	started_at  TIMESTAMP NOT NULL,
	duration_ms INTEGER NOT NULL,
	passed      INTEGER NOT NULL,
	failed      INTEGER NOT NULL,
	skipped     INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS case_results (
	run_id      TEXT NOT NULL REFERENCES runs(run_id),
	name        TEXT NOT NULL,
	outcome     TEXT NOT NULL,
	duration_ms INTEGER NOT NULL,
	detail      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_case_results_run ON case_results(run_id);
`

// Store is a run-history database
type Store struct {
	db *sql.DB
}

// RunRecord is one persisted run
type RunRecord struct {
	RunID     string
	Suite     string
	StartedAt time.Time
	Duration  time.Duration
	Passed    int
	Failed    int
	Skipped   int
}

// CaseRecord is one persisted case result
type CaseRecord struct {
	RunID    string
	Name     string
	Outcome  string
	Duration time.Duration
	Detail   string
}

// Open opens (creating if necessary) the history database at path
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun persists a run and all of its case results in one transaction
func (s *Store) RecordRun(run *RunRecord, cases []CaseRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (run_id, suite, started_at, duration_ms, passed, failed, skipped)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.Suite, run.StartedAt.UTC(), run.Duration.Milliseconds(),
		run.Passed, run.Failed, run.Skipped)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for _, cr := range cases {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO case_results (run_id, name, outcome, duration_ms, detail)
			 VALUES (?, ?, ?, ?, ?)`,
			run.RunID, cr.Name, cr.Outcome, cr.Duration.Milliseconds(), cr.Detail)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert case result: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

// RecordRunResult persists a runner result and its case results
func (s *Store) RecordRunResult(run *runner.RunResult) error {
	record := &RunRecord{
		RunID:     run.RunID,
		Suite:     run.Suite,
		StartedAt: run.StartedAt,
		Duration:  run.Duration,
		Passed:    run.Passed,
		Failed:    run.Failed,
		Skipped:   run.Skipped,
	}

	cases := make([]CaseRecord, 0, len(run.Results))
	for _, cr := range run.Results {
		cases = append(cases, CaseRecord{
			RunID:    run.RunID,
			Name:     cr.Name,
			Outcome:  cr.Outcome.String(),
			Duration: cr.Duration,
			Detail:   cr.Detail,
		})
	}
	return s.RecordRun(record, cases)
}

// RecentRuns returns the most recent runs, newest first
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, suite, started_at, duration_ms, passed, failed, skipped
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var durationMS int64
		if err := rows.Scan(&r.RunID, &r.Suite, &r.StartedAt, &durationMS,
			&r.Passed, &r.Failed, &r.Skipped); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// CaseResults returns the case results recorded for a run
func (s *Store) CaseResults(runID string) ([]CaseRecord, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, name, outcome, duration_ms, detail
		 FROM case_results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query case results: %w", err)
	}
	defer rows.Close()

	var cases []CaseRecord
	for rows.Next() {
		var cr CaseRecord
		var durationMS int64
		if err := rows.Scan(&cr.RunID, &cr.Name, &cr.Outcome, &durationMS, &cr.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan case result: %w", err)
		}
		cr.Duration = time.Duration(durationMS) * time.Millisecond
		cases = append(cases, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return cases, nil
}

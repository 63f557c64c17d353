// Package runner executes suites of lifecycle cases and aggregates results.
//
// It provides functionality for:
//   - Running cases sequentially or in parallel with configurable concurrency
//   - Filtering cases by name pattern
//   - Stopping on first failure (bail)
//   - Recording per-case event logs and duration statistics
//
// Every run gets a unique identifier and a latency summary (p50/p95/p99)
// computed from an HDR histogram of case durations.
package runner

package runner

import (
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Metrics aggregates case durations into an HDR histogram.
type Metrics struct {
	mu        sync.Mutex
	histogram *hdrhistogram.Histogram
}

// NewMetrics creates a duration collector covering 1µs to 60s with three
// significant digits.
func NewMetrics() *Metrics {
	return &Metrics{
		histogram: hdrhistogram.New(1, 60_000_000, 3),
	}
}

// Record adds one case duration.
func (m *Metrics) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > 60_000_000 {
		us = 60_000_000
	}

	m.mu.Lock()
	_ = m.histogram.RecordValue(us)
	m.mu.Unlock()
}

// Stats is a point-in-time latency summary.
type Stats struct {
	Count int64
	P50   time.Duration
	P95   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// Snapshot computes the current summary.
func (m *Metrics) Snapshot() *Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return &Stats{
		Count: m.histogram.TotalCount(),
		P50:   time.Duration(m.histogram.ValueAtQuantile(50)) * time.Microsecond,
		P95:   time.Duration(m.histogram.ValueAtQuantile(95)) * time.Microsecond,
		P99:   time.Duration(m.histogram.ValueAtQuantile(99)) * time.Microsecond,
		Max:   time.Duration(m.histogram.Max()) * time.Microsecond,
	}
}

package fetch

import "sync/atomic"

// RunMetrics counts upstream request outcomes across one run. Counters are
// plain atomics: only aggregate counts matter, not per-call causality. Reset
// at run start, read via Snapshot after the run completes.
type RunMetrics struct {
	Requests      atomic.Int64
	Success       atomic.Int64
	Throttled     atomic.Int64
	Errors        atomic.Int64
	Pauses        atomic.Int64
	Retries       atomic.Int64
	RetriesOK     atomic.Int64
	RetriesFailed atomic.Int64
}

// Reset zeroes every counter.
func (m *RunMetrics) Reset() {
	m.Requests.Store(0)
	m.Success.Store(0)
	m.Throttled.Store(0)
	m.Errors.Store(0)
	m.Pauses.Store(0)
	m.Retries.Store(0)
	m.RetriesOK.Store(0)
	m.RetriesFailed.Store(0)
}

// MetricsSnapshot is an immutable copy of the counters, taken once the run
// has finished.
type MetricsSnapshot struct {
	Requests      int64
	Success       int64
	Throttled     int64
	Errors        int64
	Pauses        int64
	Retries       int64
	RetriesOK     int64
	RetriesFailed int64
}

// Snapshot copies the current counter values.
func (m *RunMetrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Requests:      m.Requests.Load(),
		Success:       m.Success.Load(),
		Throttled:     m.Throttled.Load(),
		Errors:        m.Errors.Load(),
		Pauses:        m.Pauses.Load(),
		Retries:       m.Retries.Load(),
		RetriesOK:     m.RetriesOK.Load(),
		RetriesFailed: m.RetriesFailed.Load(),
	}
}

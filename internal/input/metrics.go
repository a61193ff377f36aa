package input

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

// Metrics tracks dispatch outcomes and key event latency.
type Metrics struct {
	// Event counters
	keyEventsTotal atomic.Uint64
	executed       atomic.Uint64
	aborted        atomic.Uint64
	fallbacks      atomic.Uint64
	cancels        atomic.Uint64
	userErrors     atomic.Uint64
	configErrors   atomic.Uint64
	replays        atomic.Uint64
	droppedReplays atomic.Uint64
	execErrors     atomic.Uint64

	// Latency tracking
	mu                sync.RWMutex
	keyLatencies      []time.Duration
	maxLatencySamples int
	latencyIdx        int

	// Peak latency (all time)
	peakKeyLatency atomic.Int64

	startTime time.Time

	enabled atomic.Bool
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		keyLatencies:      make([]time.Duration, 1000),
		maxLatencySamples: 1000,
		startTime:         time.Now(),
	}
	m.enabled.Store(true)
	return m
}

// SetEnabled enables or disables metrics collection.
func (m *Metrics) SetEnabled(enabled bool) {
	m.enabled.Store(enabled)
}

// IsEnabled returns whether metrics collection is enabled.
func (m *Metrics) IsEnabled() bool {
	return m.enabled.Load()
}

// RecordKeyEvent records a key event with its processing time.
func (m *Metrics) RecordKeyEvent(latency time.Duration) {
	if !m.enabled.Load() {
		return
	}

	m.keyEventsTotal.Add(1)

	latencyNs := latency.Nanoseconds()
	for {
		current := m.peakKeyLatency.Load()
		if latencyNs <= current {
			break
		}
		if m.peakKeyLatency.CompareAndSwap(current, latencyNs) {
			break
		}
	}

	m.mu.Lock()
	m.keyLatencies[m.latencyIdx] = latency
	m.latencyIdx = (m.latencyIdx + 1) % m.maxLatencySamples
	m.mu.Unlock()
}

func (m *Metrics) inc(c *atomic.Uint64) {
	if m.enabled.Load() {
		c.Add(1)
	}
}

// RecordOutcome counts the outcome of one key event.
func (m *Metrics) RecordOutcome(o Outcome) {
	switch o {
	case Executed:
		m.inc(&m.executed)
	case Aborted:
		m.inc(&m.aborted)
	}
}

// RecordFallback counts a key handed to the literal handler.
func (m *Metrics) RecordFallback() { m.inc(&m.fallbacks) }

// RecordCancel counts a cancel key that abandoned a partial command.
func (m *Metrics) RecordCancel() { m.inc(&m.cancels) }

// RecordError counts a malformed sequence, split by error class.
func (m *Metrics) RecordError(err error) {
	if IsConfigError(err) {
		m.inc(&m.configErrors)
		return
	}
	m.inc(&m.userErrors)
}

// RecordReplay counts a synthetic re-dispatch.
func (m *Metrics) RecordReplay() { m.inc(&m.replays) }

// RecordDroppedReplay counts a re-dispatch refused by the per-event bound.
func (m *Metrics) RecordDroppedReplay() { m.inc(&m.droppedReplays) }

// RecordExecError counts an error returned by the executor.
func (m *Metrics) RecordExecError() { m.inc(&m.execErrors) }

// MetricsSnapshot holds a point-in-time view of metrics.
type MetricsSnapshot struct {
	// Counters
	KeyEventsTotal uint64
	Executed       uint64
	Aborted        uint64
	Fallbacks      uint64
	Cancels        uint64
	UserErrors     uint64
	ConfigErrors   uint64
	Replays        uint64
	DroppedReplays uint64
	ExecErrors     uint64

	// Latency stats
	AvgKeyLatency  time.Duration
	MaxKeyLatency  time.Duration
	P99KeyLatency  time.Duration
	PeakKeyLatency time.Duration

	EventsPerSecond float64
	Uptime          time.Duration
}

// Snapshot returns a point-in-time view of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	keyLatencies := make([]time.Duration, len(m.keyLatencies))
	copy(keyLatencies, m.keyLatencies)
	uptime := time.Since(m.startTime)
	m.mu.RUnlock()

	keyCount := m.keyEventsTotal.Load()
	snap := MetricsSnapshot{
		KeyEventsTotal: keyCount,
		Executed:       m.executed.Load(),
		Aborted:        m.aborted.Load(),
		Fallbacks:      m.fallbacks.Load(),
		Cancels:        m.cancels.Load(),
		UserErrors:     m.userErrors.Load(),
		ConfigErrors:   m.configErrors.Load(),
		Replays:        m.replays.Load(),
		DroppedReplays: m.droppedReplays.Load(),
		ExecErrors:     m.execErrors.Load(),
		PeakKeyLatency: time.Duration(m.peakKeyLatency.Load()),
		Uptime:         uptime,
	}
	if uptime > 0 {
		snap.EventsPerSecond = float64(keyCount) / uptime.Seconds()
	}
	snap.AvgKeyLatency, snap.MaxKeyLatency, snap.P99KeyLatency = calculateLatencyStats(keyLatencies)
	return snap
}

// calculateLatencyStats computes average, max, and p99 from a slice of latencies.
func calculateLatencyStats(latencies []time.Duration) (avg, maxLat, p99 time.Duration) {
	valid := make([]time.Duration, 0, len(latencies))
	for _, l := range latencies {
		if l > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return 0, 0, 0
	}

	sort.Slice(valid, func(i, j int) bool { return valid[i] < valid[j] })

	var sum time.Duration
	for _, l := range valid {
		sum += l
	}
	avg = sum / time.Duration(len(valid))
	maxLat = valid[len(valid)-1]

	idx := int(float64(len(valid)) * 0.99)
	if idx >= len(valid) {
		idx = len(valid) - 1
	}
	p99 = valid[idx]
	return avg, maxLat, p99
}

// Reset clears all metrics.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Uint64{
		&m.keyEventsTotal, &m.executed, &m.aborted, &m.fallbacks, &m.cancels,
		&m.userErrors, &m.configErrors, &m.replays, &m.droppedReplays, &m.execErrors,
	} {
		c.Store(0)
	}
	m.peakKeyLatency.Store(0)

	m.mu.Lock()
	m.keyLatencies = make([]time.Duration, m.maxLatencySamples)
	m.latencyIdx = 0
	m.startTime = time.Now()
	m.mu.Unlock()
}

// KeyEventsTotal returns the total number of key events processed.
func (m *Metrics) KeyEventsTotal() uint64 {
	return m.keyEventsTotal.Load()
}

// ConfigErrors returns the number of sequences rejected because of an
// unregistered action.
func (m *Metrics) ConfigErrors() uint64 {
	return m.configErrors.Load()
}

// HealthStatus represents the current health status of input processing.
type HealthStatus struct {
	Healthy          bool
	ConfigErrors     uint64
	DroppedReplays   uint64
	PeakLatency      time.Duration
	LatencyThreshold time.Duration
	Message          string
}

// HealthCheck returns the current health status. Configuration errors and
// dropped replays indicate broken keymaps; user errors do not count.
func (m *Metrics) HealthCheck(latencyThreshold time.Duration) HealthStatus {
	status := HealthStatus{
		Healthy:          true,
		ConfigErrors:     m.configErrors.Load(),
		DroppedReplays:   m.droppedReplays.Load(),
		PeakLatency:      time.Duration(m.peakKeyLatency.Load()),
		LatencyThreshold: latencyThreshold,
	}

	switch {
	case status.ConfigErrors > 0:
		status.Healthy = false
		status.Message = "unregistered actions in keymaps"
	case status.DroppedReplays > 0:
		status.Healthy = false
		status.Message = "replay limit reached"
	case status.PeakLatency > latencyThreshold:
		status.Healthy = false
		status.Message = "latency threshold exceeded"
	default:
		status.Message = "healthy"
	}

	return status
}

// Timer helps measure operation duration.
type Timer struct {
	start   time.Time
	metrics *Metrics
}

// StartKeyEventTimer starts a timer for measuring key event processing.
func (m *Metrics) StartKeyEventTimer() *Timer {
	return &Timer{
		start:   time.Now(),
		metrics: m,
	}
}

// Stop stops the timer and records the key event latency.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	t.metrics.RecordKeyEvent(elapsed)
	return elapsed
}

package input

import (
	"errors"
	"testing"
	"time"

	"github.com/dshills/keychord/internal/input/key"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()
	if m == nil {
		t.Fatal("NewMetrics() returned nil")
	}
	if !m.IsEnabled() {
		t.Error("expected metrics to be enabled by default")
	}

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 {
		t.Errorf("expected 0 key events, got %d", snap.KeyEventsTotal)
	}
	if snap.AvgKeyLatency != 0 {
		t.Errorf("expected 0 average latency, got %v", snap.AvgKeyLatency)
	}
}

func TestMetrics_RecordKeyEvent(t *testing.T) {
	m := NewMetrics()

	m.RecordKeyEvent(2 * time.Millisecond)
	m.RecordKeyEvent(4 * time.Millisecond)
	m.RecordKeyEvent(1 * time.Millisecond)

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 3 {
		t.Errorf("expected 3 key events, got %d", snap.KeyEventsTotal)
	}
	if m.KeyEventsTotal() != 3 {
		t.Errorf("KeyEventsTotal() = %d, expected 3", m.KeyEventsTotal())
	}
	if snap.MaxKeyLatency != 4*time.Millisecond {
		t.Errorf("expected max 4ms, got %v", snap.MaxKeyLatency)
	}
	if snap.PeakKeyLatency != 4*time.Millisecond {
		t.Errorf("expected peak 4ms, got %v", snap.PeakKeyLatency)
	}
	if snap.AvgKeyLatency < 2*time.Millisecond || snap.AvgKeyLatency > 3*time.Millisecond {
		t.Errorf("expected average around 2.3ms, got %v", snap.AvgKeyLatency)
	}
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.RecordOutcome(Executed)
	m.RecordOutcome(Executed)
	m.RecordOutcome(Aborted)
	m.RecordOutcome(Continue)
	m.RecordFallback()
	m.RecordCancel()
	m.RecordReplay()
	m.RecordDroppedReplay()
	m.RecordExecError()
	m.RecordError(ErrInvalidMotion)
	m.RecordError(&DispatchError{Op: "lookup", Err: &ConfigError{Action: "editor.nothing"}})

	snap := m.Snapshot()
	checks := []struct {
		name string
		got  uint64
		want uint64
	}{
		{"Executed", snap.Executed, 2},
		{"Aborted", snap.Aborted, 1},
		{"Fallbacks", snap.Fallbacks, 1},
		{"Cancels", snap.Cancels, 1},
		{"Replays", snap.Replays, 1},
		{"DroppedReplays", snap.DroppedReplays, 1},
		{"ExecErrors", snap.ExecErrors, 1},
		{"UserErrors", snap.UserErrors, 1},
		{"ConfigErrors", snap.ConfigErrors, 1},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, expected %d", c.name, c.got, c.want)
		}
	}
	if m.ConfigErrors() != 1 {
		t.Errorf("ConfigErrors() = %d, expected 1", m.ConfigErrors())
	}
}

func TestMetrics_Disabled(t *testing.T) {
	m := NewMetrics()
	m.SetEnabled(false)

	m.RecordKeyEvent(time.Millisecond)
	m.RecordOutcome(Executed)
	m.RecordError(errors.New("ignored"))

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 || snap.Executed != 0 || snap.UserErrors != 0 {
		t.Errorf("expected nothing recorded while disabled, got %+v", snap)
	}
}

func TestMetrics_HealthCheck(t *testing.T) {
	tests := []struct {
		name    string
		record  func(m *Metrics)
		healthy bool
	}{
		{"fresh", func(*Metrics) {}, true},
		{"user errors only", func(m *Metrics) { m.RecordError(ErrMalformedSequence) }, true},
		{"config error", func(m *Metrics) { m.RecordError(&ConfigError{Action: "x"}) }, false},
		{"dropped replay", func(m *Metrics) { m.RecordDroppedReplay() }, false},
		{"slow key", func(m *Metrics) { m.RecordKeyEvent(time.Second) }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMetrics()
			tt.record(m)
			status := m.HealthCheck(100 * time.Millisecond)
			if status.Healthy != tt.healthy {
				t.Errorf("Healthy = %v, expected %v (%s)", status.Healthy, tt.healthy, status.Message)
			}
			if status.Message == "" {
				t.Error("expected a status message")
			}
		})
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()

	m.RecordKeyEvent(5 * time.Millisecond)
	m.RecordOutcome(Executed)
	m.RecordError(&ConfigError{Action: "x"})

	m.Reset()

	snap := m.Snapshot()
	if snap.KeyEventsTotal != 0 {
		t.Errorf("expected 0 key events after reset, got %d", snap.KeyEventsTotal)
	}
	if snap.Executed != 0 {
		t.Errorf("expected 0 executed after reset, got %d", snap.Executed)
	}
	if snap.PeakKeyLatency != 0 || snap.MaxKeyLatency != 0 {
		t.Errorf("expected latency cleared after reset, got peak %v max %v", snap.PeakKeyLatency, snap.MaxKeyLatency)
	}
	if !m.HealthCheck(time.Second).Healthy {
		t.Error("expected healthy after reset")
	}
}

func TestTimer_Stop(t *testing.T) {
	m := NewMetrics()
	timer := m.StartKeyEventTimer()

	time.Sleep(5 * time.Millisecond)

	elapsed := timer.Stop()
	if elapsed < 5*time.Millisecond {
		t.Errorf("Stop() returned %v, expected >= 5ms", elapsed)
	}
	if m.KeyEventsTotal() != 1 {
		t.Errorf("expected the timer to record one key event, got %d", m.KeyEventsTotal())
	}
}

func TestMetrics_Dispatch(t *testing.T) {
	h := newHarness(t)
	h.feed("d2w")
	h.feed("ab")

	snap := h.d.Metrics().Snapshot()
	if snap.KeyEventsTotal != 5 {
		t.Errorf("expected 5 key events, got %d", snap.KeyEventsTotal)
	}
	if snap.Executed != 3 {
		t.Errorf("expected 3 executed (d2w, a, b), got %d", snap.Executed)
	}
	if snap.Fallbacks != 1 {
		t.Errorf("expected 1 fallback, got %d", snap.Fallbacks)
	}
}

func BenchmarkHandleKeyEvent(b *testing.B) {
	h := newHarness(b)
	evs := key.Events("d2w")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, ev := range evs {
			h.d.HandleKeyEvent(h.tg, ev)
		}
	}
}

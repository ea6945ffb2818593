package health

import (
	"sync"

	"github.com/vietddude/sentinel/internal/core/domain"
	"github.com/vietddude/sentinel/internal/monitor"
)

// Monitor holds the last cycle's report. It is written by the scheduler loop
// and read by the HTTP handlers, hence the lock.
type Monitor struct {
	mu     sync.RWMutex
	report Report
	cycles uint64
}

// NewMonitor creates a monitor in the starting state.
func NewMonitor() *Monitor {
	return &Monitor{
		report: Report{Status: StatusStarting},
	}
}

// Record updates the report from one completed polling cycle. It implements
// monitor.StatusSink.
func (m *Monitor) Record(snap domain.Snapshot, v domain.Verdict, state monitor.AlertState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cycles++
	report := Report{
		Status:     statusFor(v.Kind),
		Verdict:    v.Kind,
		BlockLag:   v.BlocksBehind,
		InAlert:    state.InAlert,
		ObservedAt: snap.ObservedAt,
		Cycles:     m.cycles,
	}

	if snap.Local.OK() {
		h := snap.Local.Height
		report.LocalHeight = &h
	} else {
		report.LocalError = snap.Local.Err.Error()
	}
	if snap.Remote.OK() {
		h := snap.Remote.Height
		report.RemoteHeight = &h
	} else {
		report.RemoteError = snap.Remote.Err.Error()
	}

	if state.InAlert {
		report.AlertKind = state.Kind
		since := state.Since
		report.AlertSince = &since
		if !state.LastNotifiedAt.IsZero() {
			notified := state.LastNotifiedAt
			report.LastNotifiedAt = &notified
		}
	}

	m.report = report
}

// Report returns a copy of the last recorded report.
func (m *Monitor) Report() Report {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.report
}

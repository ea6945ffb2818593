package monitor

import (
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
)

// AlertState is the only entity with memory across cycles. It is owned
// exclusively by the Tracker and lives for the process lifetime; a restart
// resets it.
type AlertState struct {
	InAlert        bool
	Kind           domain.VerdictKind
	Since          time.Time
	LastNotifiedAt time.Time // zero value = never notified
}

// Decision is the outcome of feeding one verdict into the tracker.
type Decision struct {
	Notify   bool
	Recovery bool
	Verdict  domain.Verdict

	// Set on recovery decisions: the alert that just cleared.
	ClearedKind  domain.VerdictKind
	ClearedSince time.Time
}

// Tracker implements the alert state machine: it decides, per cycle, whether
// a notification should fire, suppressing repeats within the cooldown window.
// It is driven by a single goroutine (the scheduler loop), so no locking.
type Tracker struct {
	cooldown         time.Duration
	notifyOnRecovery bool
	state            AlertState
}

// NewTracker creates a tracker in the initial healthy state.
func NewTracker(cooldown time.Duration, notifyOnRecovery bool) *Tracker {
	return &Tracker{
		cooldown:         cooldown,
		notifyOnRecovery: notifyOnRecovery,
	}
}

// Observe feeds one verdict into the state machine and returns the
// notification decision.
//
// Entering an alert from healthy always notifies. While in alert, repeats
// (same or different kind) notify only once the cooldown has elapsed since
// the last notification; changing kind does not bypass the cooldown.
// Returning to healthy emits at most one recovery notification, never
// subject to cooldown, and resets LastNotifiedAt.
func (t *Tracker) Observe(v domain.Verdict, now time.Time) Decision {
	if v.Healthy() {
		if !t.state.InAlert {
			return Decision{Verdict: v}
		}
		cleared := t.state
		t.state = AlertState{}
		return Decision{
			Notify:       t.notifyOnRecovery,
			Recovery:     true,
			Verdict:      v,
			ClearedKind:  cleared.Kind,
			ClearedSince: cleared.Since,
		}
	}

	if !t.state.InAlert {
		t.state = AlertState{
			InAlert:        true,
			Kind:           v.Kind,
			Since:          now,
			LastNotifiedAt: now,
		}
		return Decision{Notify: true, Verdict: v}
	}

	t.state.Kind = v.Kind
	if now.Sub(t.state.LastNotifiedAt) >= t.cooldown {
		t.state.LastNotifiedAt = now
		return Decision{Notify: true, Verdict: v}
	}
	return Decision{Verdict: v}
}

// State returns a copy of the current alert state.
func (t *Tracker) State() AlertState {
	return t.state
}

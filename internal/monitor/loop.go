package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
	"github.com/vietddude/sentinel/internal/metrics"
	"github.com/vietddude/sentinel/internal/notify"
)

// StatusSink receives the outcome of every completed cycle.
type StatusSink interface {
	Record(snap domain.Snapshot, v domain.Verdict, state AlertState)
}

// LoopConfig wires the scheduler loop.
type LoopConfig struct {
	Node         string // node identity used in alert messages (local endpoint host)
	PollInterval time.Duration
	LagThreshold uint64

	Collector *Collector
	Tracker   *Tracker
	Notifier  notify.Notifier
	Sink      StatusSink // optional
}

// Loop drives the poll-compare-alert cycle at a fixed interval. Cycles are
// strictly serialized: one tick's work finishes before the next is taken, so
// a slow cycle can never overlap the following one.
type Loop struct {
	cfg     LoopConfig
	log     *slog.Logger
	running atomic.Bool
	stop    chan struct{}
}

// NewLoop creates a scheduler loop.
func NewLoop(cfg LoopConfig) *Loop {
	return &Loop{
		cfg:  cfg,
		log:  slog.Default(),
		stop: make(chan struct{}),
	}
}

// Start runs the loop until the context is cancelled or Stop is called. The
// first cycle runs immediately, then one per tick.
func (l *Loop) Start(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return fmt.Errorf("loop already running")
	}
	defer l.running.Store(false)

	l.runCycle(ctx)

	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-l.stop:
			return nil
		case <-ticker.C:
			l.runCycle(ctx)
		}
	}
}

// Stop signals the loop to exit after the in-flight cycle.
func (l *Loop) Stop() error {
	if l.running.Load() {
		close(l.stop)
	}
	return nil
}

func (l *Loop) runCycle(ctx context.Context) {
	start := time.Now()

	snap := l.cfg.Collector.Collect(ctx)
	if ctx.Err() != nil {
		// Shutting down mid-cycle: never send a partial alert.
		return
	}

	verdict := Evaluate(snap, l.cfg.LagThreshold)
	l.logVerdict(snap, verdict)
	l.recordMetrics(snap, verdict)

	decision := l.cfg.Tracker.Observe(verdict, snap.ObservedAt)

	if l.cfg.Sink != nil {
		l.cfg.Sink.Record(snap, verdict, l.cfg.Tracker.State())
	}

	if decision.Notify {
		l.notify(ctx, decision, snap)
	}

	metrics.CycleDuration.Observe(time.Since(start).Seconds())
}

func (l *Loop) notify(ctx context.Context, d Decision, snap domain.Snapshot) {
	var msg notify.Message
	if d.Recovery {
		msg = notify.NewRecoveryMessage(l.cfg.Node, d.ClearedKind, d.ClearedSince, snap)
	} else {
		msg = notify.NewAlertMessage(l.cfg.Node, d.Verdict, snap)
	}

	if err := l.cfg.Notifier.Send(ctx, msg); err != nil {
		// Best effort only: log and move on, the next eligible cycle retries.
		metrics.NotificationsTotal.WithLabelValues("failed").Inc()
		l.log.Error("Notification delivery failed", "event", msg.EventID, "error", err)
		return
	}
	metrics.NotificationsTotal.WithLabelValues("sent").Inc()
	l.log.Info("Notification sent", "event", msg.EventID, "kind", msg.Kind, "recovery", d.Recovery)
}

func (l *Loop) logVerdict(snap domain.Snapshot, v domain.Verdict) {
	switch v.Kind {
	case domain.VerdictHealthy:
		lag := uint64(0)
		if snap.Remote.Height > snap.Local.Height {
			lag = snap.Remote.Height - snap.Local.Height
		}
		l.log.Info("Synced",
			"lag", lag, "local", snap.Local.Height, "remote", snap.Remote.Height)
	case domain.VerdictLagging:
		l.log.Warn("Node lagging",
			"lag", v.BlocksBehind, "local", snap.Local.Height, "remote", snap.Remote.Height)
	case domain.VerdictLocalUnreachable:
		l.log.Error("Local node unreachable", "reason", snap.Local.Reason, "error", snap.Local.Err)
	case domain.VerdictRemoteUnreachable:
		l.log.Error("Remote node unreachable", "reason", snap.Remote.Reason, "error", snap.Remote.Err)
	}
}

func (l *Loop) recordMetrics(snap domain.Snapshot, v domain.Verdict) {
	metrics.CyclesTotal.WithLabelValues(string(v.Kind)).Inc()
	if snap.Local.OK() && snap.Remote.OK() {
		lag := float64(0)
		if snap.Remote.Height > snap.Local.Height {
			lag = float64(snap.Remote.Height - snap.Local.Height)
		}
		metrics.BlockLag.Set(lag)
	}
}

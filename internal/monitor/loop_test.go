package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/vietddude/sentinel/internal/core/domain"
	"github.com/vietddude/sentinel/internal/notify"
)

type spyNotifier struct {
	mu   sync.Mutex
	sent []notify.Message
}

func (s *spyNotifier) Send(ctx context.Context, msg notify.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

func (s *spyNotifier) messages() []notify.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]notify.Message, len(s.sent))
	copy(out, s.sent)
	return out
}

type recordingSink struct {
	mu      sync.Mutex
	records int
	last    domain.Verdict
}

func (r *recordingSink) Record(snap domain.Snapshot, v domain.Verdict, state AlertState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records++
	r.last = v
}

func newTestLoop(local, remote *stubFetcher, notifier notify.Notifier, sink StatusSink) *Loop {
	return NewLoop(LoopConfig{
		Node:         "localhost:8545",
		PollInterval: 20 * time.Millisecond,
		LagThreshold: 3,
		Collector:    NewCollector(local, remote),
		Tracker:      NewTracker(time.Hour, true),
		Notifier:     notifier,
		Sink:         sink,
	})
}

func TestLoop_NotifiesOnceWhileLagging(t *testing.T) {
	local := &stubFetcher{name: "local", result: domain.HeightResult{Height: 100}}
	remote := &stubFetcher{name: "remote", result: domain.HeightResult{Height: 110}}
	notifier := &spyNotifier{}
	sink := &recordingSink{}

	loop := newTestLoop(local, remote, notifier, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Start(ctx)
		close(done)
	}()

	// Let several cycles run; the one-hour cooldown keeps repeats quiet.
	time.Sleep(120 * time.Millisecond)
	cancel()
	<-done

	msgs := notifier.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(msgs))
	}
	if msgs[0].Kind != domain.VerdictLagging {
		t.Errorf("expected lagging alert, got %s", msgs[0].Kind)
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	if sink.records < 2 {
		t.Errorf("expected multiple recorded cycles, got %d", sink.records)
	}
	if sink.last.Kind != domain.VerdictLagging {
		t.Errorf("sink should carry the lagging verdict, got %s", sink.last.Kind)
	}
}

func TestLoop_HealthyCyclesStayQuiet(t *testing.T) {
	local := &stubFetcher{name: "local", result: domain.HeightResult{Height: 100}}
	remote := &stubFetcher{name: "remote", result: domain.HeightResult{Height: 100}}
	notifier := &spyNotifier{}

	loop := newTestLoop(local, remote, notifier, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		loop.Start(ctx)
		close(done)
	}()

	time.Sleep(80 * time.Millisecond)
	cancel()
	<-done

	if n := len(notifier.messages()); n != 0 {
		t.Errorf("healthy cycles must not notify, got %d messages", n)
	}
}

func TestLoop_StopEndsTheLoop(t *testing.T) {
	local := &stubFetcher{name: "local", result: domain.HeightResult{Height: 1}}
	remote := &stubFetcher{name: "remote", result: domain.HeightResult{Height: 1}}

	loop := newTestLoop(local, remote, &spyNotifier{}, nil)

	done := make(chan struct{})
	go func() {
		loop.Start(context.Background())
		close(done)
	}()

	time.Sleep(30 * time.Millisecond)
	loop.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not stop")
	}
}

func TestLoop_RejectsDoubleStart(t *testing.T) {
	local := &stubFetcher{name: "local", result: domain.HeightResult{Height: 1}}
	remote := &stubFetcher{name: "remote", result: domain.HeightResult{Height: 1}}

	loop := newTestLoop(local, remote, &spyNotifier{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go loop.Start(ctx)
	time.Sleep(10 * time.Millisecond)

	if err := loop.Start(ctx); err == nil {
		t.Error("second Start must fail while the loop is running")
	}
}

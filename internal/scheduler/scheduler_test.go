package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/veriscan/casedesk/internal/clock"
	escalationdomain "github.com/veriscan/casedesk/internal/escalation/domain"
	"go.uber.org/zap"
)

type stubEscalation struct {
	calls  int
	report escalationdomain.RunReport
	err    error
}

func (s *stubEscalation) Run(_ context.Context) (escalationdomain.RunReport, error) {
	s.calls++
	return s.report, s.err
}

func newTestScheduler(t *testing.T, svc escalationdomain.Service) *Scheduler {
	t.Helper()
	sched, err := New(Params{
		Log:           zap.NewNop(),
		EscalationSvc: svc,
		Clock:         clock.NewFakeClock(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)),
		Config:        Config{RunInterval: 10 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	return sched
}

func TestNewRequiresDependencies(t *testing.T) {
	if _, err := New(Params{Log: zap.NewNop()}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestRunOnceInvokesEscalation(t *testing.T) {
	stub := &stubEscalation{report: escalationdomain.RunReport{Checked: 3, Sent: 1}}
	sched := newTestScheduler(t, stub)

	if err := sched.RunOnce(context.Background()); err != nil {
		t.Fatalf("run once: %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected 1 call, got %d", stub.calls)
	}
}

func TestRunOncePropagatesFetchFailure(t *testing.T) {
	stub := &stubEscalation{err: errors.New("db down")}
	sched := newTestScheduler(t, stub)

	if err := sched.RunOnce(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunForeverStopsOnCancel(t *testing.T) {
	stub := &stubEscalation{}
	sched := newTestScheduler(t, stub)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sched.RunForever(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop")
	}
	if stub.calls < 2 {
		t.Fatalf("expected repeated passes, got %d", stub.calls)
	}
}

package scheduler

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"svctopo/internal/domain"
)

type fakeLister struct {
	specs []*domain.ServiceSpec
}

func (f *fakeLister) ListAll(ctx context.Context) ([]*domain.ServiceSpec, error) {
	return f.specs, nil
}

type countingDispatcher struct {
	mu    sync.Mutex
	calls int32
	delay time.Duration
}

func (c *countingDispatcher) Dispatch(ctx context.Context, spec *domain.ServiceSpec) {
	atomic.AddInt32(&c.calls, 1)
	if c.delay > 0 {
		time.Sleep(c.delay)
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func TestShouldCheckRequiresHost(t *testing.T) {
	s := New(&fakeLister{}, &countingDispatcher{}, DefaultConfig(), testLogger())
	spec := &domain.ServiceSpec{ServiceID: 1, Method: domain.MethodTCP}
	if s.shouldCheck(spec) {
		t.Fatal("empty host must not be checked")
	}
}

func TestShouldCheckRequiresPathForHTTP(t *testing.T) {
	s := New(&fakeLister{}, &countingDispatcher{}, DefaultConfig(), testLogger())
	spec := &domain.ServiceSpec{ServiceID: 1, Host: "h", Method: domain.MethodHTTP}
	if s.shouldCheck(spec) {
		t.Fatal("HTTP without healthcheckPath must not be checked")
	}
}

func TestShouldCheckHonorsPersistedLastCheckedAt(t *testing.T) {
	s := New(&fakeLister{}, &countingDispatcher{}, DefaultConfig(), testLogger())

	recent := time.Now()
	spec := &domain.ServiceSpec{
		ServiceID: 1, Host: "h", Method: domain.MethodTCP,
		PollingIntervalSec: 300, LastCheckedAt: &recent,
	}
	if s.shouldCheck(spec) {
		t.Fatal("service checked well inside its polling interval must not be re-checked")
	}

	stale := time.Now().Add(-10 * time.Minute)
	spec.LastCheckedAt = &stale
	if !s.shouldCheck(spec) {
		t.Fatal("service last checked before its polling interval elapsed must be re-checked")
	}
}

// A fresh Scheduler built against a store snapshot must not treat a
// recently-checked service as never-checked: staleness is read from the
// persisted ServiceSpec, not from any state local to the Scheduler value,
// so it survives a process restart instead of re-probing everything at
// once on the next tick.
func TestShouldCheckSurvivesSchedulerRestart(t *testing.T) {
	recent := time.Now()
	spec := &domain.ServiceSpec{
		ServiceID: 1, Host: "h", Method: domain.MethodTCP,
		PollingIntervalSec: 300, LastCheckedAt: &recent,
	}

	s1 := New(&fakeLister{specs: []*domain.ServiceSpec{spec}}, &countingDispatcher{}, DefaultConfig(), testLogger())
	if s1.shouldCheck(spec) {
		t.Fatal("precondition: recently-checked service should not need a check yet")
	}

	s2 := New(&fakeLister{specs: []*domain.ServiceSpec{spec}}, &countingDispatcher{}, DefaultConfig(), testLogger())
	if s2.shouldCheck(spec) {
		t.Fatal("a newly constructed Scheduler must honor the spec's persisted LastCheckedAt, not restart staleness tracking from zero")
	}
}

func TestTickDispatchesEligibleServicesOnce(t *testing.T) {
	specs := []*domain.ServiceSpec{
		{ServiceID: 1, Host: "a", Method: domain.MethodTCP, TimeoutSec: 1},
		{ServiceID: 2, Host: "b", Method: domain.MethodTCP, TimeoutSec: 1},
	}
	dispatcher := &countingDispatcher{}
	s := New(&fakeLister{specs: specs}, dispatcher, DefaultConfig(), testLogger())

	s.tick(context.Background())

	if dispatcher.calls != 2 {
		t.Fatalf("want 2 dispatches, got %d", dispatcher.calls)
	}
}

func TestBusyServiceSkippedUntilReleased(t *testing.T) {
	s := New(&fakeLister{}, &countingDispatcher{}, DefaultConfig(), testLogger())
	if !s.tryAcquire(1) {
		t.Fatal("first acquire should succeed")
	}
	if s.tryAcquire(1) {
		t.Fatal("second acquire while busy should fail")
	}
	s.release(1)
	if !s.tryAcquire(1) {
		t.Fatal("acquire after release should succeed")
	}
}

package runner

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	"svctopo/internal/domain"
)

type fakeSpecStore struct {
	mu       sync.Mutex
	statuses map[int]domain.ServiceStatus
}

func (f *fakeSpecStore) UpdateLatest(ctx context.Context, id int, status domain.ServiceStatus, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses[id] = status
	return nil
}

type fakeResultSink struct {
	mu      sync.Mutex
	results []domain.HealthcheckResult
}

func (f *fakeResultSink) AppendResult(ctx context.Context, r domain.HealthcheckResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return nil
}

type fakeHub struct {
	mu      sync.Mutex
	updates []domain.StatusUpdate
}

func (f *fakeHub) Publish(u domain.StatusUpdate) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, u)
}

type fakeProber struct {
	outcome domain.ProbeOutcome
}

func (f *fakeProber) Run(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	return f.outcome
}

func TestDispatchPublishesCheckingThenTerminal(t *testing.T) {
	specs := &fakeSpecStore{statuses: map[int]domain.ServiceStatus{}}
	results := &fakeResultSink{}
	hub := &fakeHub{}
	prober := &fakeProber{outcome: domain.ProbeOutcome{Status: domain.StatusAlive}}

	r := New(specs, results, hub, prober, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	r.Dispatch(context.Background(), &domain.ServiceSpec{ServiceID: 1, Method: domain.MethodTCP})

	if len(hub.updates) != 2 {
		t.Fatalf("want 2 updates, got %d", len(hub.updates))
	}
	if hub.updates[0].Status != domain.StatusChecking {
		t.Fatalf("first update should be checking, got %s", hub.updates[0].Status)
	}
	if hub.updates[1].Status != domain.StatusAlive {
		t.Fatalf("second update should be alive, got %s", hub.updates[1].Status)
	}
	if len(results.results) != 1 {
		t.Fatalf("want 1 persisted result, got %d", len(results.results))
	}
	if specs.statuses[1] != domain.StatusAlive {
		t.Fatalf("want latest alive, got %s", specs.statuses[1])
	}
}

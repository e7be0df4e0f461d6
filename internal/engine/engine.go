// Package engine is the composition root: it wires the Scheduler, Probe
// Runner, Probe Library registry and Broadcast Hub into the single
// Start()/stop() lifecycle §6.2 exposes, grounded in the teacher's
// dependencies.Container pattern but scoped to just the probing core
// instead of the agent/task-queue machinery that container wired.
package engine

import (
	"context"
	"log/slog"
	"time"

	"svctopo/internal/domain"
	"svctopo/internal/hub"
	"svctopo/internal/probe"
	"svctopo/internal/runner"
	"svctopo/internal/scheduler"
)

// SpecStore is the full persistence contract the engine needs: the read
// half for the scheduler, the write-latest half for the runner, and the
// append-only result sink.
type SpecStore interface {
	ListAll(ctx context.Context) ([]*domain.ServiceSpec, error)
	UpdateLatest(ctx context.Context, serviceID int, status domain.ServiceStatus, checkedAt time.Time) error
	AppendResult(ctx context.Context, result domain.HealthcheckResult) error
}

// Engine owns the scheduler goroutine and exposes Subscribe for transport
// adapters to attach to the hub.
type Engine struct {
	hub    *hub.Hub
	sched  *scheduler.Scheduler
	cancel context.CancelFunc
	done   chan struct{}
}

// New builds an Engine from a store, the default 17-protocol probe
// registry, and the scheduler/hub configuration.
func New(store SpecStore, schedCfg scheduler.Config, hubInboxCap int, log *slog.Logger) *Engine {
	h := hub.New(hubInboxCap, log.With("component", "hub"))
	probes := probe.NewRegistry()
	r := runner.New(store, store, h, probes, log.With("component", "runner"))
	s := scheduler.New(store, r, schedCfg, log.With("component", "scheduler"))

	return &Engine{hub: h, sched: s, done: make(chan struct{})}
}

// Subscribe attaches a new Hub subscriber. internal/transport subscribes
// through the Hub returned by Hub instead.
func (e *Engine) Subscribe() *hub.Subscriber {
	return e.hub.Subscribe()
}

// Hub exposes the underlying Broadcast Hub for transport adapters that
// need it directly (e.g. to construct a WSAdapter).
func (e *Engine) Hub() *hub.Hub {
	return e.hub
}

// Start launches the scheduler loop in its own goroutine. It returns
// immediately; call Stop to quiesce it.
func (e *Engine) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	e.cancel = cancel

	go func() {
		defer close(e.done)
		e.sched.Run(ctx)
	}()
}

// Stop cancels the scheduler and blocks until it (and therefore every
// already-dispatched probe's cancellation observation) has quiesced, per
// the synchronous stop() contract in §6.2.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
	<-e.done
}

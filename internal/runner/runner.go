// Package runner executes one probe dispatch: publish Checking, run the
// probe, classify the outcome, persist the result, update the latest
// projection, and publish the terminal StatusUpdate. Grounded on the
// performHealthcheck/determineStatus/updateServiceStatus sequence of the
// monitoring package this engine was distilled from.
package runner

import (
	"context"
	"log/slog"
	"time"

	"svctopo/internal/classify"
	"svctopo/internal/domain"
	"svctopo/pkg/uuidutil"
)

// SpecStore is the write-latest half of ServiceSpecStore (§6.1).
type SpecStore interface {
	UpdateLatest(ctx context.Context, serviceID int, status domain.ServiceStatus, checkedAt time.Time) error
}

// ResultSink persists append-only HealthcheckResults (§6.1).
type ResultSink interface {
	AppendResult(ctx context.Context, result domain.HealthcheckResult) error
}

// Publisher is the subset of the Hub the runner needs.
type Publisher interface {
	Publish(update domain.StatusUpdate)
}

// Prober runs one protocol probe to completion.
type Prober interface {
	Run(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome
}

type Runner struct {
	specs   SpecStore
	results ResultSink
	hub     Publisher
	probes  Prober
	log     *slog.Logger
}

func New(specs SpecStore, results ResultSink, hub Publisher, probes Prober, log *slog.Logger) *Runner {
	return &Runner{specs: specs, results: results, hub: hub, probes: probes, log: log}
}

// Dispatch runs the full per-probe algorithm from §4.2. It recovers from
// a panicking probe so a single bad protocol implementation can never take
// the scheduler down.
func (r *Runner) Dispatch(ctx context.Context, spec *domain.ServiceSpec) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("probe panicked", "service_id", spec.ServiceID, "recover", rec)
		}
	}()

	now := time.Now().UTC()
	r.hub.Publish(domain.StatusUpdate{ServiceID: spec.ServiceID, Status: domain.StatusChecking, Timestamp: now})

	start := time.Now()
	outcome := r.probes.Run(ctx, spec)
	latency := time.Since(start)

	status := classify.Classify(spec, outcome)

	checkedAt := time.Now().UTC()
	result := domain.HealthcheckResult{
		ID:         uuidutil.New(),
		ServiceID:  spec.ServiceID,
		Status:     status,
		StatusCode: outcome.StatusCode,
		LatencyMs:  latency.Milliseconds(),
		CheckedAt:  checkedAt,
	}
	if outcome.Err != nil {
		result.Error = outcome.Err.Error()
	}

	if err := r.results.AppendResult(ctx, result); err != nil {
		r.log.Warn("failed to persist healthcheck result", "service_id", spec.ServiceID, "error", err)
	}

	if err := r.specs.UpdateLatest(ctx, spec.ServiceID, status, checkedAt); err != nil {
		r.log.Warn("failed to update service latest, retrying once", "service_id", spec.ServiceID, "error", err)
		if err := r.specs.UpdateLatest(ctx, spec.ServiceID, status, checkedAt); err != nil {
			r.log.Error("abandoning latest update for this tick", "service_id", spec.ServiceID, "error", err)
		}
	}

	r.hub.Publish(domain.StatusUpdate{ServiceID: spec.ServiceID, Status: status, Timestamp: checkedAt})
}

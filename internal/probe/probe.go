// Package probe implements one function per protocol tag a ServiceSpec can
// carry. Every probe opens its own transport; there is no shared state
// between calls, so probes can run concurrently without synchronization.
package probe

import (
	"context"
	"fmt"
	"time"

	"svctopo/internal/domain"
)

// Func is the shape every protocol probe implements: given a spec and a
// deadline-bound context, return a ProbeOutcome. Implementations never
// return a Go error for network failure — that is folded into Outcome.Err
// so the runner always has a terminal status to persist.
type Func func(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome

// Registry dispatches a ServiceSpec to its protocol implementation.
type Registry struct {
	probes map[domain.Method]Func
}

// NewRegistry wires every supported protocol tag to its implementation.
func NewRegistry() *Registry {
	return &Registry{
		probes: map[domain.Method]Func{
			domain.MethodHTTP:     httpProbe,
			domain.MethodHTTPS:    httpProbe,
			domain.MethodTCP:      tcpProbe,
			domain.MethodUDP:      udpProbe,
			domain.MethodICMP:     icmpProbe,
			domain.MethodDNS:      dnsProbe,
			domain.MethodWS:       wsProbe,
			domain.MethodWSS:      wsProbe,
			domain.MethodGRPC:     grpcProbe,
			domain.MethodSMTP:     smtpProbe,
			domain.MethodFTP:      ftpProbe,
			domain.MethodSSH:      sshProbe,
			domain.MethodRedis:    redisProbe,
			domain.MethodMySQL:    mysqlProbe,
			domain.MethodPostgres: postgresProbe,
			domain.MethodMongoDB:  mongoProbe,
			domain.MethodKafka:    kafkaProbe,
		},
	}
}

// Run looks up the probe for spec.Method and executes it with a deadline
// derived from spec.TimeoutSec. An unrecognized method never reaches the
// network: it is a Dead outcome with a descriptive error, per §4.2.
func (r *Registry) Run(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	fn, ok := r.probes[spec.Method]
	if !ok {
		return domain.ProbeOutcome{
			Status: domain.StatusDead,
			Err:    fmt.Errorf("unsupported method: %s", spec.Method),
		}
	}

	timeout := time.Duration(spec.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return fn(cctx, spec)
}

func deadOnErr(err error) domain.ProbeOutcome {
	return domain.ProbeOutcome{Status: domain.StatusDead, Err: err}
}

func alive() domain.ProbeOutcome {
	return domain.ProbeOutcome{Status: domain.StatusAlive}
}

func degraded(err error) domain.ProbeOutcome {
	return domain.ProbeOutcome{Status: domain.StatusDegraded, Err: err}
}

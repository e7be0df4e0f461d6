package probe

import (
	"context"
	"fmt"
	"time"

	probing "github.com/go-ping/ping"

	"svctopo/internal/domain"
)

// icmpProbe sends icmpPacketCount echo requests and waits at most
// timeoutSec for replies. Zero packets received is Dead; anything else is
// Alive, matching the "0 received means Dead" rule regardless of how many
// packets were lost in between.
func icmpProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	count := spec.ICMPPacketCount
	if count < 1 || count > 10 {
		count = 3
	}

	pinger, err := probing.NewPinger(spec.Host)
	if err != nil {
		return deadOnErr(fmt.Errorf("icmp setup: %w", err))
	}
	pinger.Count = count
	pinger.Timeout = time.Duration(spec.TimeoutSec) * time.Second
	pinger.SetPrivileged(false)

	done := make(chan error, 1)
	go func() { done <- pinger.Run() }()

	select {
	case err := <-done:
		if err != nil {
			return deadOnErr(fmt.Errorf("icmp run: %w", err))
		}
	case <-ctx.Done():
		pinger.Stop()
		<-done
		return deadOnErr(fmt.Errorf("icmp: %w", ctx.Err()))
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return deadOnErr(fmt.Errorf("icmp: 0 of %d packets received", count))
	}

	return alive()
}

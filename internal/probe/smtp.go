package probe

import (
	"context"
	"fmt"
	"net"
	"net/smtp"
	"strconv"

	"svctopo/internal/domain"
)

// smtpProbe dials host:port and issues a NOOP; any SMTP-level success is
// Alive.
func smtpProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	addr := net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return deadOnErr(fmt.Errorf("smtp dial: %w", err))
	}
	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	client, err := smtp.NewClient(conn, spec.Host)
	if err != nil {
		conn.Close()
		return deadOnErr(fmt.Errorf("smtp handshake: %w", err))
	}
	defer client.Close()

	if err := client.Noop(); err != nil {
		return deadOnErr(fmt.Errorf("smtp noop: %w", err))
	}

	return alive()
}

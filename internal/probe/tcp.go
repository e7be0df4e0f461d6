package probe

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"

	"svctopo/internal/domain"
)

// tcpProbe dials host:port, optionally writes tcpSendData, then if
// tcpExpectData is set reads up to 1 KiB and requires a substring match.
func tcpProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	addr := net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return deadOnErr(fmt.Errorf("tcp dial: %w", err))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if spec.TCPSendData != "" {
		if _, err := conn.Write([]byte(spec.TCPSendData)); err != nil {
			return deadOnErr(fmt.Errorf("tcp write: %w", err))
		}
	}

	if spec.TCPExpectData != "" {
		buf := make([]byte, 1024)
		n, err := conn.Read(buf)
		if err != nil {
			return deadOnErr(fmt.Errorf("tcp read: %w", err))
		}
		if !bytes.Contains(buf[:n], []byte(spec.TCPExpectData)) {
			return deadOnErr(fmt.Errorf("tcp response did not match expected response"))
		}
	}

	return alive()
}

package probe

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"svctopo/internal/domain"
)

// udpProbe requires udpSendData (UDP has no connection handshake to probe
// on its own); udpExpectData is an optional substring match on the reply.
func udpProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	if spec.UDPSendData == "" {
		return deadOnErr(errors.New("send data required"))
	}

	addr := net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))

	var d net.Dialer
	conn, err := d.DialContext(ctx, "udp", addr)
	if err != nil {
		return deadOnErr(fmt.Errorf("udp dial: %w", err))
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if _, err := conn.Write([]byte(spec.UDPSendData)); err != nil {
		return deadOnErr(fmt.Errorf("udp write: %w", err))
	}

	if spec.UDPExpectData == "" {
		return alive()
	}

	buf := make([]byte, 1024)
	n, err := conn.Read(buf)
	if err != nil {
		return deadOnErr(fmt.Errorf("udp read: %w", err))
	}
	if !bytes.Contains(buf[:n], []byte(spec.UDPExpectData)) {
		return deadOnErr(errors.New("udp response did not match expected response"))
	}

	return alive()
}

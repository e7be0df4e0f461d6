package probe

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"

	"svctopo/internal/domain"
)

// sshProbe opens a client transport with fixed healthcheck/healthcheck
// credentials, runs `echo 'healthcheck'` and compares the output. Any
// failure — including the expected auth rejection on a real server — is
// Dead, so a daemon that answers but rejects these credentials is reported
// Dead too (the design note's option (a): failure is the probe signal).
func sshProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	addr := net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))

	timeout := time.Duration(spec.TimeoutSec) * time.Second
	config := &ssh.ClientConfig{
		User:            "healthcheck",
		Auth:            []ssh.AuthMethod{ssh.Password("healthcheck")},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	client, err := ssh.Dial("tcp", addr, config)
	if err != nil {
		return deadOnErr(fmt.Errorf("ssh dial: %w", err))
	}
	defer client.Close()

	session, err := client.NewSession()
	if err != nil {
		return deadOnErr(fmt.Errorf("ssh session: %w", err))
	}
	defer session.Close()

	var out bytes.Buffer
	session.Stdout = &out
	if err := session.Run("echo 'healthcheck'"); err != nil {
		return deadOnErr(fmt.Errorf("ssh run: %w", err))
	}

	if bytes.Contains(out.Bytes(), []byte("healthcheck")) {
		return alive()
	}
	return deadOnErr(fmt.Errorf("ssh: unexpected output %q", out.String()))
}

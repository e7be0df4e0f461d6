package probe

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"svctopo/internal/domain"
)

func TestHTTPProbeHappyPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	host, portStr, _ := net.SplitHostPort(u.Host)
	port, _ := strconv.Atoi(portStr)

	spec := &domain.ServiceSpec{
		Method:         domain.MethodHTTP,
		Host:           host,
		Port:           port,
		HTTPMethod:     domain.HTTPGet,
		TimeoutSec:     2,
		ExpectedStatus: 200,
	}

	out := httpProbe(context.Background(), spec)
	if out.Err != nil {
		t.Fatalf("unexpected error: %v", out.Err)
	}
	if out.StatusCode != 200 {
		t.Fatalf("want 200, got %d", out.StatusCode)
	}
}

func TestHTTPProbeConnectionRefused(t *testing.T) {
	spec := &domain.ServiceSpec{
		Method:     domain.MethodHTTP,
		Host:       "127.0.0.1",
		Port:       1, // nothing listens on port 1
		HTTPMethod: domain.HTTPGet,
		TimeoutSec: 1,
	}
	out := httpProbe(context.Background(), spec)
	if out.Err == nil {
		t.Fatal("expected a connection error")
	}
}

func TestTCPProbeEchoMismatch(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		buf := make([]byte, 64)
		conn.Read(buf)
		conn.Write([]byte("HELLO"))
	}()

	host, portStr, _ := net.SplitHostPort(ln.Addr().String())
	port, _ := strconv.Atoi(portStr)

	spec := &domain.ServiceSpec{
		Method:        domain.MethodTCP,
		Host:          host,
		Port:          port,
		TCPSendData:   "PING\r\n",
		TCPExpectData: "PONG",
		TimeoutSec:    1,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	out := tcpProbe(ctx, spec)
	if out.Err == nil {
		t.Fatal("expected mismatch error")
	}
	if out.Status != domain.StatusDead {
		t.Fatalf("want dead, got %s", out.Status)
	}
}

func TestUDPProbeRequiresSendData(t *testing.T) {
	spec := &domain.ServiceSpec{Method: domain.MethodUDP, Host: "127.0.0.1", Port: 9, TimeoutSec: 1}
	out := udpProbe(context.Background(), spec)
	if out.Err == nil || out.Status != domain.StatusDead {
		t.Fatalf("want dead with error, got %+v", out)
	}
}

func TestRegistryUnsupportedMethod(t *testing.T) {
	r := NewRegistry()
	spec := &domain.ServiceSpec{Method: "carrier-pigeon", TimeoutSec: 1}
	out := r.Run(context.Background(), spec)
	if out.Status != domain.StatusDead || out.Err == nil {
		t.Fatalf("want dead with error, got %+v", out)
	}
}

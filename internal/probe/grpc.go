package probe

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"svctopo/internal/domain"
)

// grpcProbe opens an insecure channel and calls the standard health RPC
// for the service named by healthcheckPath.
func grpcProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	addr := net.JoinHostPort(spec.Host, strconv.Itoa(spec.Port))

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return deadOnErr(fmt.Errorf("grpc dial: %w", err))
	}
	defer conn.Close()

	client := healthpb.NewHealthClient(conn)
	resp, err := client.Check(ctx, &healthpb.HealthCheckRequest{Service: spec.HealthcheckPath})
	if err != nil {
		return deadOnErr(fmt.Errorf("grpc health check: %w", err))
	}

	switch resp.GetStatus() {
	case healthpb.HealthCheckResponse_SERVING:
		return alive()
	default:
		return degraded(fmt.Errorf("grpc health status: %s", resp.GetStatus()))
	}
}

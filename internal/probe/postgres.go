package probe

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/jackc/pgx/v5"

	"svctopo/internal/domain"
)

// postgresProbe connects using DB_USER/DB_PASSWORD/DB_NAME/DB_SSLMODE
// (first-class env configuration, §6.4), pings, then runs `select
// version()`. A ping failure is Dead; a query failure after a successful
// ping is Degraded.
func postgresProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	host := spec.Host
	if spec.FrontendHostOverride != "" {
		host = stripToHostname(spec.FrontendHostOverride)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, spec.Port,
		getenv("DB_USER", "postgres"),
		getenv("DB_PASSWORD", "password"),
		getenv("DB_NAME", "service_weaver"),
		getenv("DB_SSLMODE", "disable"),
	)

	conn, err := pgx.Connect(ctx, dsn)
	if err != nil {
		return deadOnErr(fmt.Errorf("postgres connect: %w", err))
	}
	defer conn.Close(ctx)

	if err := conn.Ping(ctx); err != nil {
		return deadOnErr(fmt.Errorf("postgres ping: %w", err))
	}

	var version string
	if err := conn.QueryRow(ctx, "select version()").Scan(&version); err != nil {
		return degraded(fmt.Errorf("postgres query: %w", err))
	}

	return alive()
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// stripToHostname tears a full frontend URL (scheme, port, path) down to
// a bare hostname, e.g. "https://app.example.com:3000/dash" -> "app.example.com".
func stripToHostname(raw string) string {
	if u, err := url.Parse(raw); err == nil && u.Hostname() != "" {
		return u.Hostname()
	}
	s := raw
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}
	if i := strings.IndexAny(s, ":/"); i >= 0 {
		s = s[:i]
	}
	return s
}

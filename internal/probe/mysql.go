package probe

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"

	"svctopo/internal/domain"
)

// mysqlProbe opens a client to host:port and calls db.PingContext. Any
// success is Alive.
func mysqlProbe(ctx context.Context, spec *domain.ServiceSpec) domain.ProbeOutcome {
	dsn := fmt.Sprintf("healthcheck:healthcheck@tcp(%s:%d)/", spec.Host, spec.Port)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return deadOnErr(fmt.Errorf("mysql open: %w", err))
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return deadOnErr(fmt.Errorf("mysql ping: %w", err))
	}

	return alive()
}

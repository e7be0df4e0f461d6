// Package storage is the Postgres-backed implementation of
// ServiceSpecStore and ResultSink (§6.1), plus the thin CRUD the engine's
// own API surface needs for diagrams/services/connections/users. Grounded
// on the check_store.go/result_store.go pgxpool pattern from the
// retrieval pack, standardized on pgxpool everywhere (the teacher mixed
// database/sql-over-pgx-stdlib and pgxpool across files; this store picks
// one driver path).
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"svctopo/internal/domain"
)

var ErrNotFound = errors.New("storage: not found")

type Store struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

// Open connects to Postgres and runs the schema migration.
func Open(ctx context.Context, dsn string, log *slog.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("storage: ping: %w", err)
	}
	if err := migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	log.Info("connected to postgres")
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	s.pool.Close()
}

// ListAll satisfies scheduler.SpecLister: a consistent snapshot of every
// service row across every diagram, including each row's persisted
// last_checked so staleness survives a scheduler/process restart.
func (s *Store) ListAll(ctx context.Context) ([]*domain.ServiceSpec, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, diagram_id, name, description, icon, position_x, position_y,
		       host, port, healthcheck_method, polling_interval, request_timeout,
		       expected_status, status_mapping, http_method, headers, body, ssl_verify,
		       follow_redirects, healthcheck_url, tcp_send_data, tcp_expect_data,
		       udp_send_data, udp_expect_data, icmp_packet_count, dns_query_type,
		       dns_expected_result, kafka_topic, kafka_client_id, frontend_host_url,
		       last_checked
		FROM services`)
	if err != nil {
		return nil, fmt.Errorf("list service specs: %w", err)
	}
	defer rows.Close()

	var specs []*domain.ServiceSpec
	for rows.Next() {
		spec, err := scanServiceSpec(rows)
		if err != nil {
			return nil, err
		}
		specs = append(specs, spec)
	}
	return specs, rows.Err()
}

func scanServiceSpec(rows pgx.Rows) (*domain.ServiceSpec, error) {
	var spec domain.ServiceSpec
	var statusMapping, headers []byte
	var method, httpMethod, dnsType string

	err := rows.Scan(
		&spec.ServiceID, &spec.DiagramID, &spec.Name, &spec.Description, &spec.Icon,
		&spec.PositionX, &spec.PositionY,
		&spec.Host, &spec.Port, &method, &spec.PollingIntervalSec, &spec.TimeoutSec,
		&spec.ExpectedStatus, &statusMapping, &httpMethod, &headers, &spec.Body, &spec.SSLVerify,
		&spec.FollowRedirects, &spec.HealthcheckPath, &spec.TCPSendData, &spec.TCPExpectData,
		&spec.UDPSendData, &spec.UDPExpectData, &spec.ICMPPacketCount, &dnsType,
		&spec.DNSExpectedResult, &spec.KafkaTopic, &spec.KafkaClientID, &spec.FrontendHostOverride,
		&spec.LastCheckedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan service spec: %w", err)
	}

	spec.Method = domain.Method(method)
	spec.HTTPMethod = domain.HTTPMethod(httpMethod)
	spec.DNSQueryType = domain.DNSQueryType(dnsType)

	if len(statusMapping) > 0 {
		json.Unmarshal(statusMapping, &spec.StatusMapping)
	}
	if len(headers) > 0 {
		json.Unmarshal(headers, &spec.Headers)
	}

	return &spec, nil
}

// UpdateLatest satisfies runner.SpecStore: idempotent write of the latest
// status and check time for one service.
func (s *Store) UpdateLatest(ctx context.Context, serviceID int, status domain.ServiceStatus, checkedAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE services SET current_status = $1, last_checked = $2, updated_at = $3 WHERE id = $4`,
		status, checkedAt, time.Now().UTC(), serviceID)
	if err != nil {
		return fmt.Errorf("update service latest: %w", err)
	}
	return nil
}

// AppendResult satisfies runner.ResultSink.
func (s *Store) AppendResult(ctx context.Context, result domain.HealthcheckResult) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO healthcheck_results (id, service_id, status, status_code, response_time, error, checked_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		result.ID, result.ServiceID, result.Status, result.StatusCode, result.LatencyMs, result.Error, result.CheckedAt)
	if err != nil {
		return fmt.Errorf("append healthcheck result: %w", err)
	}
	return nil
}

// GetLatest reads a single service's current projection, used by the
// read-only API routes and backed by the Redis write-through cache.
func (s *Store) GetLatest(ctx context.Context, serviceID int) (domain.ServiceLatest, error) {
	var status string
	var lastChecked *time.Time
	err := s.pool.QueryRow(ctx, `SELECT current_status, last_checked FROM services WHERE id = $1`, serviceID).
		Scan(&status, &lastChecked)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ServiceLatest{}, ErrNotFound
	}
	if err != nil {
		return domain.ServiceLatest{}, fmt.Errorf("get service latest: %w", err)
	}
	return domain.ServiceLatest{ServiceID: serviceID, CurrentStatus: domain.ServiceStatus(status), LastCheckedAt: lastChecked}, nil
}

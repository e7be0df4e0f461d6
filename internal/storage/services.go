package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"svctopo/internal/domain"
)

// CreateService inserts one service row and returns its assigned id. This
// is the write half of ServiceSpecStore that the (out-of-scope) diagramming
// UI would call through internal/api; the probing engine only ever reads
// through ListAll/UpdateLatest (§6.1).
func (s *Store) CreateService(ctx context.Context, spec *domain.ServiceSpec) (int, error) {
	statusMapping, err := json.Marshal(spec.StatusMapping)
	if err != nil {
		return 0, fmt.Errorf("marshal status mapping: %w", err)
	}
	headers, err := json.Marshal(spec.Headers)
	if err != nil {
		return 0, fmt.Errorf("marshal headers: %w", err)
	}

	var id int
	err = s.pool.QueryRow(ctx, `
		INSERT INTO services (
			diagram_id, name, description, icon, position_x, position_y,
			host, port, healthcheck_method, polling_interval, request_timeout,
			expected_status, status_mapping, http_method, headers, body, ssl_verify,
			follow_redirects, healthcheck_url, tcp_send_data, tcp_expect_data,
			udp_send_data, udp_expect_data, icmp_packet_count, dns_query_type,
			dns_expected_result, kafka_topic, kafka_client_id, frontend_host_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28,$29)
		RETURNING id`,
		spec.DiagramID, spec.Name, spec.Description, spec.Icon, spec.PositionX, spec.PositionY,
		spec.Host, spec.Port, string(spec.Method), spec.PollingIntervalSec, spec.TimeoutSec,
		spec.ExpectedStatus, statusMapping, string(spec.HTTPMethod), headers, spec.Body, spec.SSLVerify,
		spec.FollowRedirects, spec.HealthcheckPath, spec.TCPSendData, spec.TCPExpectData,
		spec.UDPSendData, spec.UDPExpectData, spec.ICMPPacketCount, string(spec.DNSQueryType),
		spec.DNSExpectedResult, spec.KafkaTopic, spec.KafkaClientID, spec.FrontendHostOverride,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create service: %w", err)
	}
	return id, nil
}

// GetService reads one service row by id.
func (s *Store) GetService(ctx context.Context, id int) (*domain.ServiceSpec, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, diagram_id, name, description, icon, position_x, position_y,
		       host, port, healthcheck_method, polling_interval, request_timeout,
		       expected_status, status_mapping, http_method, headers, body, ssl_verify,
		       follow_redirects, healthcheck_url, tcp_send_data, tcp_expect_data,
		       udp_send_data, udp_expect_data, icmp_packet_count, dns_query_type,
		       dns_expected_result, kafka_topic, kafka_client_id, frontend_host_url,
		       last_checked
		FROM services WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrNotFound
	}
	return scanServiceSpec(rows)
}

// ListServicesByDiagram is the read path behind GET /api/services/diagram/:id.
func (s *Store) ListServicesByDiagram(ctx context.Context, diagramID int) ([]*domain.ServiceSpec, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, diagram_id, name, description, icon, position_x, position_y,
		       host, port, healthcheck_method, polling_interval, request_timeout,
		       expected_status, status_mapping, http_method, headers, body, ssl_verify,
		       follow_redirects, healthcheck_url, tcp_send_data, tcp_expect_data,
		       udp_send_data, udp_expect_data, icmp_packet_count, dns_query_type,
		       dns_expected_result, kafka_topic, kafka_client_id, frontend_host_url,
		       last_checked
		FROM services WHERE diagram_id = $1 ORDER BY id`, diagramID)
	if err != nil {
		return nil, fmt.Errorf("list services by diagram: %w", err)
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

// UpdateService overwrites every mutable field of one service row.
func (s *Store) UpdateService(ctx context.Context, spec *domain.ServiceSpec) error {
	statusMapping, err := json.Marshal(spec.StatusMapping)
	if err != nil {
		return fmt.Errorf("marshal status mapping: %w", err)
	}
	headers, err := json.Marshal(spec.Headers)
	if err != nil {
		return fmt.Errorf("marshal headers: %w", err)
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE services SET
			name=$1, description=$2, icon=$3, position_x=$4, position_y=$5,
			host=$6, port=$7, healthcheck_method=$8, polling_interval=$9, request_timeout=$10,
			expected_status=$11, status_mapping=$12, http_method=$13, headers=$14, body=$15, ssl_verify=$16,
			follow_redirects=$17, healthcheck_url=$18, tcp_send_data=$19, tcp_expect_data=$20,
			udp_send_data=$21, udp_expect_data=$22, icmp_packet_count=$23, dns_query_type=$24,
			dns_expected_result=$25, kafka_topic=$26, kafka_client_id=$27, frontend_host_url=$28,
			updated_at = now()
		WHERE id=$29`,
		spec.Name, spec.Description, spec.Icon, spec.PositionX, spec.PositionY,
		spec.Host, spec.Port, string(spec.Method), spec.PollingIntervalSec, spec.TimeoutSec,
		spec.ExpectedStatus, statusMapping, string(spec.HTTPMethod), headers, spec.Body, spec.SSLVerify,
		spec.FollowRedirects, spec.HealthcheckPath, spec.TCPSendData, spec.TCPExpectData,
		spec.UDPSendData, spec.UDPExpectData, spec.ICMPPacketCount, string(spec.DNSQueryType),
		spec.DNSExpectedResult, spec.KafkaTopic, spec.KafkaClientID, spec.FrontendHostOverride,
		spec.ServiceID,
	)
	if err != nil {
		return fmt.Errorf("update service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateServicePosition is the thin write the (out-of-scope) drag/drop
// layout editor needs; it never touches probe configuration.
func (s *Store) UpdateServicePosition(ctx context.Context, id int, x, y float64) error {
	tag, err := s.pool.Exec(ctx, `UPDATE services SET position_x=$1, position_y=$2, updated_at=now() WHERE id=$3`, x, y, id)
	if err != nil {
		return fmt.Errorf("update service position: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteService removes one service row; connections referencing it cascade
// via the foreign key in migrate().
func (s *Store) DeleteService(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM services WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

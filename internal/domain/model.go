// Package domain holds the entities shared by every layer of the probing
// engine: the probe recipe (ServiceSpec), its outcomes (HealthcheckResult,
// ServiceLatest) and the value broadcast to viewers (StatusUpdate).
package domain

import "time"

// ServiceSpec is the probe recipe for one service node. Fields that don't
// apply to the chosen Method are left zero; validation per method lives in
// pkg/validator rather than here.
type ServiceSpec struct {
	ServiceID int `json:"service_id" db:"id"`

	// Node metadata: not consumed by the probing engine itself, but every
	// row needs it to belong to a diagram and render on the (out-of-scope)
	// canvas. Kept on the flat record per the §9 design note rather than
	// split into a second table.
	DiagramID   int    `json:"diagram_id" db:"diagram_id"`
	Name        string `json:"name" db:"name"`
	Description string `json:"description" db:"description"`
	Icon        string `json:"icon" db:"icon"`
	PositionX   float64 `json:"position_x" db:"position_x"`
	PositionY   float64 `json:"position_y" db:"position_y"`

	Host               string `json:"host" db:"host"`
	Port               int    `json:"port" db:"port"`
	Method             Method `json:"method" db:"healthcheck_method"`
	PollingIntervalSec int    `json:"polling_interval_sec" db:"polling_interval"`
	TimeoutSec         int    `json:"timeout_sec" db:"request_timeout"`

	// LastCheckedAt is the persisted checkpoint the scheduler consults for
	// staleness (spec.md §4.1); it survives process restarts, unlike an
	// in-memory map keyed by ServiceID would.
	LastCheckedAt *time.Time `json:"last_checked_at,omitempty" db:"last_checked"`

	// HTTP / HTTPS
	ExpectedStatus  int               `json:"expected_status" db:"expected_status"`
	StatusMapping   map[string]string `json:"status_mapping" db:"status_mapping"`
	HTTPMethod      HTTPMethod        `json:"http_method" db:"http_method"`
	Headers         map[string]string `json:"headers" db:"headers"`
	Body            string            `json:"body" db:"body"`
	SSLVerify       bool              `json:"ssl_verify" db:"ssl_verify"`
	FollowRedirects bool              `json:"follow_redirects" db:"follow_redirects"`
	HealthcheckPath string            `json:"healthcheck_path" db:"healthcheck_url"`

	// TCP
	TCPSendData   string `json:"tcp_send_data" db:"tcp_send_data"`
	TCPExpectData string `json:"tcp_expect_data" db:"tcp_expect_data"`

	// UDP
	UDPSendData   string `json:"udp_send_data" db:"udp_send_data"`
	UDPExpectData string `json:"udp_expect_data" db:"udp_expect_data"`

	// ICMP
	ICMPPacketCount int `json:"icmp_packet_count" db:"icmp_packet_count"`

	// DNS
	DNSQueryType      DNSQueryType `json:"dns_query_type" db:"dns_query_type"`
	DNSExpectedResult string       `json:"dns_expected_result" db:"dns_expected_result"`

	// Kafka
	KafkaTopic    string `json:"kafka_topic" db:"kafka_topic"`
	KafkaClientID string `json:"kafka_client_id" db:"kafka_client_id"`

	// Postgres
	FrontendHostOverride string `json:"frontend_host_override" db:"frontend_host_url"`
}

// HealthcheckResult is an append-only record of one probe outcome.
type HealthcheckResult struct {
	ID         string        `json:"id" db:"id"`
	ServiceID  int           `json:"service_id" db:"service_id"`
	Status     ServiceStatus `json:"status" db:"status"`
	StatusCode int           `json:"status_code" db:"status_code"`
	LatencyMs  int64         `json:"latency_ms" db:"response_time"`
	Error      string        `json:"error,omitempty" db:"error"`
	CheckedAt  time.Time     `json:"checked_at" db:"checked_at"`
}

// ServiceLatest is the mutable per-service projection the runner writes
// after every probe and the API reads back. The scheduler decides
// staleness from ServiceSpec.LastCheckedAt instead.
type ServiceLatest struct {
	ServiceID     int
	CurrentStatus ServiceStatus
	LastCheckedAt *time.Time
}

// StatusUpdate is the value broadcast to every subscriber after a probe
// completes (or at Checking entry).
type StatusUpdate struct {
	ServiceID int           `json:"service_id"`
	Status    ServiceStatus `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
}

// ProbeOutcome is what a protocol probe hands back to the runner before
// classification.
type ProbeOutcome struct {
	Status     ServiceStatus
	StatusCode int
	Err        error
}

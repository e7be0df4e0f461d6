package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// migrate creates the schema this engine needs if it doesn't exist yet,
// grounded in the original monitoring backend's inline createTables step.
// frontend_host_url, tcp_send_data and friends all live on the services
// table since ServiceSpec is a flat record (§9 design note), not a tagged
// variant — simplicity here over a join-table-per-method design.
func migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			username VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'viewer',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS diagrams (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			public BOOLEAN DEFAULT FALSE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS services (
			id SERIAL PRIMARY KEY,
			diagram_id INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			icon VARCHAR(100),
			host VARCHAR(255),
			port INTEGER,
			position_x REAL DEFAULT 0,
			position_y REAL DEFAULT 0,
			healthcheck_method VARCHAR(20) DEFAULT 'http',
			healthcheck_url TEXT,
			polling_interval INTEGER DEFAULT 30,
			request_timeout INTEGER DEFAULT 5,
			expected_status INTEGER DEFAULT 200,
			status_mapping JSONB DEFAULT '{}',
			http_method VARCHAR(10) DEFAULT 'GET',
			headers JSONB DEFAULT '{}',
			body TEXT,
			ssl_verify BOOLEAN DEFAULT true,
			follow_redirects BOOLEAN DEFAULT true,
			tcp_send_data TEXT,
			tcp_expect_data TEXT,
			udp_send_data TEXT,
			udp_expect_data TEXT,
			icmp_packet_count INTEGER DEFAULT 3,
			dns_query_type VARCHAR(10) DEFAULT 'A',
			dns_expected_result TEXT,
			kafka_topic TEXT,
			kafka_client_id VARCHAR(255) DEFAULT 'service-weaver-healthcheck',
			frontend_host_url TEXT,
			current_status VARCHAR(20) DEFAULT 'unknown',
			last_checked TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (diagram_id) REFERENCES diagrams(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS connections (
			id SERIAL PRIMARY KEY,
			diagram_id INTEGER NOT NULL,
			source_id INTEGER NOT NULL,
			target_id INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (diagram_id) REFERENCES diagrams(id) ON DELETE CASCADE,
			FOREIGN KEY (source_id) REFERENCES services(id) ON DELETE CASCADE,
			FOREIGN KEY (target_id) REFERENCES services(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS healthcheck_results (
			id UUID PRIMARY KEY,
			service_id INTEGER NOT NULL,
			status VARCHAR(20) NOT NULL,
			status_code INTEGER,
			response_time BIGINT,
			error TEXT,
			checked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			FOREIGN KEY (service_id) REFERENCES services(id) ON DELETE CASCADE
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

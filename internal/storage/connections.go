package storage

import (
	"context"
	"fmt"

	"svctopo/internal/domain"
)

// CreateConnection inserts a cosmetic edge between two services. Per §9,
// connections play no role in the probing engine; this is pure CRUD for
// the (out-of-scope) diagram canvas.
func (s *Store) CreateConnection(ctx context.Context, c *domain.Connection) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO connections (diagram_id, source_id, target_id) VALUES ($1,$2,$3) RETURNING id`,
		c.DiagramID, c.SourceID, c.TargetID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create connection: %w", err)
	}
	return id, nil
}

// ListConnectionsByDiagram is the read path behind
// GET /api/connections/diagram/:diagramId.
func (s *Store) ListConnectionsByDiagram(ctx context.Context, diagramID int) ([]*domain.Connection, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, diagram_id, source_id, target_id, created_at FROM connections WHERE diagram_id=$1 ORDER BY id`,
		diagramID,
	)
	if err != nil {
		return nil, fmt.Errorf("list connections by diagram: %w", err)
	}
	defer rows.Close()

	var out []*domain.Connection
	for rows.Next() {
		var c domain.Connection
		if err := rows.Scan(&c.ID, &c.DiagramID, &c.SourceID, &c.TargetID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan connection: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// DeleteConnection removes one edge.
func (s *Store) DeleteConnection(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM connections WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete connection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

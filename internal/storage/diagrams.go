package storage

import (
	"context"
	"fmt"

	"svctopo/internal/domain"
)

// CreateDiagram inserts a new diagram and returns its id.
func (s *Store) CreateDiagram(ctx context.Context, d *domain.Diagram) (int, error) {
	var id int
	err := s.pool.QueryRow(ctx,
		`INSERT INTO diagrams (name, description, public) VALUES ($1,$2,$3) RETURNING id`,
		d.Name, d.Description, d.Public,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create diagram: %w", err)
	}
	return id, nil
}

// GetDiagram reads one diagram by id.
func (s *Store) GetDiagram(ctx context.Context, id int) (*domain.Diagram, error) {
	var d domain.Diagram
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, description, public, created_at, updated_at FROM diagrams WHERE id=$1`, id,
	).Scan(&d.ID, &d.Name, &d.Description, &d.Public, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err, "get diagram")
	}
	return &d, nil
}

// ListDiagrams returns every diagram, used for the admin view; callers
// filter to public-only for non-admin roles (§4.7).
func (s *Store) ListDiagrams(ctx context.Context) ([]*domain.Diagram, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, description, public, created_at, updated_at FROM diagrams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list diagrams: %w", err)
	}
	defer rows.Close()

	var out []*domain.Diagram
	for rows.Next() {
		var d domain.Diagram
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.Public, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan diagram: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// UpdateDiagram overwrites name/description/public for one diagram.
func (s *Store) UpdateDiagram(ctx context.Context, d *domain.Diagram) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE diagrams SET name=$1, description=$2, public=$3, updated_at=now() WHERE id=$4`,
		d.Name, d.Description, d.Public, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update diagram: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteDiagram removes a diagram; services and connections cascade.
func (s *Store) DeleteDiagram(ctx context.Context, id int) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM diagrams WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("delete diagram: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

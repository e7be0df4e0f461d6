package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"svctopo/internal/domain"
)

// CreateAdmin hashes password with bcrypt and inserts the first admin
// account, grounded in original_source's bcrypt-at-signup pattern.
func (s *Store) CreateAdmin(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var u domain.User
	err = s.pool.QueryRow(ctx, `
		INSERT INTO users (username, password_hash, email, role)
		VALUES ($1, $2, $1 || '@local', 'admin')
		RETURNING id, username, password_hash, email, role, created_at, updated_at`,
		username, string(hash),
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create admin: %w", err)
	}
	return &u, nil
}

// GetByUsername looks up one account by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var u domain.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, username, password_hash, email, role, created_at, updated_at
		FROM users WHERE username=$1`, username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Email, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, wrapNotFound(err, "get user by username")
	}
	return &u, nil
}

// CheckPassword compares a plaintext password against the stored bcrypt hash.
func (s *Store) CheckPassword(user *domain.User, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
}

// IsFirstRun reports whether no account exists yet, gating
// POST /api/first-run-admin.
func (s *Store) IsFirstRun(ctx context.Context) (bool, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	return count == 0, nil
}

func wrapNotFound(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

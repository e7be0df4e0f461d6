package domain

import "time"

// Diagram is a named collection of services sharing a visual canvas. The
// canvas itself is an external collaborator; the grouping scopes the API's
// per-diagram listings, while ServiceSpecStore.ListAll reads every service
// regardless of diagram.
type Diagram struct {
	ID          int       `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Public      bool      `json:"public" db:"public"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Connection is a cosmetic graph edge between two services in a diagram.
// Per the design notes, connections play no role in the probing engine.
type Connection struct {
	ID        int       `json:"id" db:"id"`
	DiagramID int       `json:"diagram_id" db:"diagram_id"`
	SourceID  int       `json:"source_id" db:"source_id"`
	TargetID  int       `json:"target_id" db:"target_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ServicePosition is layout-only state for the (out-of-scope) visual editor.
type ServicePosition struct {
	ServiceID int     `json:"service_id" db:"service_id"`
	PositionX float64 `json:"position_x" db:"position_x"`
	PositionY float64 `json:"position_y" db:"position_y"`
}

// UserRole gates the mutating half of the API surface.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleViewer UserRole = "viewer"
)

// User is the minimal account record backing /api/login.
type User struct {
	ID           int       `json:"id" db:"id"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Email        string    `json:"email" db:"email"`
	Role         UserRole  `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

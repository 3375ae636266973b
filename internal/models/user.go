package models

import (
	"time"

	"labtrack-backend/internal/access"
)

// User belongs to exactly one tenant. Email is unique across the whole
// system because it is the login handle. The tenant reference is set at
// creation and never changes.
type User struct {
	ID           string      `db:"id" json:"id"`
	TenantID     string      `db:"tenant_id" json:"tenant_id"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	FirstName    string      `db:"first_name" json:"first_name"`
	LastName     string      `db:"last_name" json:"last_name"`
	Phone        *string     `db:"phone" json:"phone,omitempty"`
	Role         access.Role `db:"role" json:"role"`
	IsActive     bool        `db:"is_active" json:"is_active"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

// UserSummary is the caller-facing shape returned by login, refresh
// and /auth/me.
type UserSummary struct {
	ID         string      `json:"id"`
	Email      string      `json:"email"`
	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Role       access.Role `json:"role"`
	TenantID   string      `json:"tenant_id"`
	TenantName string      `json:"tenant_name"`
}

type CreateUserInput struct {
	Email     string      `json:"email"`
	Password  string      `json:"password"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     *string     `json:"phone"`
	Role      access.Role `json:"role"`
}

// UpdateUserInput never carries email or password; those have their
// own flows. A tenant_id in the payload is rejected, not honored.
type UpdateUserInput struct {
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Phone     *string     `json:"phone"`
	Role      access.Role `json:"role"`
	IsActive  *bool       `json:"is_active"`
	TenantID  *string     `json:"tenant_id"`
}

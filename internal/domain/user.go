package domain

import "time"

// User is an authenticated account that owns integrations.
type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Name         string     `json:"name,omitempty"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateUserRequest holds input for registering a user.
type CreateUserRequest struct {
	Email        string
	PasswordHash string
	Name         string
}

// UpdateUserRequest holds optional fields for updating a user.
// Nil fields are left unchanged.
type UpdateUserRequest struct {
	Email        *string
	PasswordHash *string
	Name         *string
	IsActive     *bool
}

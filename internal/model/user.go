package model

import (
	"context"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for the user directory.
// Implementations own uniqueness enforcement: Create must fail with
// ErrUsernameTaken when the username already exists, atomically with
// respect to concurrent Create calls.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, user User) (User, error)
	List(ctx context.Context) ([]User, error)
}

// User represents a stored user record. Records are created on registration
// and never mutated afterwards.
type User struct {
	ID           uuid.UUID
	Username     string
	PasswordHash string
}

// PublicUser is the listing projection of a User with the hash stripped.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
}

// Public returns the user without credential material.
func (u User) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

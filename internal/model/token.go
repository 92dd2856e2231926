package model

import "github.com/google/uuid"

// Identity is the authenticated principal carried by a token.
type Identity struct {
	UserID   uuid.UUID
	Username string
}

// TokenManager issues and validates bearer tokens.
type TokenManager interface {
	Generate(userID uuid.UUID, username string) (string, error)
	Parse(token string) (Identity, error)
}

package model

import "errors"

var (
	// ErrTokenExpired is returned when a token's signature verifies but its
	// expiry has passed.
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid covers every other validation failure: bad signature,
	// malformed encoding, missing claims. The kinds are not distinguished
	// to avoid leaking which check failed.
	ErrTokenInvalid = errors.New("token invalid")
)

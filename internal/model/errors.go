package model

import "errors"

var (
	// ErrNotFound is returned by stores when no record matches.
	ErrNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when registering a username that exists.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown username and wrong password,
	// deliberately undifferentiated to resist enumeration.
	ErrInvalidCredentials = errors.New("invalid username and/or password")

	// ErrStorage indicates a persistence failure. Not user-correctable.
	ErrStorage = errors.New("storage failure")

	ErrInvalidUsername = errors.New("username must be 3-15 characters")
	ErrInvalidPassword = errors.New("password must not be empty")
)

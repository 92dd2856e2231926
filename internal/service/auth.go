// Package service contains the authentication and directory use cases.
package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/akarasev/userhub/internal/auth"
	"github.com/akarasev/userhub/internal/logger"
	"github.com/akarasev/userhub/internal/model"
)

// Username length bounds, matching the registration contract.
const (
	usernameMinLen = 3
	usernameMaxLen = 15
)

// Auth drives registration, login, token validation and listing over the
// user store. It holds no mutable state of its own; the store owns the
// directory and the token manager key is read-only after construction.
type Auth struct {
	userStore model.UserStore
	hasher    auth.PasswordHasher
	tokens    model.TokenManager
	logger    *logger.Logger
}

func NewAuth(userStore model.UserStore, hasher auth.PasswordHasher, tokens model.TokenManager, logger *logger.Logger) *Auth {
	return &Auth{
		userStore: userStore,
		hasher:    hasher,
		tokens:    tokens,
		logger:    logger,
	}
}

// Register creates a new user with a freshly hashed password. Duplicate
// usernames yield model.ErrUsernameTaken; persistence failures surface as
// model.ErrStorage.
func (a *Auth) Register(ctx context.Context, username, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if err := validateCredentials(username, password); err != nil {
		return model.User{}, err
	}

	_, err := a.userStore.GetByUsername(ctx, username)
	if err == nil {
		a.logger.Info("Auth service: username already taken",
			"username", username)
		return model.User{}, model.ErrUsernameTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
	}

	created, err := a.userStore.Create(ctx, user)
	if err != nil {
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		if errors.Is(err, model.ErrUsernameTaken) {
			return model.User{}, model.ErrUsernameTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username,
		"user_id", created.ID)

	return created, nil
}

// Login verifies the credentials and issues a token. Unknown username and
// wrong password both return model.ErrInvalidCredentials; an unknown user
// still costs one hash verification so the two cases are not separable by
// timing either.
func (a *Auth) Login(ctx context.Context, username, password string) (string, error) {
	a.logger.Debug("Auth service: starting user login",
		"username", username)

	user, err := a.userStore.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			a.hasher.Verify(password, auth.DummyHash)
			return "", model.ErrInvalidCredentials
		}
		a.logger.Error("Auth service: failed to get user by username",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to get user by username: %w", err)
	}

	if !a.hasher.Verify(password, user.PasswordHash) {
		return "", model.ErrInvalidCredentials
	}

	tokenString, err := a.tokens.Generate(user.ID, user.Username)
	if err != nil {
		a.logger.Error("Auth service: failed to issue token",
			"username", username,
			"error", err.Error())
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	a.logger.Info("Auth service: user logged in",
		"username", username,
		"user_id", user.ID)

	return tokenString, nil
}

// Authenticate resolves a bearer token to the identity it encodes.
func (a *Auth) Authenticate(ctx context.Context, tokenString string) (model.Identity, error) {
	return a.tokens.Parse(tokenString)
}

// ListUsers returns every user projected to the public shape, in the
// directory's internal order.
func (a *Auth) ListUsers(ctx context.Context) ([]model.PublicUser, error) {
	users, err := a.userStore.List(ctx)
	if err != nil {
		a.logger.Error("Auth service: failed to list users",
			"error", err.Error())
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	public := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		public = append(public, u.Public())
	}

	return public, nil
}

func validateCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		return model.ErrInvalidUsername
	}
	if password == "" {
		return model.ErrInvalidPassword
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/akarasev/userhub/internal/auth"
	"github.com/akarasev/userhub/internal/model"
	"github.com/akarasev/userhub/internal/repository/file"
	"github.com/akarasev/userhub/internal/testutil"
	"github.com/akarasev/userhub/internal/token"
)

func newAuthService(t *testing.T) *Auth {
	t.Helper()
	store := file.NewStore(filepath.Join(t.TempDir(), "users.json"))
	return NewAuth(store, auth.NewBcryptHasher(bcrypt.MinCost), token.NewJWT("test-secret"), testutil.MakeNoopLogger())
}

func TestAuth_RegisterThenLogin(t *testing.T) {
	ctx := context.Background()
	a := newAuthService(t)

	created, err := a.Register(ctx, "alice", "pw123456")
	require.NoError(t, err)
	assert.NotEqual(t, created.ID.String(), "00000000-0000-0000-0000-000000000000")
	assert.Equal(t, "alice", created.Username)
	assert.NotEmpty(t, created.PasswordHash)
	assert.NotContains(t, created.PasswordHash, "pw123456")

	tokenString, err := a.Login(ctx, "alice", "pw123456")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	identity, err := a.Authenticate(ctx, tokenString)
	require.NoError(t, err)
	assert.Equal(t, created.ID, identity.UserID)
	assert.Equal(t, "alice", identity.Username)
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	a := newAuthService(t)

	_, err := a.Register(ctx, "alice", "pw123456")
	require.NoError(t, err)

	_, err = a.Register(ctx, "alice", "different")
	require.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestAuth_RegisterValidation(t *testing.T) {
	ctx := context.Background()
	a := newAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "username too short", username: "al", password: "pw123456", wantErr: model.ErrInvalidUsername},
		{name: "username too long", username: "a-very-long-username", password: "pw123456", wantErr: model.ErrInvalidUsername},
		{name: "empty username", username: "", password: "pw123456", wantErr: model.ErrInvalidUsername},
		{name: "empty password", username: "alice", password: "", wantErr: model.ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := a.Register(ctx, tt.username, tt.password)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAuth_LoginFailuresAreIndistinguishable(t *testing.T) {
	ctx := context.Background()
	a := newAuthService(t)

	_, err := a.Register(ctx, "realuser", "pw123456")
	require.NoError(t, err)

	_, unknownErr := a.Login(ctx, "nouser", "x")
	_, wrongPassErr := a.Login(ctx, "realuser", "wrongpass")

	require.ErrorIs(t, unknownErr, model.ErrInvalidCredentials)
	require.ErrorIs(t, wrongPassErr, model.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongPassErr.Error())
}

func TestAuth_ListUsersExcludesSecrets(t *testing.T) {
	ctx := context.Background()
	a := newAuthService(t)

	alice, err := a.Register(ctx, "alice", "pw123456")
	require.NoError(t, err)
	bob, err := a.Register(ctx, "bob", "pw654321")
	require.NoError(t, err)

	users, err := a.ListUsers(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []model.PublicUser{
		{ID: alice.ID, Username: "alice"},
		{ID: bob.ID, Username: "bob"},
	}, users)
}

func TestAuth_AuthenticateRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	a := newAuthService(t)

	_, err := a.Authenticate(ctx, "not-a-token")
	require.ErrorIs(t, err, model.ErrTokenInvalid)
}

type failingStore struct {
	err error
}

func (s *failingStore) GetByUsername(ctx context.Context, username string) (model.User, error) {
	return model.User{}, s.err
}

func (s *failingStore) Create(ctx context.Context, user model.User) (model.User, error) {
	return model.User{}, s.err
}

func (s *failingStore) List(ctx context.Context) ([]model.User, error) {
	return nil, s.err
}

func TestAuth_StorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	store := &failingStore{err: errors.Join(model.ErrStorage, errors.New("disk full"))}
	a := NewAuth(store, auth.NewBcryptHasher(bcrypt.MinCost), token.NewJWT("test-secret"), testutil.MakeNoopLogger())

	_, err := a.Register(ctx, "alice", "pw123456")
	require.ErrorIs(t, err, model.ErrStorage)

	_, err = a.ListUsers(ctx)
	require.ErrorIs(t, err, model.ErrStorage)
}

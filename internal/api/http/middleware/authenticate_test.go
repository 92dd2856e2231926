package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akarasev/userhub/internal/api/http/authctx"
	"github.com/akarasev/userhub/internal/model"
	"github.com/akarasev/userhub/internal/testutil"
)

type stubTokenService struct {
	identity model.Identity
	err      error
}

func (s *stubTokenService) Authenticate(ctx context.Context, token string) (model.Identity, error) {
	return s.identity, s.err
}

func TestAuthenticate_Handle(t *testing.T) {
	t.Parallel()

	identity := model.Identity{UserID: uuid.New(), Username: "alice"}

	tests := []struct {
		name       string
		authHeader string
		svc        *stubTokenService
		wantStatus int
		wantDetail string
		wantNext   bool
	}{
		{
			name:       "missing authorization header",
			authHeader: "",
			svc:        &stubTokenService{},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Not authenticated",
		},
		{
			name:       "not a bearer header",
			authHeader: "Basic dXNlcjpwdw==",
			svc:        &stubTokenService{},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Not authenticated",
		},
		{
			name:       "invalid token",
			authHeader: "Bearer invalid",
			svc:        &stubTokenService{err: model.ErrTokenInvalid},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Invalid token",
		},
		{
			name:       "expired token",
			authHeader: "Bearer expired",
			svc:        &stubTokenService{err: model.ErrTokenExpired},
			wantStatus: http.StatusUnauthorized,
			wantDetail: "Signature has expired",
		},
		{
			name:       "valid token",
			authHeader: "Bearer token",
			svc:        &stubTokenService{identity: identity},
			wantStatus: http.StatusOK,
			wantNext:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cm := authctx.NewManager()
			m := NewAuthenticate(tt.svc, cm, testutil.MakeNoopLogger())

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := cm.GetIdentityFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, identity, got)
			})

			req := httptest.NewRequest(http.MethodGet, "/users/list", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			m.Handle(next).ServeHTTP(rec, req)

			require.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantNext, nextCalled)

			if tt.wantDetail != "" {
				var resp struct {
					Detail string `json:"detail"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantDetail, resp.Detail)
			}
		})
	}
}

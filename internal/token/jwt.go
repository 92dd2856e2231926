// Package token implements bearer token issuance and validation.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/akarasev/userhub/internal/model"
)

// tokenTTL bounds token validity. Validity is fully determined by the
// signature and the exp claim; the server keeps no session state.
const tokenTTL = 30 * time.Minute

// JWT implements model.TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey string
}

// NewJWT creates a new JWT token manager with the provided secret key.
// Rotating the key invalidates all outstanding tokens.
func NewJWT(secretKey string) *JWT {
	return &JWT{secretKey: secretKey}
}

// Generate creates a signed token carrying "<userID>:<username>" as subject,
// issued now and expiring after the configured TTL.
func (j *JWT) Generate(userID uuid.UUID, username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   fmt.Sprintf("%s:%s", userID, username),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// Parse validates signature and expiry and extracts the identity. Expired
// tokens yield model.ErrTokenExpired; any other failure yields
// model.ErrTokenInvalid without detail on which check failed.
func (j *JWT) Parse(tokenString string) (model.Identity, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Identity{}, model.ErrTokenExpired
		}
		return model.Identity{}, model.ErrTokenInvalid
	}
	if !token.Valid {
		return model.Identity{}, model.ErrTokenInvalid
	}

	return identityFromSubject(claims.Subject)
}

func identityFromSubject(subject string) (model.Identity, error) {
	id, username, found := strings.Cut(subject, ":")
	if !found || username == "" {
		return model.Identity{}, model.ErrTokenInvalid
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return model.Identity{}, model.ErrTokenInvalid
	}

	return model.Identity{UserID: userID, Username: username}, nil
}

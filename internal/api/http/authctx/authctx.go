// Package authctx propagates the authenticated identity through request
// context.
package authctx

import (
	"context"

	"github.com/akarasev/userhub/internal/model"
)

type contextKey int

const identityKey contextKey = iota

// Manager implements model.ContextManager over request context values.
type Manager struct{}

// NewManager creates a new context manager instance.
func NewManager() *Manager {
	return &Manager{}
}

// SetIdentityToContext returns a child context carrying the identity.
func (m *Manager) SetIdentityToContext(ctx context.Context, identity model.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentityFromContext retrieves the identity stored by
// SetIdentityToContext, reporting whether one was present.
func (m *Manager) GetIdentityFromContext(ctx context.Context) (model.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(model.Identity)
	return identity, ok
}

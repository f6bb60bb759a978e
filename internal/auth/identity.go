package auth

import (
	"context"

	"github.com/hongminglow/employee-be/internal/apperr"
)

type ctxKey string

const identityKey ctxKey = "identity"

// Identity is the caller resolved from a request's access token.
type Identity struct {
	UserID   string
	Username string
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity stored on ctx, if any.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// RequireAuthenticated fails with an UNAUTHORIZED error when ctx carries no identity.
func RequireAuthenticated(ctx context.Context) error {
	if _, ok := IdentityFrom(ctx); !ok {
		return apperr.Unauthorized()
	}
	return nil
}

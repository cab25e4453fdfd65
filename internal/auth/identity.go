// Package auth verifies signed access tokens and carries the caller's
// identity through request contexts. Tokens are issued by an external
// identity provider sharing the signing secret; this service never manages
// credentials.
package auth

import "context"

// Identity is the authenticated caller.
type Identity struct {
	UserID string
	Email  string
}

type contextKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext extracts the caller identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

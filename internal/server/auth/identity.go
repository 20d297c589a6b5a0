package auth

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
)

// Identity is the trusted caller derived from a valid token. It lives only
// as long as the request that carried the token.
type Identity struct {
	Username string
	ID       int64
}

// Resolver is the single gate in front of every protected operation.
type Resolver struct {
	codec *TokenCodec
}

func NewResolver(codec *TokenCodec) *Resolver {
	return &Resolver{codec: codec}
}

// ResolveIdentity maps a raw bearer token to an Identity.
//
// Errors:
//   - common.ErrTokenExpired: signature valid, token past exp.
//   - common.ErrorUnauthenticated: empty, malformed, foreign-signed, or
//     missing the sub or id claim.
func (r *Resolver) ResolveIdentity(tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, common.ErrorUnauthenticated
	}

	claims, err := r.codec.Decode(tokenString)
	if err != nil {
		if errors.Is(err, common.ErrTokenExpired) {
			return Identity{}, common.ErrTokenExpired
		}
		return Identity{}, common.ErrorUnauthenticated
	}

	if claims.Subject == "" || claims.UserID == nil {
		return Identity{}, common.ErrorUnauthenticated
	}

	return Identity{Username: claims.Subject, ID: *claims.UserID}, nil
}

type ctxKey struct{}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// RequireIdentity is IdentityFromContext for data-access code: a missing
// identity is common.ErrorUnauthenticated.
func RequireIdentity(ctx context.Context) (Identity, error) {
	id, ok := IdentityFromContext(ctx)
	if !ok {
		return Identity{}, common.ErrorUnauthenticated
	}
	return id, nil
}

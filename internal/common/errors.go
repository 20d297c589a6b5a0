// Package common defines shared constants and sentinel errors used across
// the client and server layers of taskkeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// ErrorUnauthorized is the single rejection for a failed login. Unknown
	// user and wrong password both map to it.
	ErrorUnauthorized = errors.New("unauthorized")

	// ErrorUnauthenticated means a protected operation was called without a
	// resolvable identity.
	ErrorUnauthenticated = errors.New("unauthenticated")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

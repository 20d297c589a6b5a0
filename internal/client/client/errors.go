package client

import "errors"

var (
	ErrUnavailable   = errors.New("server unavailable")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrTokenExpired  = errors.New("session expired")
	ErrConflict      = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotLoggedIn   = errors.New("not logged in")
	ErrUnexpectedAPI = errors.New("unexpected server response")
)

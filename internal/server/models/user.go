// Package models holds the server-side persistent records.
package models

// User is a registered account. PasswordDigest is never serialized.
type User struct {
	ID             int64   `json:"id"`
	UserName       string  `json:"username"`
	Email          *string `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	PasswordDigest string  `json:"-"`
	IsActive       bool    `json:"is_active"`
}

// Package password turns plaintext passwords into storable digests and
// checks plaintext candidates against them.
//
// Two schemes share the Hasher interface: argon2id (salted, memory-hard,
// the default) and sha256 (unsalted hex digest, kept for compatibility with
// digests produced by earlier deployments; it offers no protection against
// precomputed tables).
package password

import (
	"errors"
	"fmt"
)

const (
	SchemeArgon2id = "argon2id"
	SchemeSHA256   = "sha256"
)

// ErrInvalidHash is returned when a stored digest cannot be parsed.
var ErrInvalidHash = errors.New("invalid password hash")

// Hasher hashes and verifies passwords. Implementations are safe for
// concurrent use and have no side effects.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// IsKnownScheme reports whether New accepts scheme.
func IsKnownScheme(scheme string) bool {
	return scheme == SchemeArgon2id || scheme == SchemeSHA256
}

// New returns the Hasher for scheme. argon2id uses DefaultArgon2idParams.
func New(scheme string) (Hasher, error) {
	switch scheme {
	case SchemeArgon2id:
		return NewArgon2idHasher(DefaultArgon2idParams()), nil
	case SchemeSHA256:
		return SHA256Hasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

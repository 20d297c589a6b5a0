package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// SHA256Hasher produces the lowercase hex SHA-256 of the UTF-8 plaintext.
// The digest is deterministic: equal inputs give equal digests.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(plaintext string) (string, error) {
	return sha256Hex(plaintext), nil
}

func (SHA256Hasher) Verify(plaintext, digest string) bool {
	return subtle.ConstantTimeCompare([]byte(sha256Hex(plaintext)), []byte(digest)) == 1
}

func sha256Hex(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

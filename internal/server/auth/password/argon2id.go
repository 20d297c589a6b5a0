package password

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"runtime"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"golang.org/x/crypto/argon2"
)

const argon2Version = argon2.Version

// Argon2idParams controls hashing cost. MemoryKiB is in KiB as required by
// argon2.IDKey.
type Argon2idParams struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2idParams: 64 MiB, 3 passes, up to 4 lanes.
func DefaultArgon2idParams() Argon2idParams {
	threads := runtime.NumCPU()
	if threads < 1 {
		threads = 1
	}
	if threads > 4 {
		threads = 4
	}
	return Argon2idParams{
		MemoryKiB:   64 * 1024,
		Iterations:  3,
		Parallelism: uint8(threads), // #nosec G115 -- clamped to [1..4].
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Argon2idHasher encodes digests as
//
//	$argon2id$v=19$m=<mem>,t=<iter>,p=<par>$<salt_b64>$<key_b64>
//
// so that Verify can use the parameters a digest was created with.
type Argon2idHasher struct {
	params Argon2idParams
}

func NewArgon2idHasher(p Argon2idParams) *Argon2idHasher {
	return &Argon2idHasher{params: p}
}

func (h *Argon2idHasher) Hash(plaintext string) (string, error) {
	salt := common.GenerateRandByteArray(int(h.params.SaltLength))
	key := argon2.IDKey([]byte(plaintext), salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2Version,
		h.params.MemoryKiB,
		h.params.Iterations,
		h.params.Parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(key),
	), nil
}

// Verify returns false for mismatches and for digests that are malformed or
// whose cost parameters exceed twice the configured ones.
func (h *Argon2idHasher) Verify(plaintext, digest string) bool {
	params, salt, expected, err := decodeArgon2id(digest)
	if err != nil {
		return false
	}
	if params.MemoryKiB > h.params.MemoryKiB*2 ||
		params.Iterations > h.params.Iterations*2 ||
		params.Parallelism > h.params.Parallelism*2 {
		return false
	}

	key := argon2.IDKey([]byte(plaintext), salt, params.Iterations, params.MemoryKiB, params.Parallelism, uint32(len(expected))) // #nosec G115 -- bounded by decode.
	return subtle.ConstantTimeCompare(key, expected) == 1
}

func decodeArgon2id(encoded string) (Argon2idParams, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	if parts[2] != fmt.Sprintf("v=%d", argon2Version) {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	var mem, it, par uint32
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &it, &par); err != nil {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	if mem == 0 || it == 0 || par == 0 || par > 255 {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	b64 := base64.RawStdEncoding
	salt, err := b64.DecodeString(parts[4])
	if err != nil || len(salt) < 8 || len(salt) > 64 {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}
	key, err := b64.DecodeString(parts[5])
	if err != nil || len(key) < 16 || len(key) > 128 {
		return Argon2idParams{}, nil, nil, ErrInvalidHash
	}

	return Argon2idParams{
		MemoryKiB:   mem,
		Iterations:  it,
		Parallelism: uint8(par), // #nosec G115 -- checked <= 255 above.
		SaltLength:  uint32(len(salt)),
		KeyLength:   uint32(len(key)),
	}, salt, key, nil
}

package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// small enough to keep the suite fast
var testArgon2idParams = Argon2idParams{
	MemoryKiB:   8 * 1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

func TestSHA256Hasher_Deterministic(t *testing.T) {
	h := SHA256Hasher{}

	for _, p := range []string{"", "secret1", "пароль", strings.Repeat("x", 1024)} {
		d1, err := h.Hash(p)
		require.NoError(t, err)
		d2, err := h.Hash(p)
		require.NoError(t, err)

		assert.Equal(t, d1, d2)
		assert.Len(t, d1, 64)
		assert.NotEqual(t, p, d1)
		assert.True(t, h.Verify(p, d1))
	}
}

func TestSHA256Hasher_KnownVector(t *testing.T) {
	d, err := SHA256Hasher{}.Hash("")
	require.NoError(t, err)
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", d)
}

func TestSHA256Hasher_RejectsOtherPassword(t *testing.T) {
	h := SHA256Hasher{}
	d, _ := h.Hash("secret1")

	assert.False(t, h.Verify("secret2", d))
	assert.False(t, h.Verify("", d))
	assert.False(t, h.Verify("secret1", strings.ToUpper(d)))
}

func TestArgon2idHasher_RoundTrip(t *testing.T) {
	h := NewArgon2idHasher(testArgon2idParams)

	d, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(d, "$argon2id$v=19$m=8192,t=1,p=1$"))

	assert.True(t, h.Verify("secret1", d))
	assert.False(t, h.Verify("secret2", d))
}

func TestArgon2idHasher_Salted(t *testing.T) {
	h := NewArgon2idHasher(testArgon2idParams)

	d1, err := h.Hash("secret1")
	require.NoError(t, err)
	d2, err := h.Hash("secret1")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
	assert.True(t, h.Verify("secret1", d1))
	assert.True(t, h.Verify("secret1", d2))
}

func TestArgon2idHasher_EmptyPassword(t *testing.T) {
	h := NewArgon2idHasher(testArgon2idParams)
	d, err := h.Hash("")
	require.NoError(t, err)
	assert.True(t, h.Verify("", d))
	assert.False(t, h.Verify(" ", d))
}

func TestArgon2idHasher_MalformedDigests(t *testing.T) {
	h := NewArgon2idHasher(testArgon2idParams)

	for _, d := range []string{
		"",
		"plain",
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
		// cost far above the configured limit
		"$argon2id$v=19$m=1048576,t=1,p=1$c2FsdHNhbHRzYWx0c2FsdA$a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5a2V5",
	} {
		assert.False(t, h.Verify("secret1", d), "digest %q", d)
	}
}

func TestNew(t *testing.T) {
	h, err := New(SchemeSHA256)
	require.NoError(t, err)
	assert.IsType(t, SHA256Hasher{}, h)

	h, err = New(SchemeArgon2id)
	require.NoError(t, err)
	assert.IsType(t, &Argon2idHasher{}, h)

	_, err = New("bcrypt")
	assert.Error(t, err)

	assert.True(t, IsKnownScheme("sha256"))
	assert.False(t, IsKnownScheme(""))
}

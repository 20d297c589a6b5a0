package services

import (
	"context"
	"database/sql"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth/password"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

func newStore(t *testing.T) (*sql.DB, repomanager.RepositoryManager) {
	t.Helper()
	ctx := context.Background()
	db, rm, err := repomanager.Open(ctx, "sqlite://:memory:", logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, rm.RunMigrations(ctx, db))
	return db, rm
}

// countingHasher records how many verifications ran.
type countingHasher struct {
	password.Hasher
	verifies atomic.Int32
}

func (h *countingHasher) Verify(plaintext, digest string) bool {
	h.verifies.Add(1)
	return h.Hasher.Verify(plaintext, digest)
}

func fastArgon2id() password.Hasher {
	return password.NewArgon2idHasher(password.Argon2idParams{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
}

func newCodec() *auth.TokenCodec {
	return auth.NewTokenCodec([]byte("test-secret"), auth.WithClock(func() time.Time { return testNow }))
}

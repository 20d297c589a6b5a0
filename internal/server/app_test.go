package server

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())

	c := &config.Config{}
	c.LoadDefaults()
	c.DatabaseDSN = "sqlite://:memory:"
	c.SecretKey = "app-test-secret"
	c.PasswordScheme = "sha256"
	c.EndpointAddrHTTP = addr
	c.ShutdownTimeout = time.Second
	require.NoError(t, c.Validate())
	return c
}

func TestNewApp_RunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	app, err := newApp(ctx, testConfig(t), logging.NewNop())
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		app.Run(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestNewApp_StoreError(t *testing.T) {
	orig := openStore
	openStore = func(context.Context, string, logging.Logger) (*sql.DB, repomanager.RepositoryManager, error) {
		return nil, nil, errors.New("no db")
	}
	t.Cleanup(func() { openStore = orig })

	_, err := newApp(context.Background(), testConfig(t), logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewTokenCodec_UsesAccessTokenFlag(t *testing.T) {
	cfg, err := config.LoadConfig([]string{"-s", "k", "-t", "1"})
	require.NoError(t, err)

	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	codec := newTokenCodec(cfg, auth.WithClock(func() time.Time { return now }))

	token, err := codec.Issue("alice", 1, 0)
	require.NoError(t, err)

	claims, err := codec.Decode(token)
	require.NoError(t, err)
	assert.True(t, now.Add(time.Minute).Equal(claims.ExpiresAt.Time))
}

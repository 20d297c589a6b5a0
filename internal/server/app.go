// Package server wires the taskkeeper server together: store, migrations,
// password hasher, token codec, services and the HTTP API, and runs it until
// a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth"
	"github.com/dmitrijs2005/taskkeeper/internal/server/auth/password"
	"github.com/dmitrijs2005/taskkeeper/internal/server/config"
	"github.com/dmitrijs2005/taskkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/taskkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.HTTPServer
}

// openStore is a seam for tests.
var openStore = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, rm, err := openStore(ctx, c.DatabaseDSN, logger)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	hasher, err := password.New(c.PasswordScheme)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if c.PasswordScheme == password.SchemeSHA256 {
		logger.Warn(ctx, "sha256 password scheme is unsalted; use argon2id for new deployments")
	}

	codec := newTokenCodec(c)
	m := metrics.New()

	us := services.NewUserService(db, rm, hasher, codec, c.LoginTokenValidityDuration)
	ts := services.NewTodoService(db, rm)

	h := httpapi.NewHandler(logger, us, ts, auth.NewResolver(codec), m, db)
	srv := httpapi.NewHTTPServer(c.EndpointAddrHTTP, logger, h.Routes(), c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// newTokenCodec builds the process-wide codec from the configured key and
// default access token ttl.
func newTokenCodec(c *config.Config, opts ...auth.CodecOption) *auth.TokenCodec {
	opts = append([]auth.CodecOption{auth.WithDefaultTTL(c.AccessTokenValidityDuration)}, opts...)
	return auth.NewTokenCodec([]byte(c.SecretKey), opts...)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.server.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives, then
// waits for the HTTP server to drain and closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}

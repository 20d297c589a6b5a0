// Package repomanager vends dialect-specific repositories bound to a DBTX
// and runs the embedded schema migrations for that dialect.
package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskkeeper/internal/dbx"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/todos"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Todos(db dbx.DBTX) todos.Repository
}

var ErrUnsupportedDSN = errors.New("unsupported database dsn")

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// sqlOpen is a seam for testing sql.Open.
var sqlOpen = sql.Open

// Open picks the driver from the DSN scheme, connects and returns the
// matching manager. postgres:// and postgresql:// go through pgx; sqlite://
// is followed by a modernc path or :memory:. Migration progress is written
// to l.
func Open(ctx context.Context, dsn string, l logging.Logger) (*sql.DB, RepositoryManager, error) {
	switch {
	case strings.HasPrefix(dsn, "postgres://"), strings.HasPrefix(dsn, "postgresql://"):
		db, err := sqlOpen("pgx", dsn)
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db ping error: %w", err)
		}
		return db, NewPostgresRepositoryManager(l), nil

	case strings.HasPrefix(dsn, "sqlite://"):
		db, err := sqlOpen("sqlite", strings.TrimPrefix(dsn, "sqlite://"))
		if err != nil {
			return nil, nil, fmt.Errorf("db open error: %w", err)
		}
		// one connection keeps :memory: databases and pragmas shared
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("db ping error: %w", err)
		}
		return db, NewSQLiteRepositoryManager(l), nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnsupportedDSN, redactDSN(dsn))
}

// redactDSN drops everything after the scheme so credentials never reach logs.
func redactDSN(dsn string) string {
	if i := strings.Index(dsn, "://"); i >= 0 {
		return dsn[:i+3] + "..."
	}
	if len(dsn) > 8 {
		return dsn[:8] + "..."
	}
	return dsn
}

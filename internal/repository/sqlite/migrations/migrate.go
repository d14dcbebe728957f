package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// timeLayout must match sqlite.TimeLayout. It is repeated here because the
// sqlite package imports this one.
const timeLayout = "2006-01-02T15:04:05.000000000"

// goose keeps its settings in package globals.
var gooseMu sync.Mutex

// Run executes all pending migrations.
func Run(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.UpContext(ctx, db, "."); err != nil {
			return fmt.Errorf("goose up: %w", err)
		}
		return nil
	})
}

// UpTo migrates up to and including version.
func UpTo(ctx context.Context, db *sql.DB, version int64, logger *slog.Logger) error {
	return withGoose(logger, func() error {
		if err := goose.UpToContext(ctx, db, ".", version); err != nil {
			return fmt.Errorf("goose up to %d: %w", version, err)
		}
		return nil
	})
}

// Version reports the currently applied schema version.
func Version(ctx context.Context, db *sql.DB) (int64, error) {
	var version int64
	err := withGoose(nil, func() error {
		v, err := goose.GetDBVersionContext(ctx, db)
		if err != nil {
			return fmt.Errorf("goose version: %w", err)
		}
		version = v
		return nil
	})
	return version, err
}

func withGoose(logger *slog.Logger, fn func() error) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	if logger == nil {
		goose.SetLogger(goose.NopLogger())
	} else {
		goose.SetLogger(slogAdapter{logger: logger})
	}

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("goose set dialect: %w", err)
	}

	return fn()
}

// slogAdapter routes goose output through slog.
type slogAdapter struct {
	logger *slog.Logger
}

func (a slogAdapter) Printf(format string, v ...interface{}) {
	a.logger.Info(fmt.Sprintf(format, v...), "component", "migrations")
}

func (a slogAdapter) Fatalf(format string, v ...interface{}) {
	a.logger.Error(fmt.Sprintf(format, v...), "component", "migrations")
}

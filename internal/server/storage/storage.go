// Package storage opens the configured SQL backend and brings its schema up
// to date with the embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const sqliteBusyTimeout = 5 * time.Second

// Open connects to driver ("postgres" or "sqlite") and pings it.
//
// SQLite is limited to one open connection so that transactions queue up
// behind each other instead of failing with SQLITE_BUSY. The cost is that
// revocation lookups also wait for any open rotation or revoke transaction;
// deployments that need non-blocking reads use PostgreSQL.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, dbx.Dialect, error) {
	dialect := dbx.Dialect(driver)

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case dbx.DialectPostgres:
		db, err = sql.Open("pgx", dsn)
	case dbx.DialectSQLite:
		db, err = sql.Open("sqlite", SQLiteDSN(dsn))
		if err == nil {
			db.SetMaxOpenConns(1)
		}
	default:
		return nil, "", fmt.Errorf("unsupported storage driver %q", driver)
	}
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w", driver, err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("ping %s: %w", driver, err)
	}

	return db, dialect, nil
}

// SQLiteDSN adds the pragmas every connection needs: a busy timeout,
// foreign keys, and the sortable SQLite time format for TIMESTAMP columns.
func SQLiteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, fmt.Sprintf("_pragma=busy_timeout(%d)", sqliteBusyTimeout.Milliseconds()))
	}
	if !strings.Contains(dsn, "foreign_keys") {
		params = append(params, "_pragma=foreign_keys(1)")
	}
	if !strings.Contains(dsn, "_time_format") {
		params = append(params, "_time_format=sqlite")
	}
	if len(params) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}

// gooseUp is a seam for tests.
var gooseUp = func(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) error {
	p, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return err
	}
	_, err = p.Up(ctx)
	return err
}

// Migrate applies every pending migration for dialect.
func Migrate(ctx context.Context, db *sql.DB, dialect dbx.Dialect) error {
	fsys, err := migrations.For(string(dialect))
	if err != nil {
		return err
	}

	gd := goose.DialectSQLite3
	if dialect == dbx.DialectPostgres {
		gd = goose.DialectPostgres
	}

	if err := gooseUp(ctx, gd, db, fsys); err != nil {
		return fmt.Errorf("migrate %s: %w", dialect, err)
	}
	return nil
}

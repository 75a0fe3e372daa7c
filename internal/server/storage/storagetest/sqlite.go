// Package storagetest hands tests a migrated, private SQLite database.
package storagetest

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/storage"
	"github.com/google/uuid"
)

// NewSQLite returns an in-memory database with the full schema. It is
// closed when the test ends.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, dialect, err := storage.Open(context.Background(), string(dbx.DialectSQLite), dsn)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := storage.Migrate(context.Background(), db, dialect); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return db
}

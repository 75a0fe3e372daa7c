// Package repomanager vends repository implementations bound to either the
// shared *sql.DB or a running transaction, for one SQL dialect.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/users"
	"github.com/dmitrijs2005/tokengate/internal/server/storage"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Dialect() dbx.Dialect
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
	RevokedTokens(db dbx.DBTX) revokedtokens.Repository
}

// SQLRepositoryManager serves PostgreSQL and SQLite; the dialect only
// changes placeholders and the migration set.
type SQLRepositoryManager struct {
	dialect dbx.Dialect
}

func NewRepositoryManager(dialect dbx.Dialect) (RepositoryManager, error) {
	if !dialect.Valid() {
		return nil, fmt.Errorf("unsupported dialect %q", dialect)
	}
	return &SQLRepositoryManager{dialect: dialect}, nil
}

func (m *SQLRepositoryManager) Dialect() dbx.Dialect {
	return m.dialect
}

func (m *SQLRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RefreshTokens(db dbx.DBTX) refreshtokens.Repository {
	return refreshtokens.NewSQLRepository(db, m.dialect)
}

func (m *SQLRepositoryManager) RevokedTokens(db dbx.DBTX) revokedtokens.Repository {
	return revokedtokens.NewSQLRepository(db, m.dialect)
}

// runMigrations is a seam for tests.
var runMigrations = storage.Migrate

// RunMigrations brings the schema up to date using the embedded goose
// migrations for the manager's dialect.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, m.dialect)
}

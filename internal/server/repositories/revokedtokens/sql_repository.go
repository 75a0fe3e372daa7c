package revokedtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
)

type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	query := r.dialect.Rebind(`SELECT 1 FROM revoked_access_tokens WHERE token = ?`)

	var one int
	err := r.db.QueryRowContext(ctx, query, token).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	case err != nil:
		return false, fmt.Errorf("db error: %w", err)
	}
	return true, nil
}

func (r *SQLRepository) Insert(ctx context.Context, e *models.RevokedAccessToken) error {
	query := r.dialect.Rebind(
		`INSERT INTO revoked_access_tokens (token, user_id, revoked_at, expires_at, reason)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (token) DO NOTHING`)

	var reason sql.NullString
	if e.Reason != nil {
		reason = sql.NullString{String: *e.Reason, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query, e.Token, e.UserID, e.RevokedAt.UTC(), e.ExpiresAt.UTC(), reason)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLRepository) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	query := r.dialect.Rebind(`DELETE FROM revoked_access_tokens WHERE expires_at < ?`)

	res, err := r.db.ExecContext(ctx, query, before.UTC())
	if err != nil {
		return 0, fmt.Errorf("error performing sql request: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}

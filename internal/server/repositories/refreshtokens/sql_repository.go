package refreshtokens

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/google/uuid"
)

const selectColumns = `SELECT id, user_id, token, expires_at, revoked_at, created_at FROM refresh_tokens`

// SQLRepository works against both PostgreSQL and SQLite; queries are
// written with '?' and rebound for the dialect.
type SQLRepository struct {
	db      dbx.DBTX
	dialect dbx.Dialect
}

func NewSQLRepository(db dbx.DBTX, dialect dbx.Dialect) *SQLRepository {
	return &SQLRepository{db: db, dialect: dialect}
}

func (r *SQLRepository) Create(ctx context.Context, userID, token string, issuedAt, expiresAt time.Time) (*models.RefreshToken, error) {
	rt := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt.UTC(),
		CreatedAt: issuedAt.UTC(),
	}

	query := r.dialect.Rebind(
		`INSERT INTO refresh_tokens (id, user_id, token, expires_at, created_at)
		 VALUES (?, ?, ?, ?, ?)`)

	_, err := r.db.ExecContext(ctx, query, rt.ID, rt.UserID, rt.Token, rt.ExpiresAt, rt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	return rt, nil
}

func (r *SQLRepository) FindActive(ctx context.Context, token, userID string, now time.Time) (*models.RefreshToken, error) {
	query := r.dialect.Rebind(selectColumns +
		` WHERE token = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, token, userID, now.UTC()))
}

func (r *SQLRepository) Find(ctx context.Context, token string) (*models.RefreshToken, error) {
	query := r.dialect.Rebind(selectColumns + ` WHERE token = ?`)

	return r.scanOne(r.db.QueryRowContext(ctx, query, token))
}

func (r *SQLRepository) Revoke(ctx context.Context, token string, now time.Time) error {
	query := r.dialect.Rebind(
		`UPDATE refresh_tokens SET revoked_at = ? WHERE token = ? AND revoked_at IS NULL`)

	if _, err := r.db.ExecContext(ctx, query, now.UTC(), token); err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}
	return nil
}

func (r *SQLRepository) Consume(ctx context.Context, token, userID string, now time.Time) (bool, error) {
	query := r.dialect.Rebind(
		`UPDATE refresh_tokens SET revoked_at = ?
		 WHERE token = ? AND user_id = ? AND revoked_at IS NULL AND expires_at > ?`)

	now = now.UTC()
	res, err := r.db.ExecContext(ctx, query, now, token, userID, now)
	if err != nil {
		return false, fmt.Errorf("error performing sql request: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return n == 1, nil
}

func (r *SQLRepository) PruneExpired(ctx context.Context, before time.Time) (int64, error) {
	query := r.dialect.Rebind(`DELETE FROM refresh_tokens WHERE expires_at < ?`)

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

func (r *SQLRepository) scanOne(row *sql.Row) (*models.RefreshToken, error) {
	var (
		rt        models.RefreshToken
		revokedAt sql.NullTime
	)

	err := row.Scan(&rt.ID, &rt.UserID, &rt.Token, &rt.ExpiresAt, &revokedAt, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	rt.ExpiresAt = rt.ExpiresAt.UTC()
	rt.CreatedAt = rt.CreatedAt.UTC()
	if revokedAt.Valid {
		t := revokedAt.Time.UTC()
		rt.RevokedAt = &t
	}
	return &rt, nil
}

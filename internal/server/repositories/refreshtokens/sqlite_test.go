package refreshtokens

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/server/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteRepo(t *testing.T) *SQLRepository {
	t.Helper()
	return NewSQLRepository(storagetest.NewSQLite(t), dbx.DialectSQLite)
}

func TestSQLite_FindActiveStates(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "u1", "active", now, now.Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u1", "expired", now, now.Add(-time.Second))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u1", "revoked", now, now.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, repo.Revoke(ctx, "revoked", now))

	got, err := repo.FindActive(ctx, "active", "u1", now)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))

	for _, tc := range []struct{ token, user string }{
		{"expired", "u1"},
		{"revoked", "u1"},
		{"active", "u2"},
		{"missing", "u1"},
	} {
		_, err := repo.FindActive(ctx, tc.token, tc.user, now)
		assert.ErrorIs(t, err, common.ErrorNotFound, "%s/%s", tc.token, tc.user)
	}
}

func TestSQLite_ExpiryBoundaryIsExclusive(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "u1", "edge", now, now)
	require.NoError(t, err)

	_, err = repo.FindActive(ctx, "edge", "u1", now)
	require.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.FindActive(ctx, "edge", "u1", now.Add(-time.Millisecond))
	require.NoError(t, err)
}

func TestSQLite_RevokeIsIdempotent(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "u1", "tok", now, now.Add(time.Hour))
	require.NoError(t, err)

	first := now.Add(time.Minute)
	require.NoError(t, repo.Revoke(ctx, "tok", first))
	require.NoError(t, repo.Revoke(ctx, "tok", first.Add(time.Minute)))
	require.NoError(t, repo.Revoke(ctx, "unknown", first))

	got, err := repo.Find(ctx, "tok")
	require.NoError(t, err)
	require.NotNil(t, got.RevokedAt)
	assert.True(t, got.RevokedAt.Equal(first), "first revocation time must win, got %v", got.RevokedAt)
}

func TestSQLite_ConsumeOnce(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "u1", "tok", now, now.Add(time.Hour))
	require.NoError(t, err)

	ok, err := repo.Consume(ctx, "tok", "u2", now)
	require.NoError(t, err)
	assert.False(t, ok, "other subject must not consume")

	ok, err = repo.Consume(ctx, "tok", "u1", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Consume(ctx, "tok", "u1", now)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := repo.Find(ctx, "tok")
	require.NoError(t, err)
	assert.True(t, got.IsRevoked())
}

func TestSQLite_PruneExpired(t *testing.T) {
	repo := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.Create(ctx, "u1", "old", now, now.Add(-2*time.Hour))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "u1", "new", now, now.Add(2*time.Hour))
	require.NoError(t, err)

	n, err := repo.PruneExpired(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = repo.Find(ctx, "old")
	require.ErrorIs(t, err, common.ErrorNotFound)
	_, err = repo.Find(ctx, "new")
	require.NoError(t, err)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func login(t *testing.T, e *env, pair *models.TokenPair) *Principal {
	t.Helper()
	p, err := e.svc.Authenticate(context.Background(), "Bearer "+pair.AccessToken)
	require.NoError(t, err)
	return p
}

func TestRevoke_LogsOutBothTokens(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pair := e.register(t, "alice@example.com", "pw")
	p := login(t, e, pair)

	e.clk.Advance(5 * time.Minute)
	require.NoError(t, e.svc.Revoke(ctx, p, pair.RefreshToken))

	_, err := e.svc.Authenticate(ctx, "Bearer "+pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrRevoked)

	_, err = e.svc.Refresh(ctx, pair.AccessToken, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidRefreshToken)

	rt := e.refreshRow(t, pair.RefreshToken)
	require.NotNil(t, rt.RevokedAt)
	assert.True(t, rt.RevokedAt.Equal(t0.Add(5*time.Minute)))
}

func TestRevoke_OtherSessionsSurvive(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := e.register(t, "bob@example.com", "pw")
	second, err := e.svc.Login(ctx, "bob@example.com", "pw")
	require.NoError(t, err)

	require.NoError(t, e.svc.Revoke(ctx, login(t, e, first), first.RefreshToken))

	_, err = e.svc.Authenticate(ctx, "Bearer "+second.AccessToken)
	assert.NoError(t, err)
	_, err = e.svc.Refresh(ctx, second.AccessToken, second.RefreshToken)
	assert.NoError(t, err)
}

func TestRevoke_NotOwner(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.register(t, "alice@example.com", "pw")
	mallory := e.register(t, "mallory@example.com", "pw")

	err := e.svc.Revoke(ctx, login(t, e, mallory), alice.RefreshToken)
	assert.ErrorIs(t, err, common.ErrNotOwner)

	err = e.svc.Revoke(ctx, login(t, e, mallory), "no-such-token")
	assert.ErrorIs(t, err, common.ErrNotOwner)

	assert.True(t, e.refreshRow(t, alice.RefreshToken).IsActive(e.clk.Now()))
	_, err = e.svc.Authenticate(ctx, "Bearer "+mallory.AccessToken)
	assert.NoError(t, err, "refused revocation must not blacklist the caller")
}

func TestRevoke_Idempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pair := e.register(t, "carol@example.com", "pw")
	p := login(t, e, pair)

	require.NoError(t, e.svc.Revoke(ctx, p, pair.RefreshToken))
	first := e.refreshRow(t, pair.RefreshToken).RevokedAt

	e.clk.Advance(time.Minute)
	require.NoError(t, e.svc.Revoke(ctx, p, pair.RefreshToken))
	assert.True(t, e.refreshRow(t, pair.RefreshToken).RevokedAt.Equal(*first))
}

func TestRevoke_Validation(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pair := e.register(t, "dave@example.com", "pw")

	assert.ErrorIs(t, e.svc.Revoke(ctx, nil, pair.RefreshToken), common.ErrMissingCredential)
	assert.ErrorIs(t, e.svc.Revoke(ctx, login(t, e, pair), ""), common.ErrMissingField)
}

func TestRevoke_BlacklistEntryExpiresWithToken(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	pair := e.register(t, "erin@example.com", "pw")
	require.NoError(t, e.svc.Revoke(ctx, login(t, e, pair), pair.RefreshToken))

	store := e.repos.RevokedTokens(e.db)
	n, err := store.PruneExpired(ctx, t0.Add(59*time.Minute))
	require.NoError(t, err)
	assert.Zero(t, n)

	n, err = store.PruneExpired(ctx, t0.Add(61*time.Minute))
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestRevoke_RedisBackend(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	var external *revokedtokens.RedisRepository
	e := newEnv(t, func(d *Deps) {
		external = revokedtokens.NewRedisRepository(rdb, d.Clock)
		d.RevokedTokens = external
	})
	ctx := context.Background()
	pair := e.register(t, "frank@example.com", "pw")

	e.clk.Advance(15 * time.Minute)
	require.NoError(t, e.svc.Revoke(ctx, login(t, e, pair), pair.RefreshToken))

	_, err = e.svc.Authenticate(ctx, "Bearer "+pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrRevoked)

	ok, err := external.IsRevoked(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, ok)

	sqlHit, err := e.repos.RevokedTokens(e.db).IsRevoked(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.False(t, sqlHit, "redis backend replaces the SQL table")

	assert.Len(t, mr.Keys(), 1)
	assert.Equal(t, 45*time.Minute, mr.TTL(mr.Keys()[0]))

	mr.Close()
	_, err = e.svc.Authenticate(ctx, "Bearer "+pair.AccessToken)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestRevoke_ExternalStoreFailure(t *testing.T) {
	e := newEnv(t)
	ext := &fakeRevokedRepo{insertErr: errDBDown}
	svc := NewRevocationService(e.db, e.repos, ext, e.clk, logging.Nop{}, e.reporter)
	pair := e.register(t, "grace@example.com", "pw")

	err := svc.Revoke(context.Background(), login(t, e, pair), pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, 1, e.reporter.count())
}

func TestRevoke_LookupFailure(t *testing.T) {
	clk := newTestClock()
	codec := newTestCodec(t, testConfig(), clk)
	rep := &recordingReporter{}
	rm := &fakeRepoManager{r: &fakeRefreshRepo{findErr: errDBDown}}
	svc := NewRevocationService(nil, rm, nil, clk, logging.Nop{}, rep)

	claims := codec.NewClaims("U1", "", nil)
	err := svc.Revoke(context.Background(), &Principal{Token: "t", Claims: claims}, "r")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, 1, rep.count())
}

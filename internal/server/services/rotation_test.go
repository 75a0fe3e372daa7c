package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefresh_RotatesAndInvalidatesPredecessor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	first := e.register(t, "alice@example.com", "s3cret")

	e.clk.Advance(time.Minute)
	second, err := e.svc.Refresh(ctx, first.AccessToken, first.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	old := e.refreshRow(t, first.RefreshToken)
	require.NotNil(t, old.RevokedAt)
	assert.True(t, old.RevokedAt.Equal(t0.Add(time.Minute)))

	next := e.refreshRow(t, second.RefreshToken)
	assert.True(t, next.ExpiresAt.Equal(t0.Add(time.Minute+e.cfg.RefreshTokenValidity)))

	_, err = e.svc.Refresh(ctx, first.AccessToken, first.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidRefreshToken)

	third, err := e.svc.Refresh(ctx, second.AccessToken, second.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, third.AccessToken)
}

func TestRefresh_KeepsSubjectEmailAndRoles(t *testing.T) {
	e := newEnv(t)
	first := e.register(t, "Bob@Example.com", "pw")

	before, err := e.codec.Decode(first.AccessToken)
	require.NoError(t, err)

	pair, err := e.svc.Refresh(context.Background(), first.AccessToken, first.RefreshToken)
	require.NoError(t, err)

	after, err := e.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, before.Subject, after.Subject)
	assert.Equal(t, "bob@example.com", after.Email)
	assert.Equal(t, []string{common.RoleUser}, after.Roles)
}

func TestRefresh_AcceptsExpiredAccessToken(t *testing.T) {
	e := newEnv(t)
	first := e.register(t, "carol@example.com", "pw")

	e.clk.Advance(3 * time.Hour)
	_, err := e.codec.Decode(first.AccessToken)
	require.ErrorIs(t, err, common.ErrTokenExpired)

	pair, err := e.svc.Refresh(context.Background(), first.AccessToken, first.RefreshToken)
	require.NoError(t, err)

	claims, err := e.codec.Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.After(e.clk.Now()))
}

func TestRefresh_RejectsExpiredRefreshToken(t *testing.T) {
	e := newEnv(t)
	first := e.register(t, "dave@example.com", "pw")

	e.clk.Advance(e.cfg.RefreshTokenValidity)
	_, err := e.svc.Refresh(context.Background(), first.AccessToken, first.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidRefreshToken)
}

func TestRefresh_RejectsForeignRefreshToken(t *testing.T) {
	e := newEnv(t)
	alice := e.register(t, "alice@example.com", "pw")
	mallory := e.register(t, "mallory@example.com", "pw")

	_, err := e.svc.Refresh(context.Background(), mallory.AccessToken, alice.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidRefreshToken)

	assert.True(t, e.refreshRow(t, alice.RefreshToken).IsActive(e.clk.Now()), "failed attempt must not burn the token")
}

func TestRefresh_RejectsBadAccessToken(t *testing.T) {
	e := newEnv(t)
	pair := e.register(t, "erin@example.com", "pw")

	_, err := e.svc.Refresh(context.Background(), "garbage", pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidAccessToken)
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = e.svc.Refresh(context.Background(), tampered, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrInvalidAccessToken)

	assert.True(t, e.refreshRow(t, pair.RefreshToken).IsActive(e.clk.Now()))
}

func TestRefresh_MissingFields(t *testing.T) {
	e := newEnv(t)

	_, err := e.svc.Refresh(context.Background(), "", "r")
	assert.ErrorIs(t, err, common.ErrMissingField)
	_, err = e.svc.Refresh(context.Background(), "a", "")
	assert.ErrorIs(t, err, common.ErrMissingField)
}

func TestRefresh_UnknownSubjectRollsBack(t *testing.T) {
	e := newEnv(t)
	issuer := NewTokenIssuer(e.codec, e.repos, e.clk, logging.Nop{})

	ghost, err := issuer.IssuePair(context.Background(), e.db, "ghost", "ghost@example.com", nil, time.Hour)
	require.NoError(t, err)

	_, err = e.svc.Refresh(context.Background(), ghost.AccessToken, ghost.RefreshToken)
	assert.ErrorIs(t, err, common.ErrUnknownSubject)

	assert.True(t, e.refreshRow(t, ghost.RefreshToken).IsActive(e.clk.Now()), "consume must be rolled back")
}

func TestRefresh_StorageFailureIsReported(t *testing.T) {
	e := newEnv(t)
	pair := e.register(t, "frank@example.com", "pw")
	require.NoError(t, e.db.Close())

	_, err := e.svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.Equal(t, 1, e.reporter.count())
}

func TestRefresh_ConcurrentRedemptionSucceedsOnce(t *testing.T) {
	e := newEnv(t)
	pair := e.register(t, "grace@example.com", "pw")

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		wins    int
		refused int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			_, err := e.svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case assert.ErrorIs(t, err, common.ErrInvalidRefreshToken):
				refused++
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, wins)
	assert.Equal(t, n-1, refused)
}

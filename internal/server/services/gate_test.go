package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBearer(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Bearer abc", "abc", true},
		{"bearer abc", "abc", true},
		{"BEARER  abc ", "abc", true},
		{"", "", false},
		{"Bearer", "", false},
		{"Bearer ", "", false},
		{"Basic abc", "", false},
		{"abc", "", false},
		{"Bearer a b", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseBearer(tt.in)
		assert.Equal(t, tt.wantOK, ok, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func newGate(t *testing.T, revoked *fakeRevokedRepo) (*Gate, *testClock, *recordingReporter, func(subject string) string) {
	t.Helper()
	clk := newTestClock()
	codec := newTestCodec(t, testConfig(), clk)
	rep := &recordingReporter{}
	mint := func(subject string) string {
		tok, err := codec.Encode(codec.NewClaims(subject, subject+"@example.com", []string{common.RoleUser}))
		require.NoError(t, err)
		return tok
	}
	return NewGate(codec, revoked, logging.Nop{}, rep), clk, rep, mint
}

func rejectionReason(t *testing.T, err error) RejectReason {
	t.Helper()
	var rej *Rejection
	require.True(t, errors.As(err, &rej), "expected *Rejection, got %T: %v", err, err)
	return rej.Reason
}

func TestGate_Authenticates(t *testing.T) {
	store := &fakeRevokedRepo{}
	g, _, _, mint := newGate(t, store)
	tok := mint("U1")

	p, err := g.Authenticate(context.Background(), "Bearer "+tok)
	require.NoError(t, err)
	assert.Equal(t, tok, p.Token)
	assert.Equal(t, "U1", p.Subject())
	assert.Equal(t, []string{common.RoleUser}, p.Claims.Roles)
	assert.Equal(t, 1, store.lookups)
}

func TestGate_MissingCredential(t *testing.T) {
	store := &fakeRevokedRepo{}
	g, _, _, _ := newGate(t, store)

	for _, cred := range []string{"", "Bearer", "Token abc"} {
		_, err := g.Authenticate(context.Background(), cred)
		assert.Equal(t, ReasonMissingCredential, rejectionReason(t, err))
		assert.ErrorIs(t, err, common.ErrMissingCredential)
	}
	assert.Zero(t, store.lookups)
}

func TestGate_InvalidTokenNeverReachesStore(t *testing.T) {
	store := &fakeRevokedRepo{}
	g, clk, _, mint := newGate(t, store)
	tok := mint("U1")

	_, err := g.Authenticate(context.Background(), "Bearer not-a-jwt")
	assert.Equal(t, ReasonInvalidToken, rejectionReason(t, err))
	assert.ErrorIs(t, err, common.ErrMalformedToken)

	clk.Advance(2 * time.Hour)
	_, err = g.Authenticate(context.Background(), "Bearer "+tok)
	assert.Equal(t, ReasonInvalidToken, rejectionReason(t, err))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.ErrorIs(t, err, common.ErrInvalidAccessToken)

	assert.Zero(t, store.lookups)
}

func TestGate_RevocationSupersedesValidity(t *testing.T) {
	store := &fakeRevokedRepo{}
	g, _, _, mint := newGate(t, store)
	tok := mint("U1")

	_, err := g.Authenticate(context.Background(), "Bearer "+tok)
	require.NoError(t, err)

	require.NoError(t, store.Insert(context.Background(), &models.RevokedAccessToken{Token: tok, UserID: "U1"}))

	_, err = g.Authenticate(context.Background(), "Bearer "+tok)
	assert.Equal(t, ReasonRevoked, rejectionReason(t, err))
	assert.ErrorIs(t, err, common.ErrRevoked)
}

func TestGate_FailsClosedOnStorageError(t *testing.T) {
	store := &fakeRevokedRepo{lookupErr: errDBDown}
	g, _, rep, mint := newGate(t, store)

	p, err := g.Authenticate(context.Background(), "Bearer "+mint("U1"))
	require.Nil(t, p)
	assert.Equal(t, ReasonStorageUnavailable, rejectionReason(t, err))
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	assert.ErrorIs(t, err, errDBDown)
	assert.Equal(t, 1, rep.count())
}

func TestPrincipalContext(t *testing.T) {
	_, ok := PrincipalFromContext(context.Background())
	assert.False(t, ok)

	p := &Principal{Token: "t", Claims: &models.AccessClaims{Subject: "U1"}}
	got, ok := PrincipalFromContext(WithPrincipal(context.Background(), p))
	require.True(t, ok)
	assert.Same(t, p, got)
}

package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserService_CreateAndVerify(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	us := newUserService(e.db, e.repos, e.clk, bcrypt.MinCost)

	u, err := us.CreateAccount(ctx, e.db, " Admin@Example.com ", "pw", []string{common.RoleAdministrator, common.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", u.Email)
	assert.NotEqual(t, []byte("pw"), u.PasswordHash)

	id, err := us.VerifyCredential(ctx, "admin@example.com", "pw")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	roles, err := us.RolesFor(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{common.RoleAdministrator, common.RoleUser}, roles)

	ok, err := us.SubjectExists(ctx, id)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = us.SubjectExists(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestUserService_VerifyCredentialRefuses(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	us := newUserService(e.db, e.repos, e.clk, bcrypt.MinCost)
	_, err := us.CreateAccount(ctx, e.db, "a@example.com", "pw", []string{common.RoleUser})
	require.NoError(t, err)

	_, err = us.VerifyCredential(ctx, "a@example.com", "bad")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
	_, err = us.VerifyCredential(ctx, "b@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}

func TestUserService_StorageErrors(t *testing.T) {
	clk := newTestClock()
	rm := &fakeRepoManager{u: &fakeUsersRepo{getErr: errDBDown, existsErr: errDBDown, rolesErr: errDBDown}}
	us := newUserService(nil, rm, clk, bcrypt.MinCost)
	ctx := context.Background()

	_, err := us.VerifyCredential(ctx, "a@example.com", "pw")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	_, err = us.RolesFor(ctx, "U1")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
	_, err = us.SubjectExists(ctx, "U1")
	assert.ErrorIs(t, err, common.ErrStorageUnavailable)
}

func TestUserService_Bind(t *testing.T) {
	clk := newTestClock()
	rm := &fakeRepoManager{u: &fakeUsersRepo{exists: true}}
	us := newUserService(nil, rm, clk, bcrypt.MinCost)

	bound := us.Bind(nil)
	assert.NotSame(t, us, bound)
	ok, err := bound.SubjectExists(context.Background(), "U1")
	require.NoError(t, err)
	assert.True(t, ok)
}

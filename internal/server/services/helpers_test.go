package services

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/auth"
	"github.com/dmitrijs2005/tokengate/internal/server/config"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/users"
	"github.com/dmitrijs2005/tokengate/internal/server/storage/storagetest"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var t0 = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock { return &testClock{now: t0} }

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "services-test-secret"
	return cfg
}

func newTestCodec(t *testing.T, cfg *config.Config, clk *testClock) *auth.Codec {
	t.Helper()
	c, err := auth.NewCodec(auth.CodecConfig{
		SecretKey:           []byte(cfg.SecretKey),
		Issuer:              cfg.Issuer,
		Audience:            cfg.Audience,
		AccessTokenValidity: cfg.AccessTokenValidity,
	}, clk)
	require.NoError(t, err)
	return c
}

type recordingReporter struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingReporter) Report(_ context.Context, err error) {
	r.mu.Lock()
	r.errs = append(r.errs, err)
	r.mu.Unlock()
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

// env is a full service stack over a private SQLite database.
type env struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	clk      *testClock
	cfg      *config.Config
	codec    *auth.Codec
	svc      *AuthService
	reporter *recordingReporter
}

func newEnv(t *testing.T, opts ...func(*Deps)) *env {
	t.Helper()

	db := storagetest.NewSQLite(t)
	repos, err := repomanager.NewRepositoryManager(dbx.DialectSQLite)
	require.NoError(t, err)

	clk := newTestClock()
	cfg := testConfig()
	codec := newTestCodec(t, cfg, clk)
	rep := &recordingReporter{}

	d := Deps{
		DB:         db,
		Repos:      repos,
		Codec:      codec,
		Clock:      clk,
		Logger:     logging.Nop{},
		Reporter:   rep,
		BcryptCost: bcrypt.MinCost,
	}
	for _, o := range opts {
		o(&d)
	}

	return &env{
		db: db, repos: repos, clk: clk, cfg: cfg, codec: codec,
		svc: NewAuthService(d, cfg), reporter: rep,
	}
}

func (e *env) register(t *testing.T, email, secret string) *models.TokenPair {
	t.Helper()
	pair, err := e.svc.Register(context.Background(), email, secret)
	require.NoError(t, err)
	return pair
}

func (e *env) refreshRow(t *testing.T, token string) *models.RefreshToken {
	t.Helper()
	rt, err := e.repos.RefreshTokens(e.db).Find(context.Background(), token)
	require.NoError(t, err)
	return rt
}

// --- fakes for failure paths ---

var errDBDown = errors.New("db down")

type fakeRefreshRepo struct {
	refreshtokens.Repository
	createErr  error
	findOut    *models.RefreshToken
	findErr    error
	consumeOK  bool
	consumeErr error
	revokeErr  error
}

func (f *fakeRefreshRepo) Create(_ context.Context, userID, token string, issuedAt, expiresAt time.Time) (*models.RefreshToken, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.RefreshToken{UserID: userID, Token: token, CreatedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	return f.findOut, f.findErr
}

func (f *fakeRefreshRepo) Consume(context.Context, string, string, time.Time) (bool, error) {
	return f.consumeOK, f.consumeErr
}

func (f *fakeRefreshRepo) Revoke(context.Context, string, time.Time) error {
	return f.revokeErr
}

type fakeRevokedRepo struct {
	mu        sync.Mutex
	revoked   map[string]bool
	lookupErr error
	insertErr error
	lookups   int
}

func (f *fakeRevokedRepo) IsRevoked(_ context.Context, token string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookups++
	if f.lookupErr != nil {
		return false, f.lookupErr
	}
	return f.revoked[token], nil
}

func (f *fakeRevokedRepo) Insert(_ context.Context, e *models.RevokedAccessToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	if f.revoked == nil {
		f.revoked = map[string]bool{}
	}
	f.revoked[e.Token] = true
	return nil
}

func (f *fakeRevokedRepo) PruneExpired(context.Context, time.Time) (int64, error) { return 0, nil }

type fakeUsersRepo struct {
	users.Repository
	getOut    *models.User
	getErr    error
	exists    bool
	existsErr error
	roles     []string
	rolesErr  error
}

func (f *fakeUsersRepo) GetByEmail(context.Context, string) (*models.User, error) {
	return f.getOut, f.getErr
}

func (f *fakeUsersRepo) Exists(context.Context, string) (bool, error) { return f.exists, f.existsErr }

func (f *fakeUsersRepo) Roles(context.Context, string) ([]string, error) { return f.roles, f.rolesErr }

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	v *fakeRevokedRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Dialect() dbx.Dialect                            { return dbx.DialectPostgres }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) RevokedTokens(dbx.DBTX) revokedtokens.Repository { return m.v }

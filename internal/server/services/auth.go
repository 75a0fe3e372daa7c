package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/auth"
	"github.com/dmitrijs2005/tokengate/internal/server/config"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
	"golang.org/x/crypto/bcrypt"
)

// Deps are the collaborators NewAuthService wires together.
type Deps struct {
	DB       *sql.DB
	Repos    repomanager.RepositoryManager
	Codec    *auth.Codec
	Clock    clock.Clock
	Logger   logging.Logger
	Reporter ErrorReporter

	// RevokedTokens, when set, replaces the SQL revoked-token table.
	RevokedTokens revokedtokens.Repository

	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
}

// AuthService is what transports talk to.
type AuthService struct {
	db       *sql.DB
	users    *UserService
	issuer   *TokenIssuer
	gate     *Gate
	rotation *RotationService
	revoker  *RevocationService
	log      logging.Logger

	loginValidity    time.Duration
	registerValidity time.Duration
}

func NewAuthService(d Deps, cfg *config.Config) *AuthService {
	if d.Clock == nil {
		d.Clock = clock.System
	}
	if d.Logger == nil {
		d.Logger = logging.Nop{}
	}
	if d.Reporter == nil {
		d.Reporter = nopReporter{}
	}

	revoked := d.RevokedTokens
	if revoked == nil {
		revoked = d.Repos.RevokedTokens(d.DB)
	}

	if d.BcryptCost == 0 {
		d.BcryptCost = bcrypt.DefaultCost
	}

	users := newUserService(d.DB, d.Repos, d.Clock, d.BcryptCost)
	issuer := NewTokenIssuer(d.Codec, d.Repos, d.Clock, d.Logger)

	return &AuthService{
		db:               d.DB,
		users:            users,
		issuer:           issuer,
		gate:             NewGate(d.Codec, revoked, d.Logger, d.Reporter),
		rotation:         NewRotationService(d.DB, d.Repos, d.Codec, issuer, users, d.Clock, cfg.RefreshTokenValidity, d.Logger, d.Reporter),
		revoker:          NewRevocationService(d.DB, d.Repos, d.RevokedTokens, d.Clock, d.Logger, d.Reporter),
		log:              d.Logger,
		loginValidity:    cfg.RefreshTokenLoginValidity,
		registerValidity: cfg.RefreshTokenValidity,
	}
}

// Login verifies credentials and issues a pair whose refresh token lives
// for RefreshTokenLoginValidity.
func (s *AuthService) Login(ctx context.Context, email, secret string) (*models.TokenPair, error) {
	const op = "services.AuthService.Login"

	if email == "" || secret == "" {
		return nil, common.ErrMissingField
	}

	subject, err := s.users.VerifyCredential(ctx, email, secret)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			s.log.Info(ctx, "login refused", "op", op)
		} else {
			s.log.Error(ctx, "login failed", "op", op, logging.Err(err))
		}
		return nil, err
	}

	roles, err := s.users.RolesFor(ctx, subject)
	if err != nil {
		return nil, err
	}

	pair, err := s.issuer.IssuePair(ctx, s.db, subject, normalizeEmail(email), roles, s.loginValidity)
	if err != nil {
		return nil, err
	}

	s.log.Info(ctx, "user logged in", "op", op, "user_id", subject)
	return pair, nil
}

// Register creates a User account and logs it in.
func (s *AuthService) Register(ctx context.Context, email, secret string) (*models.TokenPair, error) {
	return s.register(ctx, email, secret, common.RoleUser)
}

// RegisterGuest creates a Guest account and logs it in.
func (s *AuthService) RegisterGuest(ctx context.Context, email, secret string) (*models.TokenPair, error) {
	return s.register(ctx, email, secret, common.RoleGuest)
}

func (s *AuthService) register(ctx context.Context, email, secret, role string) (*models.TokenPair, error) {
	const op = "services.AuthService.register"

	var pair *models.TokenPair
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		roles := []string{role}
		u, err := s.users.CreateAccount(ctx, tx, email, secret, roles)
		if err != nil {
			return err
		}
		pair, err = s.issuer.IssuePair(ctx, tx, u.ID, u.Email, roles, s.registerValidity)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorAlreadyExists), errors.Is(err, common.ErrMissingField):
			s.log.Info(ctx, "registration refused", "op", op, logging.Err(err))
			return nil, err
		case errors.Is(err, common.ErrorInternal):
			return nil, err
		default:
			s.log.Error(ctx, "registration failed", "op", op, logging.Err(err))
			return nil, storageErr(err)
		}
	}

	s.log.Info(ctx, "user registered", "op", op, "role", role)
	return pair, nil
}

func (s *AuthService) Refresh(ctx context.Context, accessToken, refreshToken string) (*models.TokenPair, error) {
	return s.rotation.Refresh(ctx, accessToken, refreshToken)
}

func (s *AuthService) Revoke(ctx context.Context, p *Principal, refreshToken string) error {
	return s.revoker.Revoke(ctx, p, refreshToken)
}

func (s *AuthService) Authenticate(ctx context.Context, credential string) (*Principal, error) {
	return s.gate.Authenticate(ctx, credential)
}

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
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
)

// RotationService exchanges a refresh token for a new pair. Redeeming and
// revoking the old token is a single conditional UPDATE, so a token can be
// redeemed at most once however many callers race for it.
type RotationService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	codec    *auth.Codec
	issuer   *TokenIssuer
	identity IdentityStore
	clk      clock.Clock
	validity time.Duration
	log      logging.Logger
	reporter ErrorReporter
}

func NewRotationService(db *sql.DB, repos repomanager.RepositoryManager, codec *auth.Codec, issuer *TokenIssuer,
	identity IdentityStore, clk clock.Clock, refreshValidity time.Duration, log logging.Logger, reporter ErrorReporter) *RotationService {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &RotationService{
		db: db, repos: repos, codec: codec, issuer: issuer, identity: identity,
		clk: clk, validity: refreshValidity, log: log, reporter: reporter,
	}
}

// Refresh reads the subject from accessToken (expiry ignored) and redeems
// refreshToken for it. Consuming the old token, the subject lookup and the
// new refresh row share one transaction.
func (s *RotationService) Refresh(ctx context.Context, accessToken, refreshToken string) (*models.TokenPair, error) {
	const op = "services.RotationService.Refresh"

	if accessToken == "" || refreshToken == "" {
		return nil, common.ErrMissingField
	}

	claims, err := s.codec.DecodeIgnoringExpiry(accessToken)
	if err != nil {
		s.log.Debug(ctx, "access token unusable for refresh", "op", op, logging.Err(err))
		return nil, errors.Join(common.ErrInvalidAccessToken, err)
	}

	var pair *models.TokenPair
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		ok, err := s.repos.RefreshTokens(tx).Consume(ctx, refreshToken, claims.Subject, s.clk.Now())
		if err != nil {
			return storageErr(err)
		}
		if !ok {
			return common.ErrInvalidRefreshToken
		}

		identity := s.identity.Bind(tx)
		exists, err := identity.SubjectExists(ctx, claims.Subject)
		if err != nil {
			return err
		}
		if !exists {
			return common.ErrUnknownSubject
		}
		roles, err := identity.RolesFor(ctx, claims.Subject)
		if err != nil {
			return err
		}

		pair, err = s.issuer.IssuePair(ctx, tx, claims.Subject, claims.Email, roles, s.validity)
		return err
	})
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidRefreshToken), errors.Is(err, common.ErrUnknownSubject):
			s.log.Info(ctx, "refresh refused", "op", op, "user_id", claims.Subject, logging.Err(err))
			return nil, err
		case errors.Is(err, common.ErrorInternal):
			s.log.Error(ctx, "refresh failed", "op", op, "user_id", claims.Subject, logging.Err(err))
			s.reporter.Report(ctx, err)
			return nil, err
		default:
			s.log.Error(ctx, "refresh failed", "op", op, "user_id", claims.Subject, logging.Err(err))
			s.reporter.Report(ctx, err)
			return nil, storageErr(err)
		}
	}

	s.log.Info(ctx, "refresh token rotated", "op", op, "user_id", claims.Subject)
	return pair, nil
}

package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/revokedtokens"
)

const RevocationReasonUserRequested = "user requested revocation"

// RevocationService implements logout: the caller's refresh token is revoked
// and the access token they presented is blacklisted until it expires.
type RevocationService struct {
	db       *sql.DB
	repos    repomanager.RepositoryManager
	external revokedtokens.Repository
	clk      clock.Clock
	log      logging.Logger
	reporter ErrorReporter
}

// NewRevocationService wires the service. external is the revoked-token
// store when it lives outside the SQL database (Redis); nil means the SQL
// table, written in the same transaction as the refresh revocation.
func NewRevocationService(db *sql.DB, repos repomanager.RepositoryManager, external revokedtokens.Repository,
	clk clock.Clock, log logging.Logger, reporter ErrorReporter) *RevocationService {
	if reporter == nil {
		reporter = nopReporter{}
	}
	return &RevocationService{db: db, repos: repos, external: external, clk: clk, log: log, reporter: reporter}
}

func (s *RevocationService) Revoke(ctx context.Context, p *Principal, refreshToken string) error {
	const op = "services.RevocationService.Revoke"

	if p == nil || p.Claims == nil {
		return common.ErrMissingCredential
	}
	if refreshToken == "" {
		return common.ErrMissingField
	}

	rt, err := s.repos.RefreshTokens(s.db).Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.log.Info(ctx, "revoke of unknown refresh token", "op", op, "user_id", p.Subject())
			return common.ErrNotOwner
		}
		return s.fail(ctx, op, p, err)
	}
	if rt.UserID != p.Subject() {
		s.log.Warn(ctx, "revoke of foreign refresh token", "op", op, "user_id", p.Subject())
		return common.ErrNotOwner
	}

	now := s.clk.Now()
	reason := RevocationReasonUserRequested
	entry := &models.RevokedAccessToken{
		Token:     p.Token,
		UserID:    p.Subject(),
		RevokedAt: now,
		ExpiresAt: p.Claims.ExpiresAt,
		Reason:    &reason,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := s.repos.RefreshTokens(tx).Revoke(ctx, refreshToken, now); err != nil {
			return err
		}
		if s.external == nil {
			return s.repos.RevokedTokens(tx).Insert(ctx, entry)
		}
		return nil
	})
	if err != nil {
		return s.fail(ctx, op, p, err)
	}

	if s.external != nil {
		if err := s.external.Insert(ctx, entry); err != nil {
			return s.fail(ctx, op, p, err)
		}
	}

	s.log.Info(ctx, "tokens revoked", "op", op, "user_id", p.Subject())
	return nil
}

func (s *RevocationService) fail(ctx context.Context, op string, p *Principal, err error) error {
	s.log.Error(ctx, "revocation failed", "op", op, "user_id", p.Subject(), logging.Err(err))
	s.reporter.Report(ctx, err)
	return storageErr(err)
}

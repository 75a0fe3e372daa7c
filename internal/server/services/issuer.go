package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/common"
	"github.com/dmitrijs2005/tokengate/internal/dbx"
	"github.com/dmitrijs2005/tokengate/internal/logging"
	"github.com/dmitrijs2005/tokengate/internal/server/auth"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/dmitrijs2005/tokengate/internal/server/repositories/repomanager"
)

// TokenIssuer mints an access token and persists a fresh refresh token.
type TokenIssuer struct {
	codec *auth.Codec
	repos repomanager.RepositoryManager
	clk   clock.Clock
	log   logging.Logger
}

func NewTokenIssuer(codec *auth.Codec, repos repomanager.RepositoryManager, clk clock.Clock, log logging.Logger) *TokenIssuer {
	return &TokenIssuer{codec: codec, repos: repos, clk: clk, log: log}
}

// IssuePair writes the refresh row through db, so a caller holding a
// transaction gets the row inside it.
func (i *TokenIssuer) IssuePair(ctx context.Context, db dbx.DBTX, subjectID, email string, roles []string, refreshValidity time.Duration) (*models.TokenPair, error) {
	const op = "services.TokenIssuer.IssuePair"

	access, err := i.codec.Encode(i.codec.NewClaims(subjectID, email, roles))
	if err != nil {
		i.log.Error(ctx, "encode access token", "op", op, logging.Err(err))
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	refresh, err := common.MakeRandHexString(common.RefreshTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	now := i.clk.Now()
	if _, err := i.repos.RefreshTokens(db).Create(ctx, subjectID, refresh, now, now.Add(refreshValidity)); err != nil {
		i.log.Error(ctx, "persist refresh token", "op", op, "user_id", subjectID, logging.Err(err))
		return nil, storageErr(err)
	}

	return &models.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(i.codec.Validity() / time.Second),
		TokenType:    common.BearerScheme,
	}, nil
}

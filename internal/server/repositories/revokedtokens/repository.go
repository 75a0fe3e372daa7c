// Package revokedtokens is the blacklist of access tokens that were revoked
// before their natural expiry. The authentication gate reads it on every
// request.
package revokedtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/server/models"
)

type Repository interface {
	// IsRevoked is a point lookup by token.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// Insert blacklists entry.Token. Inserting an already blacklisted token is
	// not an error.
	Insert(ctx context.Context, entry *models.RevokedAccessToken) error

	// PruneExpired removes entries whose expires_at < before and returns how
	// many went away.
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}

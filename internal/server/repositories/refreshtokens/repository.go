// Package refreshtokens stores opaque refresh tokens and implements the
// single-use redemption check used by rotation.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/server/models"
)

// Repository defines operations for issuing, redeeming and revoking refresh
// tokens. All times are compared as given; callers pass the injected clock.
type Repository interface {
	// Create stores a new active refresh token for userID, issued at issuedAt.
	Create(ctx context.Context, userID, token string, issuedAt, expiresAt time.Time) (*models.RefreshToken, error)

	// FindActive returns the token only if it exists, belongs to userID, is
	// not revoked and expires after now. Every other case is
	// common.ErrorNotFound, so callers cannot tell them apart.
	FindActive(ctx context.Context, token, userID string, now time.Time) (*models.RefreshToken, error)

	// Find looks a token up regardless of its state.
	Find(ctx context.Context, token string) (*models.RefreshToken, error)

	// Revoke sets revoked_at to now unless it is already set. Revoking twice,
	// or revoking an unknown token, is not an error.
	Revoke(ctx context.Context, token string, now time.Time) error

	// Consume atomically revokes an active token owned by userID and reports
	// whether this call was the one that did it.
	Consume(ctx context.Context, token, userID string, now time.Time) (bool, error)

	// PruneExpired deletes rows with expires_at < before.
	PruneExpired(ctx context.Context, before time.Time) (int64, error)
}

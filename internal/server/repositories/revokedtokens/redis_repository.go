package revokedtokens

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/tokengate/internal/clock"
	"github.com/dmitrijs2005/tokengate/internal/server/models"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "tokengate:revoked:"

// RedisRepository keeps each entry as a key that expires together with the
// access token it blacklists, so pruning is Redis' job.
type RedisRepository struct {
	rdb *redis.Client
	clk clock.Clock
}

func NewRedisRepository(rdb *redis.Client, clk clock.Clock) *RedisRepository {
	if clk == nil {
		clk = clock.System
	}
	return &RedisRepository{rdb: rdb, clk: clk}
}

func redisKey(token string) string {
	return redisKeyPrefix + token
}

func (r *RedisRepository) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := r.rdb.Exists(ctx, redisKey(token)).Result()
	if err != nil {
		return false, fmt.Errorf("redis error: %w", err)
	}
	return n > 0, nil
}

// Insert is a no-op for entries that are already past expiry: such a token
// can no longer pass signature verification anyway.
func (r *RedisRepository) Insert(ctx context.Context, e *models.RevokedAccessToken) error {
	ttl := e.ExpiresAt.Sub(r.clk.Now())
	if ttl <= 0 {
		return nil
	}

	reason := ""
	if e.Reason != nil {
		reason = *e.Reason
	}
	value := fmt.Sprintf("%s|%d|%s", e.UserID, e.RevokedAt.Unix(), reason)

	if err := r.rdb.SetNX(ctx, redisKey(e.Token), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// PruneExpired does nothing; keys carry their own TTL.
func (r *RedisRepository) PruneExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

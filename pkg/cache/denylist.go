package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const refreshTokenKeyPrefix = "auth:refresh:used:"

// TokenDenylist remembers refresh token IDs that were already exchanged.
type TokenDenylist struct {
	client *redis.Client
}

func NewTokenDenylist(client *redis.Client) *TokenDenylist {
	return &TokenDenylist{client: client}
}

// MarkUsed records jti until ttl elapses. It reports false when jti was
// already recorded, so of two concurrent callers only one gets true.
func (d *TokenDenylist) MarkUsed(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Second
	}
	set, err := d.client.SetNX(ctx, refreshTokenKeyPrefix+jti, "1", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to record refresh token: %w", err)
	}
	return set, nil
}

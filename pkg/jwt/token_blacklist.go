package jwt

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "auth:revoked:"

// TokenBlacklist remembers logged-out token ids until they would have expired anyway.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenBlacklist struct {
	client *redis.Client
}

// NewTokenBlacklist returns a redis-backed list, or a no-op one when client is nil.
func NewTokenBlacklist(client *redis.Client) TokenBlacklist {
	if client == nil {
		return noopTokenBlacklist{}
	}
	return &redisTokenBlacklist{client: client}
}

func (b *redisTokenBlacklist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, revokedKeyPrefix+tokenID, 1, ttl).Err()
}

func (b *redisTokenBlacklist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := b.client.Get(ctx, revokedKeyPrefix+tokenID).Err()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

type noopTokenBlacklist struct{}

func (noopTokenBlacklist) Revoke(context.Context, string, time.Duration) error { return nil }
func (noopTokenBlacklist) IsRevoked(context.Context, string) (bool, error)     { return false, nil }

// Package redisstore provides the redis-backed store backends for the
// token revocation registry and the 2FA challenge store. Both lean on
// redis key expiry instead of sweeping entries themselves.
package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mlukasik/auth-service/internal/domain"
)

const (
	bannedTokenKeyPrefix = "banned_token:"
	// bannedTokenTTL outlives any session token's own expiry window, so
	// a revoked token can never become valid again before it would have
	// expired anyway.
	bannedTokenTTL = 24 * time.Hour
)

// BannedTokenStore is the redis-backed revocation registry.
type BannedTokenStore struct {
	client *redis.Client
}

var _ domain.BannedTokenStore = (*BannedTokenStore)(nil)

// NewBannedTokenStore creates a revocation registry on the given
// connection.
func NewBannedTokenStore(client *redis.Client) *BannedTokenStore {
	return &BannedTokenStore{client: client}
}

// AddToken marks a token revoked for bannedTokenTTL.
func (s *BannedTokenStore) AddToken(ctx context.Context, token string) error {
	key := bannedTokenKeyPrefix + token
	if err := s.client.Set(ctx, key, "1", bannedTokenTTL).Err(); err != nil {
		return fmt.Errorf("failed to set banned token in redis: %w", err)
	}
	return nil
}

// ContainsToken reports whether a token is currently revoked.
func (s *BannedTokenStore) ContainsToken(ctx context.Context, token string) (bool, error) {
	key := bannedTokenKeyPrefix + token
	n, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check banned token in redis: %w", err)
	}
	return n > 0, nil
}

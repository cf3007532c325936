package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshStore tracks issued refresh tokens so each one can be used once.
// Key format: refresh:<token_id>, value is the owning user id.
type RefreshStore struct {
	client *redis.Client
}

// NewRefreshStore creates a RefreshStore wrapping the given Redis client.
func NewRefreshStore(client *redis.Client) *RefreshStore {
	return &RefreshStore{client: client}
}

// Save records a live refresh token that expires with ttl.
func (s *RefreshStore) Save(ctx context.Context, tokenID, userID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, refreshKey(tokenID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the token.
func (s *RefreshStore) Consume(ctx context.Context, tokenID string) (string, bool, error) {
	userID, err := s.client.GetDel(ctx, refreshKey(tokenID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("consume refresh token: %w", err)
	}
	return userID, true, nil
}

// Revoke drops the token. Unknown ids are not an error.
func (s *RefreshStore) Revoke(ctx context.Context, tokenID string) error {
	if err := s.client.Del(ctx, refreshKey(tokenID)).Err(); err != nil {
		return fmt.Errorf("revoke refresh token: %w", err)
	}
	return nil
}

func refreshKey(tokenID string) string {
	return "refresh:" + tokenID
}

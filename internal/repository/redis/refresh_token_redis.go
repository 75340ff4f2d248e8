package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/George-lab-star/ToDoListMonolith/internal/repository"
)

type refreshTokenRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRefreshTokenRepository creates a Redis-backed refresh token store.
// ttl should match the refresh token lifetime so entries expire on their own.
func NewRefreshTokenRepository(client *redis.Client, ttl time.Duration) repository.RefreshTokenRepository {
	return &refreshTokenRepository{
		client: client,
		ttl:    ttl,
	}
}

func tokenKey(userID int64) string {
	return fmt.Sprintf("refresh_token:%d", userID)
}

// Store saves the refresh token for a user, replacing any previous one.
// The key TTL is reset on every write.
func (r *refreshTokenRepository) Store(ctx context.Context, userID int64, token string) error {
	if err := r.client.Set(ctx, tokenKey(userID), token, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

// Get returns the stored refresh token, or "" when none exists or it expired.
func (r *refreshTokenRepository) Get(ctx context.Context, userID int64) (string, error) {
	token, err := r.client.Get(ctx, tokenKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get refresh token: %w", err)
	}
	return token, nil
}

// Delete removes the stored refresh token. Deleting an absent entry is a no-op.
func (r *refreshTokenRepository) Delete(ctx context.Context, userID int64) error {
	if err := r.client.Del(ctx, tokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

package repository

import (
	"context"
)

// RefreshTokenRepository persists at most one live refresh token per user.
// Store overwrites any previous entry and resets its expiry; Get returns
// ("", nil) when no token exists or it has expired; Delete of an absent
// entry is a no-op.
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID int64, token string) error
	Get(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, userID int64) error
}

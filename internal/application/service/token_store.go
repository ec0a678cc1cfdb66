package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TokenStore holds the currently valid refresh token per user. Storing the
// token out of band lets refresh rotation reject stale tokens and makes
// logout a single delete.
type TokenStore interface {
	StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error
	GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error)
	DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error
}

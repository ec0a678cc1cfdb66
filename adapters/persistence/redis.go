package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/viewtube/internal/application/service"
	"github.com/khoahotran/viewtube/internal/config"
)

func NewRedisClient(cfg config.Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	fmt.Println("Connect Redis successfully.")
	return rdb, nil
}

type redisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) service.TokenStore {
	return &redisTokenStore{rdb: rdb}
}

var ErrTokenNotFound = errors.New("refresh token not found")

func refreshTokenKey(userID uuid.UUID) string {
	return "refresh_token:" + userID.String()
}

func (s *redisTokenStore) StoreRefreshToken(ctx context.Context, userID uuid.UUID, token string, ttl time.Duration) error {
	if err := s.rdb.Set(ctx, refreshTokenKey(userID), token, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (s *redisTokenStore) GetRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := s.rdb.Get(ctx, refreshTokenKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrTokenNotFound
		}
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	return token, nil
}

func (s *redisTokenStore) DeleteRefreshToken(ctx context.Context, userID uuid.UUID) error {
	if err := s.rdb.Del(ctx, refreshTokenKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

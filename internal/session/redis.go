package session

import (
	"context"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/example/blog-platform/internal/config"
)

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(cfg *config.Config) (*RedisStore, error) {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return &RedisStore{client: c, ttl: time.Duration(cfg.SessionTTLSec) * time.Second}, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }

func (s *RedisStore) Create(ctx context.Context, userID uint) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, key(token), strconv.FormatUint(uint64(userID), 10), s.ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (s *RedisStore) UserID(ctx context.Context, token string) (uint, bool, error) {
	val, err := s.client.Get(ctx, key(token)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, false, err
	}
	return uint(id), true, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	return s.client.Del(ctx, key(token)).Err()
}

func key(token string) string { return "session:" + token }

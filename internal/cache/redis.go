package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &RedisStore{rdb: redis.NewClient(opts)}, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

// Invalidate apaga chaves exatas e expande padrões terminados em "*" via SCAN.
func (s *RedisStore) Invalidate(ctx context.Context, keys ...string) error {
	var exact []string
	for _, k := range keys {
		if !isPattern(k) {
			exact = append(exact, k)
			continue
		}

		iter := s.rdb.Scan(ctx, 0, k, 100).Iterator()
		for iter.Next(ctx) {
			exact = append(exact, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scan %s: %w", k, err)
		}
	}

	if len(exact) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, exact...).Err()
}

var _ Store = (*RedisStore)(nil)

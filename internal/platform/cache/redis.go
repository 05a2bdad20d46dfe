package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// RedisStore shares cached payloads between API replicas.
type RedisStore struct {
	client    redis.UniversalClient
	ttl       time.Duration
	keyPrefix string
	flight    singleflight.Group
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration, keyPrefix string) *RedisStore {
	return &RedisStore{
		client:    client,
		ttl:       ttl,
		keyPrefix: keyPrefix,
	}
}

// ConnectRedis dials addr and fails fast when the server does not answer PING.
func ConnectRedis(ctx context.Context, addr string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis addr=%s: %w", addr, err)
	}
	return rdb, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, nil
	}

	value, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get key=%s: %w", key, err)
	}
	return value, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return nil
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set key=%s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) GetOrLoad(ctx context.Context, key string, loader Loader) (Lookup, error) {
	return loadThrough(ctx, s, &s.flight, key, loader)
}

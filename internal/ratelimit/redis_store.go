package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const keyPrefix = "bookit:login_rl:"

type RedisCounterStore struct {
	client *redis.Client
}

func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

func (s *RedisCounterStore) Get(ctx context.Context, key string) (int, error) {
	n, err := s.client.Get(ctx, keyPrefix+key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return n, nil
}

func (s *RedisCounterStore) Set(ctx context.Context, key string, count int, ttl time.Duration) error {
	return s.client.Set(ctx, keyPrefix+key, count, ttl).Err()
}

var _ CounterStore = (*RedisCounterStore)(nil)

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// RedisStore keeps live session ids in Redis with a TTL matching the token
// lifetime.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a Redis-backed session store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Save(ctx context.Context, id string, ttl time.Duration) error {
	if err := s.client.Set(ctx, keyPrefix+id, 1, ttl).Err(); err != nil {
		return fmt.Errorf("session: save %s: %w", id, err)
	}
	return nil
}

func (s *RedisStore) Exists(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, keyPrefix+id).Result()
	if err != nil {
		return false, fmt.Errorf("session: exists %s: %w", id, err)
	}
	return n > 0, nil
}

func (s *RedisStore) Clear(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("session: clear %s: %w", id, err)
	}
	return nil
}

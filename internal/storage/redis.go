package storage

import (
	"context"
	"errors"
	"fmt"

	goRedis "github.com/redis/go-redis/v9"
)

type redisStore struct {
	client *goRedis.Client
}

// NewRedis stores each bucket as a plain string key without expiry.
func NewRedis(client *goRedis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}

	return value, nil
}

func (r *redisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}

	return nil
}

func (r *redisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}

	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobRepository хранит блобы как строковые ключи Redis без TTL
type RedisBlobRepository struct {
	client *redis.Client
	prefix string
}

func NewRedisBlobRepository(client *redis.Client, prefix string) *RedisBlobRepository {
	return &RedisBlobRepository{client: client, prefix: prefix}
}

func (r *RedisBlobRepository) key(key string) string {
	return r.prefix + key
}

func (r *RedisBlobRepository) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get blob: %w", err)
	}
	if data == nil {
		data = []byte{}
	}
	return data, nil
}

func (r *RedisBlobRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("redis set blob: %w", err)
	}
	return nil
}

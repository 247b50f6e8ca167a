package storage

import (
	"context"
	"errors"

	"github.com/go-redis/redis/v8"
)

const scanBatch = 100

// RedisMedium keeps each key as a plain redis string without expiry.
type RedisMedium struct {
	client *redis.Client
}

func NewRedisMedium(client *redis.Client) *RedisMedium {
	return &RedisMedium{client: client}
}

func (m *RedisMedium) Scan(ctx context.Context, prefix string) (map[string]string, error) {
	var keys []string
	iter := m.client.Scan(ctx, 0, prefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	values, err := m.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		// Keys deleted between SCAN and MGET come back nil.
		if s, ok := v.(string); ok {
			out[keys[i]] = s
		}
	}
	return out, nil
}

func (m *RedisMedium) Read(ctx context.Context, key string) (string, bool, error) {
	val, err := m.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (m *RedisMedium) Write(ctx context.Context, key, value string) error {
	return m.client.Set(ctx, key, value, 0).Err()
}

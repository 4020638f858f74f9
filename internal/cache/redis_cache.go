package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecoplaster/storefront/internal/config"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	cfg    *config.CacheConfig
}

func NewRedisCache(client *redis.Client, cfg *config.CacheConfig) Cache {
	return &redisCache{
		client: client,
		cfg:    cfg,
	}
}

func (r *redisCache) Get(ctx context.Context, key string, value any) (bool, error) {

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {

		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		return false, fmt.Errorf("failed to get key %s from redis: %w", key, err)

	}

	if err := json.Unmarshal(data, value); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache data for key %s: %w", key, err)
	}

	return true, nil
}

func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}

	if ttl <= 0 {
		ttl = r.cfg.DefaultTTL
	}

	err = r.client.Set(ctx, key, data, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set key %s in redis: %w", key, err)
	}

	return nil

}

func (r *redisCache) Delete(ctx context.Context, key string) error {

	err := r.client.Del(ctx, key).Err()
	if err != nil {
		return fmt.Errorf("failed to delete key %s from redis: %w", key, err)
	}

	return nil

}

func (r *redisCache) WriteAll(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	// Encode everything up front so a bad value cannot leave a half-sent batch.
	payloads := make([][]byte, len(writes))
	for i, w := range writes {
		if w.Delete {
			continue
		}

		data, err := json.Marshal(w.Value)
		if err != nil {
			return fmt.Errorf("failed to marshal value for key %s: %w", w.Key, err)
		}
		payloads[i] = data
	}

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, w := range writes {
			if w.Delete {
				pipe.Del(ctx, w.Key)
				continue
			}

			ttl := w.TTL
			if ttl <= 0 {
				ttl = r.cfg.DefaultTTL
			}
			pipe.Set(ctx, w.Key, payloads[i], ttl)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write %d keys to redis: %w", len(writes), err)
	}

	return nil
}

func (r *redisCache) Close() error {
	return r.client.Close()
}

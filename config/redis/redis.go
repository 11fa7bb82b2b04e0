package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Cache is the cache-aside store used in front of the document store.
type Cache interface {
	GetCache(ctx context.Context, key string, out interface{}) (bool, error)
	SetCache(ctx context.Context, key string, value interface{}) error
	DeleteCache(ctx context.Context, key string) error
}

type RedisCache struct {
	client *goredis.Client
	ttl    time.Duration
}

/*
* Parse the url and ping
* Values are stored as JSON with the given ttl
 */
func NewRedisCache(ctx context.Context, url string, ttl time.Duration) (*RedisCache, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Info("Redis connected successfully")
	return &RedisCache{client: client, ttl: ttl}, nil
}

func (r *RedisCache) GetCache(ctx context.Context, key string, out interface{}) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}
	return true, nil
}

func (r *RedisCache) SetCache(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	return r.client.Set(ctx, key, data, r.ttl).Err()
}

func (r *RedisCache) DeleteCache(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}

func (r *RedisCache) Close() error {
	return r.client.Close()
}

// NoopCache is used when caching is disabled; every lookup misses.
type NoopCache struct{}

func (NoopCache) GetCache(context.Context, string, interface{}) (bool, error) { return false, nil }
func (NoopCache) SetCache(context.Context, string, interface{}) error         { return nil }
func (NoopCache) DeleteCache(context.Context, string) error                   { return nil }

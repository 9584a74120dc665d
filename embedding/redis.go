// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// redis.go — Redis-backed Cache, shared across runs and machines.

package embedding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces cache keys.
const DefaultRedisPrefix = "itemnet:emb:"

// RedisCache stores embeddings as JSON arrays under prefix+key.
type RedisCache struct {
	rdb    *goredis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisCache connects to addr and pings it. ttl<=0 stores without expiry.
func NewRedisCache(ctx context.Context, addr string, ttl time.Duration) (*RedisCache, error) {
	if addr == "" {
		return nil, fmt.Errorf("NewRedisCache: missing address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return &RedisCache{rdb: rdb, prefix: DefaultRedisPrefix, ttl: ttl}, nil
}

// Get fetches and decodes the vector under key.
func (c *RedisCache) Get(ctx context.Context, key string) ([]float32, error) {
	raw, err := c.rdb.Get(ctx, c.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, fmt.Errorf("%s: %w", key, ErrCacheMiss)
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var vec []float32
	if err = json.Unmarshal(raw, &vec); err != nil {
		return nil, fmt.Errorf("decode cached embedding: %w", err)
	}
	return vec, nil
}

// Put encodes and stores vec under key.
func (c *RedisCache) Put(ctx context.Context, key string, vec []float32) error {
	raw, err := json.Marshal(vec)
	if err != nil {
		return fmt.Errorf("encode embedding: %w", err)
	}
	if err = c.rdb.Set(ctx, c.prefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (c *RedisCache) Close() error { return c.rdb.Close() }

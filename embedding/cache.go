// SPDX-License-Identifier: MIT
// Package: itemnet/embedding
//
// cache.go — content-addressed caching of embeddings.

package embedding

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"
)

// Cache stores embeddings under content-addressed keys.
type Cache interface {
	// Get returns the vector stored under key, or an error wrapping ErrCacheMiss.
	Get(ctx context.Context, key string) ([]float32, error)

	// Put stores vec under key.
	Put(ctx context.Context, key string, vec []float32) error
}

// ContentHash returns the hex SHA-256 of text.
func ContentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// CacheKey scopes a content hash to a model and a vector length, since two
// models, or one model truncated to two lengths, map the same text to
// different vectors. dims 0 stands for the model's native length.
func CacheKey(model string, dims int, text string) string {
	return model + ":" + strconv.Itoa(dims) + ":" + ContentHash(text)
}

// MemoryCache is a process-local Cache. Safe for concurrent use.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string][]float32
}

// NewMemoryCache returns an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string][]float32)}
}

// Get returns a copy of the cached vector.
func (c *MemoryCache) Get(_ context.Context, key string) ([]float32, error) {
	c.mu.RLock()
	v, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%s: %w", key, ErrCacheMiss)
	}
	return append([]float32(nil), v...), nil
}

// Put stores a copy of vec.
func (c *MemoryCache) Put(_ context.Context, key string, vec []float32) error {
	c.mu.Lock()
	c.m[key] = append([]float32(nil), vec...)
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached vectors.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Cached decorates a Provider with a Cache. Only misses reach the backend;
// cache write failures are logged and never fail Embed.
type Cached struct {
	Provider
	cache  Cache
	logger *zap.Logger

	mu           sync.Mutex
	hits, misses int
}

// NewCached wraps p with cache. A nil logger means zap.NewNop().
func NewCached(p Provider, cache Cache, logger *zap.Logger) *Cached {
	if p == nil || cache == nil {
		panic("embedding: NewCached(nil)")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Cached{Provider: p, cache: cache, logger: logger}
}

// Embed serves hits from the cache and sends misses to the backend in one batch.
func (c *Cached) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	model, dims := c.Provider.Model(), c.Provider.Dimensions()

	var missIdx []int
	var missTexts []string
	for i, t := range texts {
		v, err := c.cache.Get(ctx, CacheKey(model, dims, t))
		if err != nil {
			missIdx = append(missIdx, i)
			missTexts = append(missTexts, t)
			continue
		}
		out[i] = v
	}

	if len(missTexts) > 0 {
		fresh, err := c.Provider.Embed(ctx, missTexts)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missTexts) {
			return nil, fmt.Errorf("%w: %d embeddings for %d texts", ErrShapeMismatch, len(fresh), len(missTexts))
		}
		for k, i := range missIdx {
			out[i] = fresh[k]
			if err = c.cache.Put(ctx, CacheKey(model, dims, missTexts[k]), fresh[k]); err != nil {
				c.logger.Warn("embedding cache put failed", zap.Error(err))
			}
		}
	}

	c.mu.Lock()
	c.hits += len(texts) - len(missTexts)
	c.misses += len(missTexts)
	c.mu.Unlock()
	c.logger.Debug("embedding cache",
		zap.Int("hits", len(texts)-len(missTexts)),
		zap.Int("misses", len(missTexts)),
	)
	return out, nil
}

// Stats returns cumulative hit and miss counts.
func (c *Cached) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Dimensions reports the backend's length. An HTTP backend answered entirely
// from cache still reports 0, which EmbedAll tolerates.
func (c *Cached) Dimensions() int { return c.Provider.Dimensions() }

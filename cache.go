package techreader

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eringen/techreader/strapi"
)

// ErrCacheMiss is returned by a ResponseCache when the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// ResponseCache stores encoded CMS responses for a bounded time.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// MemoryCache is an in-process ResponseCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

// Get returns the stored value for key, or ErrCacheMiss.
func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		if cur, ok := m.entries[key]; ok && !time.Now().Before(cur.expiresAt) {
			delete(m.entries, key)
		}
		m.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

// Set stores value under key until ttl elapses.
func (m *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
	m.mu.Unlock()
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

type postSource interface {
	FetchPosts(ctx context.Context) ([]strapi.Post, error)
	FetchPostBySlug(ctx context.Context, slug string) (strapi.Post, error)
	FetchCategories(ctx context.Context) ([]strapi.Category, error)
}

// PostCache serves CMS reads through a time-bounded ResponseCache.
// Errors are never cached, and writes through the CMS do not invalidate it:
// new content appears once the TTL lapses.
type PostCache struct {
	src    postSource
	store  ResponseCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewPostCache creates a PostCache. A non-positive ttl or nil store disables caching.
func NewPostCache(src postSource, store ResponseCache, ttl time.Duration, logger *zap.Logger) *PostCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostCache{src: src, store: store, ttl: ttl, logger: logger}
}

// ListPosts returns all posts.
func (c *PostCache) ListPosts(ctx context.Context) ([]strapi.Post, error) {
	return cached(ctx, c, "posts", c.src.FetchPosts)
}

// GetPost returns the post with slug, or strapi.ErrNotFound.
func (c *PostCache) GetPost(ctx context.Context, slug string) (strapi.Post, error) {
	return cached(ctx, c, "post:"+slug, func(ctx context.Context) (strapi.Post, error) {
		return c.src.FetchPostBySlug(ctx, slug)
	})
}

// ListCategories returns all categories.
func (c *PostCache) ListCategories(ctx context.Context) ([]strapi.Category, error) {
	return cached(ctx, c, "categories", c.src.FetchCategories)
}

func cached[T any](ctx context.Context, c *PostCache, key string, load func(context.Context) (T, error)) (T, error) {
	if c.ttl <= 0 || c.store == nil {
		return load(ctx)
	}

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		c.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case !errors.Is(err, ErrCacheMiss):
		c.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}
	raw, err = json.Marshal(v)
	if err == nil {
		err = c.store.Set(ctx, key, raw, c.ttl)
	}
	if err != nil {
		c.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
	return v, nil
}

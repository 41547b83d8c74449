package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/penpal-ai/database-service/pkg/logger"
)

// Backend stores raw encoded values.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// Observer receives hit/miss notifications, keyed by namespace.
type Observer interface {
	CacheHit(namespace string)
	CacheMiss(namespace string)
}

// Cache is a JSON read-through cache over a Backend.
// A nil *Cache is valid and caches nothing.
type Cache struct {
	backend   Backend
	ttl       time.Duration
	keyPrefix string
	log       *slog.Logger
	observer  Observer
}

type Option func(*Cache)

func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithKeyPrefix namespaces every key, so several services can share one Redis.
func WithKeyPrefix(prefix string) Option {
	return func(c *Cache) { c.keyPrefix = prefix }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.log = l
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Cache) { c.observer = o }
}

func New(backend Backend, opts ...Option) *Cache {
	c := &Cache{
		backend: backend,
		ttl:     time.Hour,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Remember returns the cached value for key, or calls load and caches its result.
// Load errors are returned and never cached. Backend failures degrade to calling load.
func Remember[T any](ctx context.Context, c *Cache, namespace, key string, load func(context.Context) (T, error)) (T, error) {
	if c == nil || c.backend == nil {
		return load(ctx)
	}
	full := c.keyPrefix + namespace + ":" + key

	raw, ok, err := c.backend.Get(ctx, full)
	if err != nil {
		c.log.WarnContext(ctx, "cache read failed", slog.String("key", full), logger.Error(err))
	}
	if ok {
		var v T
		err := json.Unmarshal(raw, &v)
		if err == nil {
			c.hit(namespace)
			return v, nil
		}
		c.log.WarnContext(ctx, "cache entry discarded", slog.String("key", full), logger.Error(errors.Join(ErrDecode, err)))
	}
	c.miss(namespace)

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	encoded, err := json.Marshal(v)
	if err != nil {
		c.log.WarnContext(ctx, "cache write skipped", slog.String("key", full), logger.Error(errors.Join(ErrEncode, err)))
		return v, nil
	}
	if err := c.backend.Set(ctx, full, encoded, c.ttl); err != nil {
		c.log.WarnContext(ctx, "cache write failed", slog.String("key", full), logger.Error(err))
	}
	return v, nil
}

// Invalidate drops every key in namespace. Failures are logged: a stale entry
// expires on its own after the TTL.
func (c *Cache) Invalidate(ctx context.Context, namespace string) {
	if c == nil || c.backend == nil {
		return
	}
	prefix := c.keyPrefix + namespace + ":"
	if err := c.backend.DeletePrefix(ctx, prefix); err != nil {
		c.log.ErrorContext(ctx, "cache invalidation failed", slog.String("prefix", prefix), logger.Error(err))
	}
}

func (c *Cache) hit(namespace string) {
	if c.observer != nil {
		c.observer.CacheHit(namespace)
	}
}

func (c *Cache) miss(namespace string) {
	if c.observer != nil {
		c.observer.CacheMiss(namespace)
	}
}

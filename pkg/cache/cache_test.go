package cache_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penpal-ai/database-service/pkg/cache"
)

type record struct {
	ID   string `json:"id"`
	Plan string `json:"plan"`
}

type countingObserver struct {
	mu     sync.Mutex
	hits   map[string]int
	misses map[string]int
}

func newObserver() *countingObserver {
	return &countingObserver{hits: map[string]int{}, misses: map[string]int{}}
}

func (o *countingObserver) CacheHit(ns string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.hits[ns]++
}

func (o *countingObserver) CacheMiss(ns string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.misses[ns]++
}

type failingBackend struct{}

func (failingBackend) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("down")
}

func (failingBackend) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}

func (failingBackend) Delete(context.Context, ...string) error {
	return errors.New("down")
}

func (failingBackend) DeletePrefix(context.Context, string) error {
	return errors.New("down")
}

func TestRemember(t *testing.T) {
	t.Parallel()

	t.Run("loads once then serves from cache", func(t *testing.T) {
		t.Parallel()
		obs := newObserver()
		c := cache.New(cache.NewLocal(10, time.Minute), cache.WithObserver(obs))
		calls := 0
		load := func(context.Context) (*record, error) {
			calls++
			return &record{ID: "1", Plan: "monthly"}, nil
		}

		first, err := cache.Remember(context.Background(), c, "subscriptions", "id:1", load)
		require.NoError(t, err)
		second, err := cache.Remember(context.Background(), c, "subscriptions", "id:1", load)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, first, second)
		assert.Equal(t, 1, obs.hits["subscriptions"])
		assert.Equal(t, 1, obs.misses["subscriptions"])
	})

	t.Run("load errors are not cached", func(t *testing.T) {
		t.Parallel()
		c := cache.New(cache.NewLocal(10, time.Minute))
		calls := 0
		load := func(context.Context) (*record, error) {
			calls++
			return nil, errors.New("not found")
		}

		_, err := cache.Remember(context.Background(), c, "subscriptions", "id:x", load)
		require.Error(t, err)
		_, err = cache.Remember(context.Background(), c, "subscriptions", "id:x", load)
		require.Error(t, err)
		assert.Equal(t, 2, calls)
	})

	t.Run("invalidate drops the namespace only", func(t *testing.T) {
		t.Parallel()
		c := cache.New(cache.NewLocal(10, time.Minute), cache.WithKeyPrefix("test:"))
		calls := map[string]int{}
		loader := func(name string) func(context.Context) (record, error) {
			return func(context.Context) (record, error) {
				calls[name]++
				return record{ID: name}, nil
			}
		}

		ctx := context.Background()
		_, _ = cache.Remember(ctx, c, "subscriptions", "id:1", loader("sub"))
		_, _ = cache.Remember(ctx, c, "payments", "id:1", loader("pay"))

		c.Invalidate(ctx, "subscriptions")

		_, _ = cache.Remember(ctx, c, "subscriptions", "id:1", loader("sub"))
		_, _ = cache.Remember(ctx, c, "payments", "id:1", loader("pay"))
		assert.Equal(t, 2, calls["sub"])
		assert.Equal(t, 1, calls["pay"])
	})

	t.Run("nil cache passes through", func(t *testing.T) {
		t.Parallel()
		var c *cache.Cache
		v, err := cache.Remember(context.Background(), c, "ns", "k", func(context.Context) (int, error) { return 7, nil })
		require.NoError(t, err)
		assert.Equal(t, 7, v)
		c.Invalidate(context.Background(), "ns")
	})

	t.Run("backend failure degrades to load", func(t *testing.T) {
		t.Parallel()
		c := cache.New(failingBackend{})
		v, err := cache.Remember(context.Background(), c, "ns", "k", func(context.Context) (string, error) { return "fresh", nil })
		require.NoError(t, err)
		assert.Equal(t, "fresh", v)
		c.Invalidate(context.Background(), "ns")
	})
}

func TestLocal_Expiry(t *testing.T) {
	t.Parallel()

	l := cache.NewLocal(10, 20*time.Millisecond)
	ctx := context.Background()
	require.NoError(t, l.Set(ctx, "k", []byte("v"), 0))

	v, ok, err := l.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), v)

	assert.Eventually(t, func() bool {
		_, ok, _ := l.Get(ctx, "k")
		return !ok
	}, time.Second, 10*time.Millisecond)
}

func TestLocal_DeletePrefix(t *testing.T) {
	t.Parallel()

	l := cache.NewLocal(10, time.Minute)
	ctx := context.Background()
	for _, k := range []string{"subscriptions:id:1", "subscriptions:user:u", "payments:id:1"} {
		require.NoError(t, l.Set(ctx, k, []byte("x"), 0))
	}

	require.NoError(t, l.DeletePrefix(ctx, "subscriptions:"))

	_, ok, _ := l.Get(ctx, "subscriptions:id:1")
	assert.False(t, ok)
	_, ok, _ = l.Get(ctx, "payments:id:1")
	assert.True(t, ok)

	require.NoError(t, l.Delete(ctx, "payments:id:1"))
	_, ok, _ = l.Get(ctx, "payments:id:1")
	assert.False(t, ok)
}

package payment

import (
	"context"
	"strconv"

	"github.com/penpal-ai/database-service/pkg/cache"
)

const cacheNamespace = "payments"

// CachedStore serves reads from a cache and drops the whole namespace on every write.
type CachedStore struct {
	Store
	cache *cache.Cache
}

func NewCachedStore(next Store, c *cache.Cache) *CachedStore {
	return &CachedStore{Store: next, cache: c}
}

func (s *CachedStore) FindAll(ctx context.Context, limit, offset int64) ([]Payment, error) {
	key := "all:" + strconv.FormatInt(limit, 10) + ":" + strconv.FormatInt(offset, 10)
	return cache.Remember(ctx, s.cache, cacheNamespace, key, func(ctx context.Context) ([]Payment, error) {
		return s.Store.FindAll(ctx, limit, offset)
	})
}

func (s *CachedStore) FindOne(ctx context.Context, id string) (*Payment, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "id:"+id, func(ctx context.Context) (*Payment, error) {
		return s.Store.FindOne(ctx, id)
	})
}

func (s *CachedStore) FindByUserID(ctx context.Context, userID string) ([]Payment, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "user:"+userID, func(ctx context.Context) ([]Payment, error) {
		return s.Store.FindByUserID(ctx, userID)
	})
}

func (s *CachedStore) FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]Payment, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "subscription:"+subscriptionID, func(ctx context.Context) ([]Payment, error) {
		return s.Store.FindBySubscriptionID(ctx, subscriptionID)
	})
}

func (s *CachedStore) FindByStripePaymentIntentID(ctx context.Context, intentID string) (*Payment, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "intent:"+intentID, func(ctx context.Context) (*Payment, error) {
		return s.Store.FindByStripePaymentIntentID(ctx, intentID)
	})
}

func (s *CachedStore) Create(ctx context.Context, p Payment) (*Payment, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.Create(ctx, p)
}

func (s *CachedStore) Update(ctx context.Context, id string, patch Patch) (*Payment, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.Update(ctx, id, patch)
}

func (s *CachedStore) UpdateByStripePaymentIntentID(ctx context.Context, intentID string, patch Patch) (*Payment, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.UpdateByStripePaymentIntentID(ctx, intentID, patch)
}

func (s *CachedStore) Remove(ctx context.Context, id string) (*Payment, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.Remove(ctx, id)
}

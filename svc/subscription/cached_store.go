package subscription

import (
	"context"
	"strconv"

	"github.com/penpal-ai/database-service/pkg/cache"
)

const cacheNamespace = "subscriptions"

// CachedStore serves reads from a cache and drops the whole namespace on every write.
type CachedStore struct {
	Store
	cache *cache.Cache
}

func NewCachedStore(next Store, c *cache.Cache) *CachedStore {
	return &CachedStore{Store: next, cache: c}
}

func (s *CachedStore) FindAll(ctx context.Context, limit, offset int64) ([]Subscription, error) {
	key := "all:" + strconv.FormatInt(limit, 10) + ":" + strconv.FormatInt(offset, 10)
	return cache.Remember(ctx, s.cache, cacheNamespace, key, func(ctx context.Context) ([]Subscription, error) {
		return s.Store.FindAll(ctx, limit, offset)
	})
}

func (s *CachedStore) FindOne(ctx context.Context, id string) (*Subscription, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "id:"+id, func(ctx context.Context) (*Subscription, error) {
		return s.Store.FindOne(ctx, id)
	})
}

func (s *CachedStore) FindByUserID(ctx context.Context, userID string) (*Subscription, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "user:"+userID, func(ctx context.Context) (*Subscription, error) {
		return s.Store.FindByUserID(ctx, userID)
	})
}

func (s *CachedStore) FindByStripeCustomerID(ctx context.Context, customerID string) (*Subscription, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "customer:"+customerID, func(ctx context.Context) (*Subscription, error) {
		return s.Store.FindByStripeCustomerID(ctx, customerID)
	})
}

func (s *CachedStore) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*Subscription, error) {
	return cache.Remember(ctx, s.cache, cacheNamespace, "stripe:"+stripeSubID, func(ctx context.Context) (*Subscription, error) {
		return s.Store.FindByStripeSubscriptionID(ctx, stripeSubID)
	})
}

func (s *CachedStore) Create(ctx context.Context, sub Subscription) (*Subscription, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.Create(ctx, sub)
}

func (s *CachedStore) Update(ctx context.Context, id string, patch Patch) (*Subscription, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.Update(ctx, id, patch)
}

func (s *CachedStore) UpdateByUserID(ctx context.Context, userID string, patch Patch) (*Subscription, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.UpdateByUserID(ctx, userID, patch)
}

func (s *CachedStore) UpdateByStripeSubscriptionID(ctx context.Context, stripeSubID string, patch Patch) (*Subscription, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.UpdateByStripeSubscriptionID(ctx, stripeSubID, patch)
}

func (s *CachedStore) Remove(ctx context.Context, id string) (*Subscription, error) {
	defer s.cache.Invalidate(ctx, cacheNamespace)
	return s.Store.Remove(ctx, id)
}

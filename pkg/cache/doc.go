// Package cache provides the read-through cache in front of the Mongo stores.
//
// Values are JSON-encoded and kept in a Backend: Redis when REDIS_URL is set,
// otherwise an in-process expirable LRU. Keys are grouped by namespace
// ("subscriptions", "payments"); writers call Invalidate on their namespace
// so reads never see a record older than the last local mutation.
//
//	sub, err := cache.Remember(ctx, c, "subscriptions", "user:"+userID, func(ctx context.Context) (*Subscription, error) {
//		return store.FindByUserID(ctx, userID)
//	})
package cache

// Package payment records the individual charges of a subscription.
//
// A payment is keyed by its Stripe payment intent, which is unique across the
// collection. Lookups by user or by subscription return every matching payment,
// newest first.
//
// The Service wraps a Store. MongoStore is the production store and
// CachedStore adds a read-through cache in front of any Store:
//
//	store := payment.NewCachedStore(payment.NewMongoStore(db), cache)
//	svc := payment.NewService(store, payment.WithLogger(log))
//	p, err := svc.Create(ctx, payment.CreateInput{...})
package payment

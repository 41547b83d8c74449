package billing_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/penpal-ai/database-service/svc/subscription"
)

// memStore is an in-memory subscription.Store. Setting err makes every call fail.
type memStore struct {
	mu   sync.Mutex
	subs map[bson.ObjectID]subscription.Subscription
	err  error
}

func newMemStore() *memStore {
	return &memStore{subs: make(map[bson.ObjectID]subscription.Subscription)}
}

func (m *memStore) Create(_ context.Context, sub subscription.Subscription) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.subs {
		if s.UserID == sub.UserID {
			return nil, subscription.ErrConflict
		}
	}
	sub.ID = bson.NewObjectID()
	m.subs[sub.ID] = sub
	return &sub, nil
}

func (m *memStore) FindAll(_ context.Context, limit, offset int64) ([]subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	all := make([]subscription.Subscription, 0, len(m.subs))
	for _, s := range m.subs {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID.Hex() < all[j].ID.Hex() })
	if offset > int64(len(all)) {
		offset = int64(len(all))
	}
	all = all[offset:]
	if limit > 0 && limit < int64(len(all)) {
		all = all[:limit]
	}
	return all, nil
}

func (m *memStore) FindOne(_ context.Context, id string) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, subscription.ErrNotFound
	}
	s, ok := m.subs[oid]
	if !ok {
		return nil, subscription.ErrNotFound
	}
	return &s, nil
}

func (m *memStore) findBy(match func(subscription.Subscription) bool) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, s := range m.subs {
		if match(s) {
			return &s, nil
		}
	}
	return nil, nil
}

func (m *memStore) FindByUserID(_ context.Context, userID string) (*subscription.Subscription, error) {
	return m.findBy(func(s subscription.Subscription) bool { return s.UserID == userID })
}

func (m *memStore) FindByStripeCustomerID(_ context.Context, customerID string) (*subscription.Subscription, error) {
	return m.findBy(func(s subscription.Subscription) bool { return s.StripeCustomerID == customerID })
}

func (m *memStore) FindByStripeSubscriptionID(_ context.Context, stripeSubID string) (*subscription.Subscription, error) {
	return m.findBy(func(s subscription.Subscription) bool { return s.StripeSubscriptionID == stripeSubID })
}

// updateBy applies patch to the first match. Nil patch fields are omitted from
// the JSON encoding, so unmarshalling it over the record changes only the set fields.
func (m *memStore) updateBy(match func(subscription.Subscription) bool, patch subscription.Patch) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return nil, err
	}
	for id, s := range m.subs {
		if !match(s) {
			continue
		}
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		m.subs[id] = s
		return &s, nil
	}
	return nil, subscription.ErrNotFound
}

func (m *memStore) Update(_ context.Context, id string, patch subscription.Patch) (*subscription.Subscription, error) {
	return m.updateBy(func(s subscription.Subscription) bool { return s.ID.Hex() == id }, patch)
}

func (m *memStore) UpdateByUserID(_ context.Context, userID string, patch subscription.Patch) (*subscription.Subscription, error) {
	return m.updateBy(func(s subscription.Subscription) bool { return s.UserID == userID }, patch)
}

func (m *memStore) UpdateByStripeSubscriptionID(_ context.Context, stripeSubID string, patch subscription.Patch) (*subscription.Subscription, error) {
	return m.updateBy(func(s subscription.Subscription) bool { return s.StripeSubscriptionID == stripeSubID }, patch)
}

func (m *memStore) Remove(_ context.Context, id string) (*subscription.Subscription, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, subscription.ErrNotFound
	}
	s, ok := m.subs[oid]
	if !ok {
		return nil, subscription.ErrNotFound
	}
	delete(m.subs, oid)
	return &s, nil
}

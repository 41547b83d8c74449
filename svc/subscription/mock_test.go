package subscription_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/penpal-ai/database-service/pkg/notification"
	"github.com/penpal-ai/database-service/svc/subscription"
	"github.com/penpal-ai/database-service/svc/user"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) sub(args mock.Arguments) (*subscription.Subscription, error) {
	s, _ := args.Get(0).(*subscription.Subscription)
	return s, args.Error(1)
}

func (m *mockStore) Create(ctx context.Context, sub subscription.Subscription) (*subscription.Subscription, error) {
	args := m.Called(ctx, sub)
	if fn, ok := args.Get(0).(func(context.Context, subscription.Subscription) *subscription.Subscription); ok {
		return fn(ctx, sub), args.Error(1)
	}
	return m.sub(args)
}

func (m *mockStore) FindAll(ctx context.Context, limit, offset int64) ([]subscription.Subscription, error) {
	args := m.Called(ctx, limit, offset)
	subs, _ := args.Get(0).([]subscription.Subscription)
	return subs, args.Error(1)
}

func (m *mockStore) FindOne(ctx context.Context, id string) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, id))
}

func (m *mockStore) FindByUserID(ctx context.Context, userID string) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, userID))
}

func (m *mockStore) FindByStripeCustomerID(ctx context.Context, customerID string) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, customerID))
}

func (m *mockStore) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, stripeSubID))
}

func (m *mockStore) Update(ctx context.Context, id string, patch subscription.Patch) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, id, patch))
}

func (m *mockStore) UpdateByUserID(ctx context.Context, userID string, patch subscription.Patch) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, userID, patch))
}

func (m *mockStore) UpdateByStripeSubscriptionID(ctx context.Context, stripeSubID string, patch subscription.Patch) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, stripeSubID, patch))
}

func (m *mockStore) Remove(ctx context.Context, id string) (*subscription.Subscription, error) {
	return m.sub(m.Called(ctx, id))
}

type stubUsers struct {
	users map[string]user.User
	err   error
}

func (s stubUsers) FindOne(_ context.Context, id string) (user.User, error) {
	if s.err != nil {
		return user.User{}, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

// recordingNotifier captures payloads and answers with fn.
type recordingNotifier struct {
	mu       sync.Mutex
	payloads []notification.SubscriptionConfirmation
	fn       func(ctx context.Context) (bool, error)
}

func (n *recordingNotifier) SendSubscriptionConfirmation(ctx context.Context, p notification.SubscriptionConfirmation) (bool, error) {
	n.mu.Lock()
	n.payloads = append(n.payloads, p)
	n.mu.Unlock()
	if n.fn == nil {
		return true, nil
	}
	return n.fn(ctx)
}

func (n *recordingNotifier) sent() []notification.SubscriptionConfirmation {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notification.SubscriptionConfirmation(nil), n.payloads...)
}

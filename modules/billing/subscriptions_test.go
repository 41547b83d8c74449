package billing_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penpal-ai/database-service/handler"
	"github.com/penpal-ai/database-service/modules/billing"
	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/svc/subscription"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newSubscriptionRouter(store subscription.Store, opts ...subscription.ServiceOption) http.Handler {
	opts = append([]subscription.ServiceOption{
		subscription.WithClock(func() time.Time { return now }),
		subscription.WithLogger(logger.Discard()),
	}, opts...)
	svc := subscription.NewService(store, opts...)
	return billing.Router(billing.RouterOptions{
		Subscriptions: billing.NewSubscriptionHandler(svc, handler.NewErrorHandler[handler.Context](logger.Discard())),
	})
}

func createBody(userID string) map[string]any {
	return map[string]any{
		"userId":           userID,
		"stripeCustomerId": "cus_" + userID,
		"trialEnd":         now.Add(5 * 24 * time.Hour),
	}
}

func TestSubscriptions_Create(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())

	rec, env := do(t, r, http.MethodPost, "/subscriptions", createBody("u1"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	sub := decode[subscription.Subscription](t, env.Data)
	assert.False(t, sub.ID.IsZero())
	assert.Equal(t, subscription.StatusTrial, sub.Status)
	assert.Equal(t, subscription.PlanMonthly, sub.Plan)
	assert.Equal(t, "eur", sub.Currency)
	assert.Equal(t, int64(2000), sub.MonthlyPrice)

	rec, env = do(t, r, http.MethodPost, "/subscriptions", createBody("u1"))
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "conflict", env.Error.Code)
}

func TestSubscriptions_CreateRejectsBadInput(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())

	tests := []struct {
		name   string
		body   any
		status int
		code   string
	}{
		{"malformed json", `{"userId":`, http.StatusBadRequest, "bad_request"},
		{"unknown field", `{"userId":"u1","stripeCustomerId":"c","bogus":1}`, http.StatusBadRequest, "bad_request"},
		{"missing fields", map[string]any{"plan": "monthly"}, http.StatusBadRequest, "validation_error"},
		{"bad enum", map[string]any{"userId": "u1", "stripeCustomerId": "c", "plan": "weekly"}, http.StatusBadRequest, "validation_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, env := do(t, r, http.MethodPost, "/subscriptions", tt.body)
			assert.Equal(t, tt.status, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.code, env.Error.Code)
		})
	}

	_, env := do(t, r, http.MethodPost, "/subscriptions", map[string]any{"plan": "monthly"})
	require.NotNil(t, env.Error)
	assert.Contains(t, env.Error.Details, "userId")
	assert.Contains(t, env.Error.Details, "stripeCustomerId")
}

func TestSubscriptions_Lookups(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())
	_, env := do(t, r, http.MethodPost, "/subscriptions", map[string]any{
		"userId":               "u1",
		"stripeCustomerId":     "cus_1",
		"stripeSubscriptionId": "sub_1",
	})
	created := decode[subscription.Subscription](t, env.Data)

	for _, target := range []string{
		"/subscriptions/" + created.ID.Hex(),
		"/subscriptions/user/u1",
		"/subscriptions/stripe-customer/cus_1",
		"/subscriptions/stripe-subscription/sub_1",
	} {
		rec, env := do(t, r, http.MethodGet, target, nil)
		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, created.ID, decode[subscription.Subscription](t, env.Data).ID, target)
	}

	for _, target := range []string{
		"/subscriptions/000000000000000000000000",
		"/subscriptions/not-an-object-id",
		"/subscriptions/user/ghost",
		"/subscriptions/stripe-customer/cus_x",
		"/subscriptions/stripe-subscription/sub_x",
	} {
		rec, env := do(t, r, http.MethodGet, target, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, target)
		require.NotNil(t, env.Error, target)
		assert.Equal(t, "not_found", env.Error.Code)
	}
}

func TestSubscriptions_List(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())
	for _, u := range []string{"a", "b", "c"} {
		rec, _ := do(t, r, http.MethodPost, "/subscriptions", createBody(u))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec, env := do(t, r, http.MethodGet, "/subscriptions?limit=2&offset=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]subscription.Subscription](t, env.Data), 2)
	assert.EqualValues(t, 2, env.Meta["count"])

	rec, env = do(t, r, http.MethodGet, "/subscriptions?limit=-1", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", env.Error.Code)

	rec, _ = do(t, r, http.MethodGet, "/subscriptions?limit=many", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSubscriptions_Projections(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())
	rec, _ := do(t, r, http.MethodPost, "/subscriptions", createBody("u1"))
	require.Equal(t, http.StatusCreated, rec.Code)

	_, env := do(t, r, http.MethodGet, "/subscriptions/user/u1/active", nil)
	assert.JSONEq(t, `{"isActive":true}`, string(env.Data))
	_, env = do(t, r, http.MethodGet, "/subscriptions/user/ghost/active", nil)
	assert.JSONEq(t, `{"isActive":false}`, string(env.Data))

	_, env = do(t, r, http.MethodGet, "/subscriptions/user/u1/status", nil)
	view := decode[subscription.StatusView](t, env.Data)
	assert.True(t, view.IsTrialActive)
	require.NotNil(t, view.DaysLeft)
	assert.Equal(t, 5, *view.DaysLeft)

	rec, env = do(t, r, http.MethodGet, "/subscriptions/user/ghost/status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"subscription":null,"isActive":false,"isTrialActive":false,"daysLeft":null}`, string(env.Data))

	_, env = do(t, r, http.MethodGet, "/subscriptions/user/u1/auth-status", nil)
	auth := decode[subscription.AuthStatusView](t, env.Data)
	assert.True(t, auth.HasSubscription)
	assert.Equal(t, 5, auth.DaysRemaining)

	rec, env = do(t, r, http.MethodGet, "/subscriptions/user/ghost/auth-status", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"hasSubscription":false,"isActive":false,"plan":null,"status":null,"trialActive":false,"daysRemaining":0}`, string(env.Data))
}

func TestSubscriptions_Updates(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())
	_, env := do(t, r, http.MethodPost, "/subscriptions", map[string]any{
		"userId":               "u1",
		"stripeCustomerId":     "cus_1",
		"stripeSubscriptionId": "sub_1",
	})
	id := decode[subscription.Subscription](t, env.Data).ID.Hex()

	rec, env := do(t, r, http.MethodPut, "/subscriptions/"+id, map[string]any{"cardValidated": true})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[subscription.Subscription](t, env.Data).CardValidated)

	rec, env = do(t, r, http.MethodPut, "/subscriptions/user/u1", map[string]any{"cancelAtPeriodEnd": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[subscription.Subscription](t, env.Data).CancelAtPeriodEnd)

	rec, env = do(t, r, http.MethodPut, "/subscriptions/stripe-subscription/sub_1", map[string]any{"monthlyPrice": 2500})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(2500), decode[subscription.Subscription](t, env.Data).MonthlyPrice)

	rec, env = do(t, r, http.MethodPut, "/subscriptions/"+id+"/status", map[string]any{"status": "active"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, subscription.StatusActive, decode[subscription.Subscription](t, env.Data).Status)

	rec, env = do(t, r, http.MethodPut, "/subscriptions/user/u1/plan", map[string]any{"plan": "yearly"})
	require.Equal(t, http.StatusOK, rec.Code)
	changed := decode[subscription.Subscription](t, env.Data)
	assert.Equal(t, subscription.PlanYearly, changed.Plan)
	assert.Equal(t, int64(2500), changed.MonthlyPrice)

	rec, _ = do(t, r, http.MethodPut, "/subscriptions/"+id+"/status", map[string]any{"status": "paused"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/subscriptions/user/ghost/plan", map[string]any{"plan": "yearly"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/subscriptions/000000000000000000000000/status", map[string]any{"status": "active"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = do(t, r, http.MethodPut, "/subscriptions/user/ghost", map[string]any{"cardValidated": true})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptions_StrictTransitions(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore(), subscription.WithTransitionPolicy(subscription.NewStrictPolicy()))
	_, env := do(t, r, http.MethodPost, "/subscriptions", map[string]any{
		"userId":           "u1",
		"stripeCustomerId": "cus_1",
		"status":           "canceled",
	})
	id := decode[subscription.Subscription](t, env.Data).ID.Hex()

	rec, env := do(t, r, http.MethodPut, "/subscriptions/"+id+"/status", map[string]any{"status": "trial"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "invalid_status_transition", env.Error.Code)
}

func TestSubscriptions_Delete(t *testing.T) {
	t.Parallel()

	r := newSubscriptionRouter(newMemStore())
	_, env := do(t, r, http.MethodPost, "/subscriptions", createBody("u1"))
	id := decode[subscription.Subscription](t, env.Data).ID.Hex()

	rec, _ := do(t, r, http.MethodDelete, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Zero(t, rec.Body.Len())

	rec, _ = do(t, r, http.MethodDelete, "/subscriptions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscriptions_InternalErrorIsOpaque(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	store.err = errors.New("mongo: connection pool cleared")
	r := newSubscriptionRouter(store)

	rec, env := do(t, r, http.MethodGet, "/subscriptions/user/u1", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "internal_error", env.Error.Code)
	assert.NotContains(t, rec.Body.String(), "connection pool")
}

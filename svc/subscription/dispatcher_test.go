package subscription_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/svc/subscription"
	"github.com/penpal-ai/database-service/svc/user"
)

func TestConfirmationPayload(t *testing.T) {
	t.Parallel()

	u := user.User{ID: "u1", Email: "ada@example.com", FirstName: "Ada", LastName: "Lovelace"}
	base := subscription.Subscription{
		UserID:       "u1",
		MonthlyPrice: 2000,
		YearlyPrice:  20000,
		Currency:     "eur",
	}

	tests := []struct {
		name       string
		status     subscription.Status
		plan       subscription.Plan
		wantStatus string
		wantAmount int64
	}{
		{"trial monthly", subscription.StatusTrial, subscription.PlanMonthly, "trial", 2000},
		{"active yearly", subscription.StatusActive, subscription.PlanYearly, "active", 20000},
		{"past due is reported active", subscription.StatusPastDue, subscription.PlanMonthly, "active", 2000},
		{"canceled is reported active", subscription.StatusCanceled, subscription.PlanYearly, "active", 20000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sub := base
			sub.Status = tt.status
			sub.Plan = tt.plan
			sub.TrialEnd = at(7 * day)

			p := subscription.ConfirmationPayload(sub, u)
			assert.Equal(t, tt.wantStatus, p.Status)
			assert.Equal(t, tt.wantAmount, p.Amount)
			assert.Equal(t, string(tt.plan), p.Plan)
			assert.Equal(t, "ada@example.com", p.Email)
			assert.Equal(t, "Ada", p.FirstName)
			assert.Equal(t, "Lovelace", p.LastName)
			assert.Equal(t, "eur", p.Currency)
			assert.Equal(t, "u1", p.UserID)
			assert.Equal(t, sub.TrialEnd, p.TrialEnd)
			assert.Nil(t, p.NextBillingDate)
		})
	}
}

func TestDispatcher_Dispatch(t *testing.T) {
	t.Parallel()

	sub := subscription.Subscription{
		ID:           bson.NewObjectID(),
		UserID:       "u1",
		Status:       subscription.StatusTrial,
		Plan:         subscription.PlanMonthly,
		MonthlyPrice: 2000,
		Currency:     "eur",
	}
	users := stubUsers{users: map[string]user.User{
		"u1":      {ID: "u1", Email: "ada@example.com"},
		"noemail": {ID: "noemail"},
	}}

	t.Run("sent", func(t *testing.T) {
		t.Parallel()
		notifier := &recordingNotifier{}
		d := subscription.NewDispatcher(users, notifier, logger.Discard())

		ok, err := d.Dispatch(context.Background(), sub).AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
		require.Len(t, notifier.sent(), 1)
		assert.Equal(t, "trial", notifier.sent()[0].Status)
	})

	t.Run("unknown user", func(t *testing.T) {
		t.Parallel()
		notifier := &recordingNotifier{}
		d := subscription.NewDispatcher(users, notifier, logger.Discard())

		missing := sub
		missing.UserID = "ghost"
		ok, err := d.Dispatch(context.Background(), missing).AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.False(t, ok)
		assert.Empty(t, notifier.sent())
	})

	t.Run("user without email", func(t *testing.T) {
		t.Parallel()
		notifier := &recordingNotifier{}
		d := subscription.NewDispatcher(users, notifier, logger.Discard())

		noEmail := sub
		noEmail.UserID = "noemail"
		_, err := d.Dispatch(context.Background(), noEmail).AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, subscription.ErrMissingEmail)
		assert.Empty(t, notifier.sent())
	})

	t.Run("user lookup failure", func(t *testing.T) {
		t.Parallel()
		notifier := &recordingNotifier{}
		d := subscription.NewDispatcher(stubUsers{err: user.ErrLookupFailed}, notifier, logger.Discard())

		_, err := d.Dispatch(context.Background(), sub).AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, user.ErrLookupFailed)
	})

	t.Run("notifier failure", func(t *testing.T) {
		t.Parallel()
		errDown := errors.New("notification service down")
		notifier := &recordingNotifier{fn: func(context.Context) (bool, error) { return false, errDown }}
		d := subscription.NewDispatcher(users, notifier, logger.Discard())

		ok, err := d.Dispatch(context.Background(), sub).AwaitWithTimeout(time.Second)
		assert.ErrorIs(t, err, errDown)
		assert.False(t, ok)
	})

	t.Run("survives caller cancellation", func(t *testing.T) {
		t.Parallel()
		release := make(chan struct{})
		notifier := &recordingNotifier{fn: func(ctx context.Context) (bool, error) {
			<-release
			return true, ctx.Err()
		}}
		d := subscription.NewDispatcher(users, notifier, logger.Discard())

		ctx, cancel := context.WithCancel(context.Background())
		future := d.Dispatch(ctx, sub)
		cancel()
		close(release)

		ok, err := future.AwaitWithTimeout(time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wait drains in-flight tasks", func(t *testing.T) {
		t.Parallel()
		notifier := &recordingNotifier{fn: func(context.Context) (bool, error) {
			time.Sleep(20 * time.Millisecond)
			return true, nil
		}}
		d := subscription.NewDispatcher(users, notifier, logger.Discard())

		for range 3 {
			d.Dispatch(context.Background(), sub)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		require.NoError(t, d.Wait(ctx))
		assert.Len(t, notifier.sent(), 3)
	})
}

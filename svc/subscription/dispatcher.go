package subscription

import (
	"context"
	"errors"
	"log/slog"

	"github.com/penpal-ai/database-service/pkg/async"
	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/pkg/notification"
	"github.com/penpal-ai/database-service/svc/user"
)

// Notifier delivers the subscription confirmation to the user.
type Notifier interface {
	SendSubscriptionConfirmation(ctx context.Context, p notification.SubscriptionConfirmation) (bool, error)
}

// UserLookup resolves the contact details of a user.
type UserLookup interface {
	FindOne(ctx context.Context, id string) (user.User, error)
}

var ErrMissingEmail = errors.New("subscription: user has no email address")

// Dispatcher sends the confirmation for a new subscription in the background.
// Failures are logged and never reach the caller.
type Dispatcher struct {
	users    UserLookup
	notifier Notifier
	log      *slog.Logger
	tasks    async.Tracker
}

func NewDispatcher(users UserLookup, notifier Notifier, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = logger.Discard()
	}
	return &Dispatcher{
		users:    users,
		notifier: notifier,
		log:      log.With(logger.Component("subscription.dispatcher")),
	}
}

// Dispatch starts the notification for sub and returns immediately. The task
// keeps the values of ctx but not its cancellation.
func (d *Dispatcher) Dispatch(ctx context.Context, sub Subscription) *async.Future[bool] {
	return async.Go(&d.tasks, ctx, sub, d.send)
}

// Wait blocks until every dispatched task finished or ctx is done.
func (d *Dispatcher) Wait(ctx context.Context) error {
	return d.tasks.Wait(ctx)
}

func (d *Dispatcher) send(ctx context.Context, sub Subscription) (bool, error) {
	log := d.log.With(logger.UserID(sub.UserID), logger.SubscriptionID(sub.ID.Hex()))

	u, err := d.users.FindOne(ctx, sub.UserID)
	if err != nil {
		log.WarnContext(ctx, "subscription confirmation skipped, user lookup failed", logger.Error(err))
		return false, err
	}
	if u.Email == "" {
		log.WarnContext(ctx, "subscription confirmation skipped, user has no email")
		return false, ErrMissingEmail
	}

	ok, err := d.notifier.SendSubscriptionConfirmation(ctx, ConfirmationPayload(sub, u))
	switch {
	case err != nil:
		log.ErrorContext(ctx, "subscription confirmation failed", logger.Error(err))
		return false, err
	case !ok:
		log.WarnContext(ctx, "subscription confirmation not accepted")
		return false, nil
	}
	log.InfoContext(ctx, "subscription confirmation sent")
	return true, nil
}

// ConfirmationPayload maps a subscription and its owner to the notification body.
// Only a trial is reported as "trial"; every other status is reported as "active".
func ConfirmationPayload(sub Subscription, u user.User) notification.SubscriptionConfirmation {
	status := "active"
	if sub.Status == StatusTrial {
		status = "trial"
	}
	return notification.SubscriptionConfirmation{
		Email:           u.Email,
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Plan:            string(sub.Plan),
		Status:          status,
		TrialEnd:        sub.TrialEnd,
		NextBillingDate: sub.NextBillingDate,
		Amount:          sub.Amount(),
		Currency:        sub.Currency,
		UserID:          sub.UserID,
	}
}

package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/penpal-ai/database-service/pkg/email"
	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/pkg/notification"
	"github.com/penpal-ai/database-service/svc/subscription"
)

// NewNotifier returns the confirmation notifier for backend. The http backend
// records its own outcomes; the e-mail backends are wrapped so they report to
// observer too.
func NewNotifier(backend string, notifyCfg notification.Config, emailCfg email.Config, observer notification.Observer, log *slog.Logger) (subscription.Notifier, error) {
	switch backend {
	case NotifierHTTP, "":
		return notification.New(notifyCfg,
			notification.WithLogger(log),
			notification.WithObserver(observer),
		), nil
	case NotifierPostmark:
		sender, err := email.NewPostmarkClient(emailCfg)
		if err != nil {
			return nil, err
		}
		return observed(email.NewConfirmationNotifier(sender), observer), nil
	case NotifierDev:
		log.Info("confirmation e-mails are written to disk", slog.String("dir", emailCfg.DevDir))
		return observed(email.NewConfirmationNotifier(email.NewDevSender(emailCfg.DevDir)), observer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotifier, backend)
	}
}

type observedNotifier struct {
	next     subscription.Notifier
	observer notification.Observer
}

func observed(next subscription.Notifier, observer notification.Observer) subscription.Notifier {
	if observer == nil {
		return next
	}
	return observedNotifier{next: next, observer: observer}
}

func (n observedNotifier) SendSubscriptionConfirmation(ctx context.Context, p notification.SubscriptionConfirmation) (bool, error) {
	ok, err := n.next.SendSubscriptionConfirmation(ctx, p)
	outcome := notification.OutcomeSent
	switch {
	case err != nil:
		outcome = notification.OutcomeFailed
	case !ok:
		outcome = notification.OutcomeRejected
	}
	n.observer.NotificationResult(notification.KindSubscriptionConfirmation, outcome)
	return ok, err
}

// probeNotifier logs whether the notification service answers its health check.
// It never blocks startup.
func probeNotifier(ctx context.Context, n subscription.Notifier, log *slog.Logger) {
	client, ok := n.(*notification.Client)
	if !ok {
		return
	}
	go func() {
		if client.CheckHealth(ctx) {
			log.InfoContext(ctx, "notification service reachable")
			return
		}
		log.WarnContext(ctx, "notification service unreachable, confirmations will be retried per request", logger.Component("notification"))
	}()
}

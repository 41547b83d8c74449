package payment

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/penpal-ai/database-service/pkg/logger"
)

type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

type ServiceOption func(*Service)

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(store Store, opts ...ServiceOption) *Service {
	s := &Service{
		store: store,
		log:   logger.Discard(),
		now:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("payment"))
	return s
}

func (s *Service) Create(ctx context.Context, in CreateInput) (*Payment, error) {
	p, err := s.store.Create(ctx, in.Build(s.now()))
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	s.log.InfoContext(ctx, "payment recorded",
		logger.PaymentID(p.ID.Hex()),
		logger.UserID(p.UserID),
		slog.String("status", string(p.Status)),
		slog.Int64("amount", p.Amount),
	)
	return p, nil
}

func (s *Service) FindAll(ctx context.Context, limit, offset int64) ([]Payment, error) {
	payments, err := s.store.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, s.fail(ctx, "find_all", err)
	}
	return payments, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (*Payment, error) {
	p, err := s.store.FindOne(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "find_one", err)
	}
	return p, nil
}

func (s *Service) FindByUserID(ctx context.Context, userID string) ([]Payment, error) {
	payments, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "find_by_user", err)
	}
	return payments, nil
}

func (s *Service) FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]Payment, error) {
	payments, err := s.store.FindBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return nil, s.fail(ctx, "find_by_subscription", err)
	}
	return payments, nil
}

// FindByStripePaymentIntentID returns nil without error when no payment matches.
func (s *Service) FindByStripePaymentIntentID(ctx context.Context, intentID string) (*Payment, error) {
	p, err := s.store.FindByStripePaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, s.fail(ctx, "find_by_stripe_payment_intent", err)
	}
	return p, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Payment, error) {
	p, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}
	return p, nil
}

func (s *Service) UpdateByStripePaymentIntentID(ctx context.Context, intentID string, patch Patch) (*Payment, error) {
	p, err := s.store.UpdateByStripePaymentIntentID(ctx, intentID, patch)
	if err != nil {
		return nil, s.fail(ctx, "update_by_stripe_payment_intent", err)
	}
	return p, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Payment, error) {
	p, err := s.store.Update(ctx, id, Patch{Status: &status})
	if err != nil {
		return nil, s.fail(ctx, "update_status", err)
	}
	s.log.InfoContext(ctx, "payment status changed", logger.PaymentID(id), slog.String("status", string(status)))
	return p, nil
}

func (s *Service) Remove(ctx context.Context, id string) (*Payment, error) {
	p, err := s.store.Remove(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "remove", err)
	}
	s.log.InfoContext(ctx, "payment removed", logger.PaymentID(id))
	return p, nil
}

func (s *Service) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
		return err
	}
	s.log.ErrorContext(ctx, "payment operation failed", logger.Operation(op), logger.Error(err))
	if errors.Is(err, ErrInternal) {
		return err
	}
	return errors.Join(ErrInternal, err)
}

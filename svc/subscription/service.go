package subscription

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/penpal-ai/database-service/pkg/logger"
)

// Service implements the subscription use cases on top of a Store.
type Service struct {
	store      Store
	policy     TransitionPolicy
	dispatcher *Dispatcher
	log        *slog.Logger
	now        func() time.Time
}

type ServiceOption func(*Service)

func WithTransitionPolicy(p TransitionPolicy) ServiceOption {
	return func(s *Service) {
		if p != nil {
			s.policy = p
		}
	}
}

// WithDispatcher enables the confirmation notification on Create.
func WithDispatcher(d *Dispatcher) ServiceOption {
	return func(s *Service) { s.dispatcher = d }
}

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
		store:  store,
		policy: PermissivePolicy{},
		log:    logger.Discard(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("subscription"))
	return s
}

// Create stores a new subscription for in.UserID and starts the confirmation
// notification. Returns ErrConflict if the user already has one.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Subscription, error) {
	existing, err := s.store.FindByUserID(ctx, in.UserID)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}
	if existing != nil {
		return nil, ErrConflict
	}

	sub, err := s.store.Create(ctx, in.Build(s.now()))
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	s.log.InfoContext(ctx, "subscription created",
		logger.SubscriptionID(sub.ID.Hex()),
		logger.UserID(sub.UserID),
		slog.String("status", string(sub.Status)),
		slog.String("plan", string(sub.Plan)),
	)
	if s.dispatcher != nil {
		s.dispatcher.Dispatch(ctx, *sub)
	}
	return sub, nil
}

func (s *Service) FindAll(ctx context.Context, limit, offset int64) ([]Subscription, error) {
	subs, err := s.store.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, s.fail(ctx, "find_all", err)
	}
	return subs, nil
}

func (s *Service) FindOne(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.store.FindOne(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "find_one", err)
	}
	return sub, nil
}

// FindByUserID returns nil without error when the user has no subscription.
func (s *Service) FindByUserID(ctx context.Context, userID string) (*Subscription, error) {
	sub, err := s.store.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.fail(ctx, "find_by_user", err)
	}
	return sub, nil
}

func (s *Service) FindByStripeCustomerID(ctx context.Context, customerID string) (*Subscription, error) {
	sub, err := s.store.FindByStripeCustomerID(ctx, customerID)
	if err != nil {
		return nil, s.fail(ctx, "find_by_stripe_customer", err)
	}
	return sub, nil
}

func (s *Service) FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*Subscription, error) {
	sub, err := s.store.FindByStripeSubscriptionID(ctx, stripeSubID)
	if err != nil {
		return nil, s.fail(ctx, "find_by_stripe_subscription", err)
	}
	return sub, nil
}

func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Subscription, error) {
	sub, err := s.store.Update(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}
	return sub, nil
}

func (s *Service) UpdateByUserID(ctx context.Context, userID string, patch Patch) (*Subscription, error) {
	sub, err := s.store.UpdateByUserID(ctx, userID, patch)
	if err != nil {
		return nil, s.fail(ctx, "update_by_user", err)
	}
	return sub, nil
}

func (s *Service) UpdateByStripeSubscriptionID(ctx context.Context, stripeSubID string, patch Patch) (*Subscription, error) {
	sub, err := s.store.UpdateByStripeSubscriptionID(ctx, stripeSubID, patch)
	if err != nil {
		return nil, s.fail(ctx, "update_by_stripe_subscription", err)
	}
	return sub, nil
}

func (s *Service) Remove(ctx context.Context, id string) (*Subscription, error) {
	sub, err := s.store.Remove(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "remove", err)
	}
	s.log.InfoContext(ctx, "subscription removed", logger.SubscriptionID(id), logger.UserID(sub.UserID))
	return sub, nil
}

func (s *Service) IsActive(ctx context.Context, userID string) (bool, error) {
	sub, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return false, err
	}
	return Evaluate(sub, s.now()).Active, nil
}

func (s *Service) GetStatus(ctx context.Context, userID string) (StatusView, error) {
	sub, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return StatusView{}, err
	}
	return NewStatusView(sub, s.now()), nil
}

func (s *Service) GetStatusForAuthService(ctx context.Context, userID string) (AuthStatusView, error) {
	sub, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return AuthStatusView{}, err
	}
	return NewAuthStatusView(sub, s.now()), nil
}

// UpdateStatus moves subscription id to status if the transition policy allows it.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (*Subscription, error) {
	current, err := s.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.Check(current.Status, status); err != nil {
		s.log.WarnContext(ctx, "status transition rejected",
			logger.SubscriptionID(id),
			slog.String("from", string(current.Status)),
			slog.String("to", string(status)),
		)
		return nil, err
	}

	sub, err := s.store.Update(ctx, id, Patch{Status: &status})
	if err != nil {
		return nil, s.fail(ctx, "update_status", err)
	}
	s.log.InfoContext(ctx, "subscription status changed",
		logger.SubscriptionID(id),
		slog.String("from", string(current.Status)),
		slog.String("to", string(status)),
	)
	return sub, nil
}

// ChangePlan switches the user's plan. Prices and billing dates are left as they are.
func (s *Service) ChangePlan(ctx context.Context, userID string, plan Plan) (*Subscription, error) {
	current, err := s.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNotFound
	}
	return s.UpdateByUserID(ctx, userID, Patch{Plan: &plan})
}

// fail passes domain errors through and logs everything else as ErrInternal.
func (s *Service) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) || errors.Is(err, ErrInvalidTransition) {
		return err
	}
	s.log.ErrorContext(ctx, "subscription operation failed", logger.Operation(op), logger.Error(err))
	if errors.Is(err, ErrInternal) {
		return err
	}
	return errors.Join(ErrInternal, err)
}

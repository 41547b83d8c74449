package billing

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/penpal-ai/database-service/handler"
	"github.com/penpal-ai/database-service/pkg/binder"
	"github.com/penpal-ai/database-service/pkg/validator"
	"github.com/penpal-ai/database-service/svc/subscription"
)

// SubscriptionService is the subset of subscription.Service served over HTTP.
type SubscriptionService interface {
	Create(ctx context.Context, in subscription.CreateInput) (*subscription.Subscription, error)
	FindAll(ctx context.Context, limit, offset int64) ([]subscription.Subscription, error)
	FindOne(ctx context.Context, id string) (*subscription.Subscription, error)
	FindByUserID(ctx context.Context, userID string) (*subscription.Subscription, error)
	FindByStripeCustomerID(ctx context.Context, customerID string) (*subscription.Subscription, error)
	FindByStripeSubscriptionID(ctx context.Context, stripeSubID string) (*subscription.Subscription, error)
	Update(ctx context.Context, id string, patch subscription.Patch) (*subscription.Subscription, error)
	UpdateByUserID(ctx context.Context, userID string, patch subscription.Patch) (*subscription.Subscription, error)
	UpdateByStripeSubscriptionID(ctx context.Context, stripeSubID string, patch subscription.Patch) (*subscription.Subscription, error)
	Remove(ctx context.Context, id string) (*subscription.Subscription, error)
	IsActive(ctx context.Context, userID string) (bool, error)
	GetStatus(ctx context.Context, userID string) (subscription.StatusView, error)
	GetStatusForAuthService(ctx context.Context, userID string) (subscription.AuthStatusView, error)
	UpdateStatus(ctx context.Context, id string, status subscription.Status) (*subscription.Subscription, error)
	ChangePlan(ctx context.Context, userID string, plan subscription.Plan) (*subscription.Subscription, error)
}

type SubscriptionHandler struct {
	svc          SubscriptionService
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewSubscriptionHandler(svc SubscriptionService, errorHandler handler.ErrorHandler[handler.Context]) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc, errorHandler: errorHandler}
}

func (h *SubscriptionHandler) Handle() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Post("/", handler.Wrap(h.create,
		handler.WithBinders[handler.Context, subscription.CreateInput](binder.JSON()),
		handler.WithErrorHandler[handler.Context, subscription.CreateInput](h.errorHandler),
	))
	r.Get("/", handler.Wrap(h.list,
		handler.WithBinders[handler.Context, pageRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, pageRequest](h.errorHandler),
	))

	r.Get("/user/{userId}", handler.Wrap(h.findByUser,
		handler.WithBinders[handler.Context, userRequest](path),
		handler.WithErrorHandler[handler.Context, userRequest](h.errorHandler),
	))
	r.Get("/user/{userId}/active", handler.Wrap(h.isActive,
		handler.WithBinders[handler.Context, userRequest](path),
		handler.WithErrorHandler[handler.Context, userRequest](h.errorHandler),
	))
	r.Get("/user/{userId}/status", handler.Wrap(h.status,
		handler.WithBinders[handler.Context, userRequest](path),
		handler.WithErrorHandler[handler.Context, userRequest](h.errorHandler),
	))
	r.Get("/user/{userId}/auth-status", handler.Wrap(h.authStatus,
		handler.WithBinders[handler.Context, userRequest](path),
		handler.WithErrorHandler[handler.Context, userRequest](h.errorHandler),
	))
	r.Put("/user/{userId}", handler.Wrap(h.updateByUser,
		handler.WithBinders[handler.Context, updateByUserRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updateByUserRequest](h.errorHandler),
	))
	r.Put("/user/{userId}/plan", handler.Wrap(h.changePlan,
		handler.WithBinders[handler.Context, changePlanRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, changePlanRequest](h.errorHandler),
	))

	r.Get("/stripe-customer/{id}", handler.Wrap(h.findByStripeCustomer,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))
	r.Get("/stripe-subscription/{id}", handler.Wrap(h.findByStripeSubscription,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))
	r.Put("/stripe-subscription/{id}", handler.Wrap(h.updateByStripeSubscription,
		handler.WithBinders[handler.Context, updateSubscriptionRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updateSubscriptionRequest](h.errorHandler),
	))

	r.Get("/{id}", handler.Wrap(h.findOne,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))
	r.Put("/{id}", handler.Wrap(h.update,
		handler.WithBinders[handler.Context, updateSubscriptionRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updateSubscriptionRequest](h.errorHandler),
	))
	r.Put("/{id}/status", handler.Wrap(h.updateStatus,
		handler.WithBinders[handler.Context, updateStatusRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updateStatusRequest](h.errorHandler),
	))
	r.Delete("/{id}", handler.Wrap(h.remove,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))

	return r
}

type updateSubscriptionRequest struct {
	ID string `path:"id" json:"-"`
	subscription.Patch
}

type updateByUserRequest struct {
	UserID string `path:"userId" json:"-"`
	subscription.Patch
}

type updateStatusRequest struct {
	ID     string              `path:"id" json:"-"`
	Status subscription.Status `json:"status"`
}

type changePlanRequest struct {
	UserID string            `path:"userId" json:"-"`
	Plan   subscription.Plan `json:"plan"`
}

type activeResponse struct {
	IsActive bool `json:"isActive"`
}

func (h *SubscriptionHandler) create(ctx handler.Context, req subscription.CreateInput) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}
	sub, err := h.svc.Create(ctx, req)
	if err != nil {
		return fail(err)
	}
	return handler.Created(sub)
}

func (h *SubscriptionHandler) list(ctx handler.Context, req pageRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}
	subs, err := h.svc.FindAll(ctx, req.Limit, req.Offset)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(subs, handler.WithJSONMeta(req.meta(len(subs))))
}

func (h *SubscriptionHandler) findOne(ctx handler.Context, req idRequest) handler.Response {
	sub, err := h.svc.FindOne(ctx, req.ID)
	return found(sub, err)
}

func (h *SubscriptionHandler) findByUser(ctx handler.Context, req userRequest) handler.Response {
	sub, err := h.svc.FindByUserID(ctx, req.UserID)
	return found(sub, err)
}

func (h *SubscriptionHandler) findByStripeCustomer(ctx handler.Context, req idRequest) handler.Response {
	sub, err := h.svc.FindByStripeCustomerID(ctx, req.ID)
	return found(sub, err)
}

func (h *SubscriptionHandler) findByStripeSubscription(ctx handler.Context, req idRequest) handler.Response {
	sub, err := h.svc.FindByStripeSubscriptionID(ctx, req.ID)
	return found(sub, err)
}

func (h *SubscriptionHandler) isActive(ctx handler.Context, req userRequest) handler.Response {
	active, err := h.svc.IsActive(ctx, req.UserID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(activeResponse{IsActive: active})
}

func (h *SubscriptionHandler) status(ctx handler.Context, req userRequest) handler.Response {
	view, err := h.svc.GetStatus(ctx, req.UserID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(view)
}

func (h *SubscriptionHandler) authStatus(ctx handler.Context, req userRequest) handler.Response {
	view, err := h.svc.GetStatusForAuthService(ctx, req.UserID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(view)
}

func (h *SubscriptionHandler) update(ctx handler.Context, req updateSubscriptionRequest) handler.Response {
	if err := req.Patch.Validate(); err != nil {
		return handler.JSONError(err)
	}
	sub, err := h.svc.Update(ctx, req.ID, req.Patch)
	return found(sub, err)
}

func (h *SubscriptionHandler) updateByUser(ctx handler.Context, req updateByUserRequest) handler.Response {
	if err := req.Patch.Validate(); err != nil {
		return handler.JSONError(err)
	}
	sub, err := h.svc.UpdateByUserID(ctx, req.UserID, req.Patch)
	return found(sub, err)
}

func (h *SubscriptionHandler) updateByStripeSubscription(ctx handler.Context, req updateSubscriptionRequest) handler.Response {
	if err := req.Patch.Validate(); err != nil {
		return handler.JSONError(err)
	}
	sub, err := h.svc.UpdateByStripeSubscriptionID(ctx, req.ID, req.Patch)
	return found(sub, err)
}

func (h *SubscriptionHandler) updateStatus(ctx handler.Context, req updateStatusRequest) handler.Response {
	if err := validator.Apply(
		validator.RequiredString("status", string(req.Status)),
		subscription.ValidStatus(req.Status),
	); err != nil {
		return handler.JSONError(err)
	}
	sub, err := h.svc.UpdateStatus(ctx, req.ID, req.Status)
	return found(sub, err)
}

func (h *SubscriptionHandler) changePlan(ctx handler.Context, req changePlanRequest) handler.Response {
	if err := validator.Apply(
		validator.RequiredString("plan", string(req.Plan)),
		subscription.ValidPlan(req.Plan),
	); err != nil {
		return handler.JSONError(err)
	}
	sub, err := h.svc.ChangePlan(ctx, req.UserID, req.Plan)
	return found(sub, err)
}

func (h *SubscriptionHandler) remove(ctx handler.Context, req idRequest) handler.Response {
	if _, err := h.svc.Remove(ctx, req.ID); err != nil {
		return fail(err)
	}
	return handler.NoContent()
}

// found renders v, or 404 when a lookup returned nothing.
func found[T any](v *T, err error) handler.Response {
	if err != nil {
		return fail(err)
	}
	if v == nil {
		return handler.JSONError(handler.ErrNotFound)
	}
	return handler.JSON(v)
}

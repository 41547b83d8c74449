package billing

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/penpal-ai/database-service/handler"
	"github.com/penpal-ai/database-service/pkg/binder"
	"github.com/penpal-ai/database-service/pkg/validator"
	"github.com/penpal-ai/database-service/svc/payment"
)

// PaymentService is the subset of payment.Service served over HTTP.
type PaymentService interface {
	Create(ctx context.Context, in payment.CreateInput) (*payment.Payment, error)
	FindAll(ctx context.Context, limit, offset int64) ([]payment.Payment, error)
	FindOne(ctx context.Context, id string) (*payment.Payment, error)
	FindByUserID(ctx context.Context, userID string) ([]payment.Payment, error)
	FindBySubscriptionID(ctx context.Context, subscriptionID string) ([]payment.Payment, error)
	FindByStripePaymentIntentID(ctx context.Context, intentID string) (*payment.Payment, error)
	Update(ctx context.Context, id string, patch payment.Patch) (*payment.Payment, error)
	UpdateByStripePaymentIntentID(ctx context.Context, intentID string, patch payment.Patch) (*payment.Payment, error)
	UpdateStatus(ctx context.Context, id string, status payment.Status) (*payment.Payment, error)
	Remove(ctx context.Context, id string) (*payment.Payment, error)
}

type PaymentHandler struct {
	svc          PaymentService
	errorHandler handler.ErrorHandler[handler.Context]
}

func NewPaymentHandler(svc PaymentService, errorHandler handler.ErrorHandler[handler.Context]) *PaymentHandler {
	return &PaymentHandler{svc: svc, errorHandler: errorHandler}
}

func (h *PaymentHandler) Handle() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Post("/", handler.Wrap(h.create,
		handler.WithBinders[handler.Context, payment.CreateInput](binder.JSON()),
		handler.WithErrorHandler[handler.Context, payment.CreateInput](h.errorHandler),
	))
	r.Get("/", handler.Wrap(h.list,
		handler.WithBinders[handler.Context, pageRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, pageRequest](h.errorHandler),
	))
	r.Get("/user/{userId}", handler.Wrap(h.findByUser,
		handler.WithBinders[handler.Context, userRequest](path),
		handler.WithErrorHandler[handler.Context, userRequest](h.errorHandler),
	))
	r.Get("/subscription/{subscriptionId}", handler.Wrap(h.findBySubscription,
		handler.WithBinders[handler.Context, subscriptionPaymentsRequest](path),
		handler.WithErrorHandler[handler.Context, subscriptionPaymentsRequest](h.errorHandler),
	))
	r.Get("/stripe-payment-intent/{id}", handler.Wrap(h.findByStripePaymentIntent,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))
	r.Put("/stripe-payment-intent/{id}", handler.Wrap(h.updateByStripePaymentIntent,
		handler.WithBinders[handler.Context, updatePaymentRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updatePaymentRequest](h.errorHandler),
	))
	r.Get("/{id}", handler.Wrap(h.findOne,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))
	r.Put("/{id}", handler.Wrap(h.update,
		handler.WithBinders[handler.Context, updatePaymentRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updatePaymentRequest](h.errorHandler),
	))
	r.Put("/{id}/status", handler.Wrap(h.updateStatus,
		handler.WithBinders[handler.Context, updatePaymentStatusRequest](binder.JSON(), path),
		handler.WithErrorHandler[handler.Context, updatePaymentStatusRequest](h.errorHandler),
	))
	r.Delete("/{id}", handler.Wrap(h.remove,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](h.errorHandler),
	))

	return r
}

type subscriptionPaymentsRequest struct {
	SubscriptionID string `path:"subscriptionId" json:"-"`
}

type updatePaymentRequest struct {
	ID string `path:"id" json:"-"`
	payment.Patch
}

type updatePaymentStatusRequest struct {
	ID     string         `path:"id" json:"-"`
	Status payment.Status `json:"status"`
}

func (h *PaymentHandler) create(ctx handler.Context, req payment.CreateInput) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}
	p, err := h.svc.Create(ctx, req)
	if err != nil {
		return fail(err)
	}
	return handler.Created(p)
}

func (h *PaymentHandler) list(ctx handler.Context, req pageRequest) handler.Response {
	if err := req.Validate(); err != nil {
		return handler.JSONError(err)
	}
	payments, err := h.svc.FindAll(ctx, req.Limit, req.Offset)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(payments, handler.WithJSONMeta(req.meta(len(payments))))
}

func (h *PaymentHandler) findOne(ctx handler.Context, req idRequest) handler.Response {
	p, err := h.svc.FindOne(ctx, req.ID)
	return found(p, err)
}

func (h *PaymentHandler) findByUser(ctx handler.Context, req userRequest) handler.Response {
	payments, err := h.svc.FindByUserID(ctx, req.UserID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(payments)
}

func (h *PaymentHandler) findBySubscription(ctx handler.Context, req subscriptionPaymentsRequest) handler.Response {
	payments, err := h.svc.FindBySubscriptionID(ctx, req.SubscriptionID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(payments)
}

func (h *PaymentHandler) findByStripePaymentIntent(ctx handler.Context, req idRequest) handler.Response {
	p, err := h.svc.FindByStripePaymentIntentID(ctx, req.ID)
	return found(p, err)
}

func (h *PaymentHandler) update(ctx handler.Context, req updatePaymentRequest) handler.Response {
	if err := req.Patch.Validate(); err != nil {
		return handler.JSONError(err)
	}
	p, err := h.svc.Update(ctx, req.ID, req.Patch)
	return found(p, err)
}

func (h *PaymentHandler) updateByStripePaymentIntent(ctx handler.Context, req updatePaymentRequest) handler.Response {
	if err := req.Patch.Validate(); err != nil {
		return handler.JSONError(err)
	}
	p, err := h.svc.UpdateByStripePaymentIntentID(ctx, req.ID, req.Patch)
	return found(p, err)
}

func (h *PaymentHandler) updateStatus(ctx handler.Context, req updatePaymentStatusRequest) handler.Response {
	if err := validator.Apply(
		validator.RequiredString("status", string(req.Status)),
		payment.ValidStatus(req.Status),
	); err != nil {
		return handler.JSONError(err)
	}
	p, err := h.svc.UpdateStatus(ctx, req.ID, req.Status)
	return found(p, err)
}

func (h *PaymentHandler) remove(ctx handler.Context, req idRequest) handler.Response {
	if _, err := h.svc.Remove(ctx, req.ID); err != nil {
		return fail(err)
	}
	return handler.NoContent()
}

package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/penpal-ai/database-service/handler"
	"github.com/penpal-ai/database-service/modules/billing"
	"github.com/penpal-ai/database-service/pkg/clientip"
	"github.com/penpal-ai/database-service/pkg/httpserver"
	"github.com/penpal-ai/database-service/pkg/metrics"
	"github.com/penpal-ai/database-service/pkg/requestid"
	"github.com/penpal-ai/database-service/pkg/serviceauth"
)

// RouterDeps is everything NewRouter mounts. Metrics and ReadinessChecks are optional.
type RouterDeps struct {
	Config          Config
	Auth            serviceauth.Config
	Log             *slog.Logger
	Metrics         *metrics.Recorder
	Subscriptions   billing.SubscriptionService
	Payments        billing.PaymentService
	ReadinessChecks map[string]func(context.Context) error
	StartedAt       time.Time
}

// NewRouter builds the HTTP surface:
//
//	GET  /health            liveness
//	GET  /health/ready      readiness (Mongo, Redis)
//	GET  /metrics           Prometheus
//	GET  {prefix}/health    service status
//	     {prefix}/subscriptions, {prefix}/payments  behind service auth
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestid.Middleware, clientip.Middleware)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}
	r.Use(httpserver.AccessLog(deps.Log))

	r.Get("/health", httpserver.HealthCheckHandler(deps.Log, nil))
	r.Get("/health/ready", httpserver.HealthCheckHandler(deps.Log, deps.ReadinessChecks))
	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.Handler())
	}

	errorHandler := handler.NewErrorHandler[handler.Context](deps.Log)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrNotFound).Render(w, r)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		_ = handler.JSONError(handler.ErrMethodNotAllowed).Render(w, r)
	})

	r.Route(deps.Config.APIPrefix, func(api chi.Router) {
		api.Get("/health", httpserver.StatusHandler(deps.Config.Name, deps.Config.Env, deps.StartedAt))

		api.Group(func(protected chi.Router) {
			protected.Use(serviceauth.Middleware(deps.Auth, deps.Log))
			opts := billing.RouterOptions{}
			if deps.Subscriptions != nil {
				opts.Subscriptions = billing.NewSubscriptionHandler(deps.Subscriptions, errorHandler)
			}
			if deps.Payments != nil {
				opts.Payments = billing.NewPaymentHandler(deps.Payments, errorHandler)
			}
			protected.Mount("/", billing.Router(opts))
		})
	})

	return r
}

package billing

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

// RouterOptions selects the resources mounted by Router. A nil resource is skipped.
type RouterOptions struct {
	Subscriptions Mountable
	Payments      Mountable
}

// Router mounts the billing resources.
//
//	r.Route(cfg.APIPrefix, func(api chi.Router) {
//		api.Use(serviceauth.Middleware(authCfg, log))
//		api.Mount("/", billing.Router(billing.RouterOptions{
//			Subscriptions: billing.NewSubscriptionHandler(subs, errorHandler),
//			Payments:      billing.NewPaymentHandler(payments, errorHandler),
//		}))
//	})
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Subscriptions != nil {
		r.Mount("/subscriptions", opts.Subscriptions.Handle())
	}
	if opts.Payments != nil {
		r.Mount("/payments", opts.Payments.Handle())
	}
	return r
}

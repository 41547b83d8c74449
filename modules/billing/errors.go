package billing

import (
	"errors"
	"net/http"

	"github.com/penpal-ai/database-service/handler"
	"github.com/penpal-ai/database-service/pkg/validator"
	"github.com/penpal-ai/database-service/svc/payment"
	"github.com/penpal-ai/database-service/svc/subscription"
)

var ErrInvalidStatusTransition = handler.NewHTTPError(http.StatusConflict, "invalid_status_transition")

// httpError maps domain errors to their HTTP form. Anything unknown becomes
// a 500 without exposing the cause; the service has already logged it.
func httpError(err error) error {
	switch {
	case validator.IsValidationError(err):
		return err
	case errors.Is(err, subscription.ErrNotFound), errors.Is(err, payment.ErrNotFound):
		return handler.ErrNotFound
	case errors.Is(err, subscription.ErrInvalidTransition):
		return ErrInvalidStatusTransition
	case errors.Is(err, subscription.ErrConflict), errors.Is(err, payment.ErrConflict):
		return handler.ErrConflict
	default:
		return handler.ErrInternalServerError
	}
}

func fail(err error) handler.Response {
	return handler.JSONError(httpError(err))
}

package serviceauth

import (
	"net/http"

	"github.com/penpal-ai/database-service/handler"
)

var (
	ErrAPIKeyRequired       = handler.NewHTTPError(http.StatusUnauthorized, "api_key_required")
	ErrServiceNotAuthorized = handler.NewHTTPError(http.StatusUnauthorized, "service_not_authorized")
	ErrInvalidAPIKey        = handler.NewHTTPError(http.StatusUnauthorized, "invalid_api_key")
)

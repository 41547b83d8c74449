package handler

import "net/http"

// HTTPError is an error with an HTTP status and a stable machine-readable key.
type HTTPError struct {
	Code int
	Key  string
}

func (e HTTPError) Error() string {
	return e.Key
}

func NewHTTPError(code int, key string) HTTPError {
	return HTTPError{Code: code, Key: key}
}

var (
	ErrBadRequest           = NewHTTPError(http.StatusBadRequest, "bad_request")
	ErrUnauthorized         = NewHTTPError(http.StatusUnauthorized, "unauthorized")
	ErrForbidden            = NewHTTPError(http.StatusForbidden, "forbidden")
	ErrNotFound             = NewHTTPError(http.StatusNotFound, "not_found")
	ErrMethodNotAllowed     = NewHTTPError(http.StatusMethodNotAllowed, "method_not_allowed")
	ErrConflict             = NewHTTPError(http.StatusConflict, "conflict")
	ErrRequestTooLarge      = NewHTTPError(http.StatusRequestEntityTooLarge, "request_too_large")
	ErrUnsupportedMediaType = NewHTTPError(http.StatusUnsupportedMediaType, "unsupported_media_type")
	ErrUnprocessableEntity  = NewHTTPError(http.StatusUnprocessableEntity, "unprocessable_entity")
	ErrInternalServerError  = NewHTTPError(http.StatusInternalServerError, "internal_error")
	ErrServiceUnavailable   = NewHTTPError(http.StatusServiceUnavailable, "service_unavailable")
)

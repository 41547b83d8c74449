package handler

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"

	"github.com/penpal-ai/database-service/pkg/binder"
	"github.com/penpal-ai/database-service/pkg/validator"
)

// JSONResponse is the envelope for every JSON body the service writes.
type JSONResponse struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

type jsonResponse struct {
	status int
	body   JSONResponse
}

func (j jsonResponse) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

func WithJSONStatus(status int) JSONOption {
	return func(r *jsonResponse) { r.status = status }
}

func WithJSONMeta(meta map[string]any) JSONOption {
	return func(r *jsonResponse) { r.body.Meta = meta }
}

// JSON wraps v in the data envelope with status 200 unless overridden.
func JSON(v any, opts ...JSONOption) Response {
	r := &jsonResponse{status: http.StatusOK, body: JSONResponse{Data: v}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Created is JSON with status 201.
func Created(v any) Response {
	return JSON(v, WithJSONStatus(http.StatusCreated))
}

// JSONError renders err in the error envelope with the status derived by ClassifyError.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := ClassifyError(err)
	r := &jsonResponse{status: status, body: JSONResponse{Error: detail}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ClassifyError maps an error to a status code and a client-safe detail.
// Unclassified errors become 500 internal_error and their text is not exposed.
func ClassifyError(err error) (int, *ErrorDetail) {
	var validationErr ValidationError
	if errors.As(err, &validationErr) {
		detail := &ErrorDetail{Code: "validation_error", Message: "Validation failed"}
		if len(validationErr) > 0 {
			detail.Details = make(map[string][]string, len(validationErr))
			maps.Copy(detail.Details, validationErr)
		}
		return http.StatusBadRequest, detail
	}
	if ruleErrs := validator.ExtractValidationErrors(err); ruleErrs != nil {
		return http.StatusBadRequest, &ErrorDetail{
			Code:    "validation_error",
			Message: "Validation failed",
			Details: ruleErrs.Fields(),
		}
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: http.StatusText(httpErr.Code)}
	}

	switch {
	case errors.Is(err, binder.ErrUnsupportedMediaType):
		return ClassifyError(ErrUnsupportedMediaType)
	case errors.Is(err, binder.ErrRequestTooLarge):
		return ClassifyError(ErrRequestTooLarge)
	case errors.Is(err, binder.ErrMissingContentType),
		errors.Is(err, binder.ErrFailedToParseJSON),
		errors.Is(err, binder.ErrFailedToParseQuery),
		errors.Is(err, binder.ErrFailedToParsePath):
		return http.StatusBadRequest, &ErrorDetail{Code: ErrBadRequest.Key, Message: err.Error()}
	}

	return ClassifyError(ErrInternalServerError)
}

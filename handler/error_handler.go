package handler

import (
	"log/slog"
	"net/http"

	"github.com/penpal-ai/database-service/pkg/logger"
)

// NewErrorHandler returns an ErrorHandler that logs the failure and writes the JSON error envelope.
// Client errors log at warn level, server errors at error level.
func NewErrorHandler[C Context](log *slog.Logger) ErrorHandler[C] {
	return func(ctx C, err error) {
		status, detail := ClassifyError(err)

		level := slog.LevelError
		if status < http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		r := ctx.Request()
		log.LogAttrs(ctx, level, "request failed",
			logger.Error(err),
			slog.Int("status", status),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			logger.Component("http"),
		)

		resp := jsonResponse{status: status, body: JSONResponse{Error: detail}}
		if renderErr := resp.Render(ctx.ResponseWriter(), r); renderErr != nil {
			log.ErrorContext(ctx, "failed to write error response", logger.Error(renderErr))
		}
	}
}

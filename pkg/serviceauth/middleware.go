package serviceauth

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/penpal-ai/database-service/handler"
	"github.com/penpal-ai/database-service/pkg/logger"
)

const (
	HeaderAPIKey      = "X-API-Key"
	HeaderServiceName = "X-Service-Name"
)

type contextKey struct{}

// WithService stores the authenticated caller name in ctx.
func WithService(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKey{}, name)
}

// ServiceFromContext returns the caller accepted by the middleware.
func ServiceFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(contextKey{}).(string)
	return name, ok && name != ""
}

// LoggerExtractor adds the caller service to log records.
func LoggerExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		name, ok := ServiceFromContext(ctx)
		if !ok {
			return slog.Attr{}, false
		}
		return logger.Service(name), true
	}
}

// Middleware authenticates internal callers by shared API key and service name.
// With no key configured, outside production, every request passes.
func Middleware(cfg Config, log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	log = log.With(logger.Component("serviceauth"))

	allowed := make([]string, 0, len(cfg.AllowedServices))
	for _, s := range cfg.AllowedServices {
		if s = strings.TrimSpace(s); s != "" {
			allowed = append(allowed, s)
		}
	}
	open := cfg.APIKey == "" && cfg.Environment != logger.EnvProduction
	if open {
		log.Warn("internal API key not configured, service authentication disabled")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if open {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(HeaderAPIKey)
			service := r.Header.Get(HeaderServiceName)

			switch {
			case key == "" || service == "":
				reject(w, r, log, ErrAPIKeyRequired, service)
				return
			case !slices.Contains(allowed, service):
				reject(w, r, log, ErrServiceNotAuthorized, service)
				return
			case cfg.APIKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(cfg.APIKey)) != 1:
				reject(w, r, log, ErrInvalidAPIKey, service)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithService(r.Context(), service)))
		})
	}
}

func reject(w http.ResponseWriter, r *http.Request, log *slog.Logger, err handler.HTTPError, service string) {
	log.WarnContext(r.Context(), "service authentication failed",
		slog.String("reason", err.Key),
		slog.String("caller", service),
		slog.String("path", r.URL.Path),
	)
	_ = handler.JSONError(err).Render(w, r)
}

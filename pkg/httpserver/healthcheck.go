package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/penpal-ai/database-service/pkg/logger"
)

// Probe statuses written by HealthCheckHandler.
const (
	StatusAlive    = "ALIVE"
	StatusReady    = "READY"
	StatusNotReady = "NOT_READY"
)

const probeTimeout = 5 * time.Second

// HealthCheckHandler serves liveness (no checks: 200 ALIVE) and readiness probes.
// With checks it runs each one under a short timeout and answers 200 READY or
// 503 NOT_READY, listing the per-dependency outcome.
func HealthCheckHandler(log *slog.Logger, checks map[string]func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(checks) == 0 {
			writeJSON(w, http.StatusOK, map[string]any{"status": StatusAlive})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
		defer cancel()

		status, code := StatusReady, http.StatusOK
		results := make(map[string]string, len(checks))
		for name, check := range checks {
			if err := check(ctx); err != nil {
				log.WarnContext(ctx, "readiness check failed", slog.String("dependency", name), logger.Error(err))
				results[name] = "failed"
				status, code = StatusNotReady, http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		writeJSON(w, code, map[string]any{"status": status, "checks": results})
	}
}

// StatusHandler reports service identity and uptime.
func StatusHandler(service, environment string, startedAt time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339Nano),
			"uptime":      time.Since(startedAt).Seconds(),
			"service":     service,
			"environment": environment,
		})
	}
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}

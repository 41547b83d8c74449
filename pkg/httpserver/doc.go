// Package httpserver hosts the service's HTTP handler.
//
// Server adds graceful shutdown on SIGINT/SIGTERM or context cancellation and
// runs stop hooks once the listener is closed. HealthCheckHandler and
// StatusHandler implement the probe endpoints, and AccessLog writes one
// structured log record per request.
package httpserver

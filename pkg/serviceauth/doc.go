// Package serviceauth guards internal routes with a shared API key.
//
// Callers send X-API-Key and X-Service-Name. The key must match
// INTERNAL_API_KEY and the name must be listed in ALLOWED_SERVICES.
// Failures are 401 JSON errors with keys api_key_required,
// service_not_authorized and invalid_api_key.
package serviceauth

// Package mongo connects to MongoDB with the official v2 driver.
//
// New applies pool, timeout and retry settings from Config and pings the
// server before returning, so callers get a usable client or an error.
// Healthcheck returns a readiness probe for httpserver.HealthCheckHandler.
// IsDuplicateKey and IsNoDocuments classify driver errors for the stores;
// IDFilter, SetPatch and Page build the queries they share.
package mongo

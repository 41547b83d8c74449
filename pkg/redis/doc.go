// Package redis connects to Redis with github.com/redis/go-redis/v9.
//
// Connect retries the initial ping so the service tolerates Redis starting a
// little later than it does. Healthcheck returns a readiness probe.
package redis

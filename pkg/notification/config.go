package notification

import "time"

// Config describes how to reach the notification service.
type Config struct {
	BaseURL string `env:"NOTIFICATION_SERVICE_URL" envDefault:"http://localhost:3002"`
	APIKey  string `env:"NOTIFICATION_SERVICE_API_KEY" envDefault:"default-api-key"`

	RequestTimeout       time.Duration `env:"NOTIFICATION_REQUEST_TIMEOUT" envDefault:"10s"`
	Timeout              time.Duration `env:"NOTIFICATION_TIMEOUT" envDefault:"15s"`
	HealthRequestTimeout time.Duration `env:"NOTIFICATION_HEALTH_REQUEST_TIMEOUT" envDefault:"5s"`
	HealthTimeout        time.Duration `env:"NOTIFICATION_HEALTH_TIMEOUT" envDefault:"10s"`

	// Retries happen only inside Timeout. Zero sends once.
	MaxRetries   int           `env:"NOTIFICATION_MAX_RETRIES" envDefault:"0"`
	RetryBackoff time.Duration `env:"NOTIFICATION_RETRY_BACKOFF" envDefault:"500ms"`

	BreakerFailures    uint32        `env:"NOTIFICATION_BREAKER_FAILURES" envDefault:"5"`
	BreakerInterval    time.Duration `env:"NOTIFICATION_BREAKER_INTERVAL" envDefault:"60s"`
	BreakerOpenTimeout time.Duration `env:"NOTIFICATION_BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
}

// DefaultConfig matches the env defaults, for tests and tools that skip env loading.
func DefaultConfig() Config {
	return Config{
		BaseURL:              "http://localhost:3002",
		APIKey:               "default-api-key",
		RequestTimeout:       10 * time.Second,
		Timeout:              15 * time.Second,
		HealthRequestTimeout: 5 * time.Second,
		HealthTimeout:        10 * time.Second,
		RetryBackoff:         500 * time.Millisecond,
		BreakerFailures:      5,
		BreakerInterval:      time.Minute,
		BreakerOpenTimeout:   30 * time.Second,
	}
}

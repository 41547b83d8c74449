package serviceauth

// Config holds the shared secret and the callers allowed to use it.
type Config struct {
	APIKey          string   `env:"INTERNAL_API_KEY"`
	AllowedServices []string `env:"ALLOWED_SERVICES" envDefault:"auth-service" envSeparator:","`
	Environment     string   `env:"APP_ENV" envDefault:"development"`
}

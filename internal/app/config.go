package app

// Config holds the service-level settings. Each infrastructure package loads
// its own Config alongside this one.
type Config struct {
	Name      string `env:"APP_NAME" envDefault:"penpal-database-service"`
	Env       string `env:"APP_ENV" envDefault:"development"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`
	LogFormat string `env:"LOG_FORMAT"`
	APIPrefix string `env:"API_PREFIX" envDefault:"/api/v1"`

	StrictTransitions bool `env:"SUBSCRIPTION_STRICT_TRANSITIONS" envDefault:"false"`
	// NotifierBackend is one of http, postmark or dev.
	NotifierBackend string `env:"NOTIFIER_BACKEND" envDefault:"http"`
}

const (
	NotifierHTTP     = "http"
	NotifierPostmark = "postmark"
	NotifierDev      = "dev"
)

package cache

import "time"

type Config struct {
	Enabled   bool          `env:"CACHE_ENABLED" envDefault:"true"`
	TTL       time.Duration `env:"CACHE_TTL" envDefault:"3600s"`
	LocalSize int           `env:"CACHE_LOCAL_SIZE" envDefault:"1000"`
	KeyPrefix string        `env:"CACHE_KEY_PREFIX" envDefault:"penpal:"`
}

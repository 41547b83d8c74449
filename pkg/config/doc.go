// Package config loads application configuration from environment variables.
//
// It combines github.com/joho/godotenv (reads a local .env file once per process)
// with github.com/caarlos0/env/v11 (parses `env` / `envDefault` struct tags).
// Parsed values are cached per Go type, so packages can call Load for their own
// Config struct without coordinating with each other.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
// Reset clears the cache; it exists for tests that mutate the environment.
package config

package app

import (
	"log/slog"

	"github.com/penpal-ai/database-service/pkg/clientip"
	"github.com/penpal-ai/database-service/pkg/logger"
	"github.com/penpal-ai/database-service/pkg/requestid"
	"github.com/penpal-ai/database-service/pkg/serviceauth"
)

// NewLogger builds the process logger. LOG_LEVEL and LOG_FORMAT override the
// environment defaults when set.
func NewLogger(cfg Config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.Env, cfg.Name),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			clientip.LoggerExtractor(),
			serviceauth.LoggerExtractor(),
		),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	if cfg.LogFormat != "" {
		opts = append(opts, logger.WithFormat(logger.Format(cfg.LogFormat)))
	}
	return logger.New(opts...)
}

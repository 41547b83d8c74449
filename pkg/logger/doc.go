// Package logger builds *slog.Logger instances for the service.
//
// New takes functional options for format, level, static attributes and
// context extractors. Extractors run on every record, which is how request
// IDs reach log lines without threading a logger through every call:
//
//	log := logger.New(
//		logger.WithEnvironment(cfg.Env, cfg.Name),
//		logger.WithLevelName(cfg.LogLevel),
//		logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//
// The attribute helpers (Error, UserID, SubscriptionID, Component...) keep
// key names consistent across packages.
package logger

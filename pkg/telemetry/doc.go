// Package telemetry provides observability instrumentation for the
// operations coordinator: structured logging with zerolog and Prometheus
// metrics for match requests, conflict scans, and store operations.
//
// Initialize at startup:
//
//	logger, err := telemetry.NewLogger(cfg.Logging)
//	metrics, err := telemetry.NewMetrics(cfg.Metrics)
//
// Component loggers carry a component field through every line:
//
//	log := logger.NewComponentLogger("csv-store")
//	log.Info().Str("path", path).Msg("Snapshot loaded")
package telemetry

// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Launch attempts log every state transition at debug with attempt,
// instance and state fields; integrity failures are logged at warn.
//
// Example Usage:
//
//	logger, err := logging.ForSettings("info", false)
//	logger.Info("Launching", zap.String("instance", inst.Title))
//	logger.Error("Failed to launch", zap.Error(err))
package logging

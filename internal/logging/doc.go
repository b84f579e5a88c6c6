// Package logging provides structured logging for the paywall engine.
//
// This package wraps zap with constructors sized for an SDK that lives inside
// a host application: silent by default, env-var controlled verbosity, and an
// explicit logger handed to the view model and renderer rather than a process
// singleton.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed resolution info (text cascade misses, animation frames)
//   - Info: Normal operations (paywall shown, products loaded, state resets)
//   - Warn: Non-fatal issues (missing assets, dropped actions, load retries)
//   - Error: Fatal issues (decode failures, preview server startup errors)
//
// # Structured Logging
//
// All log calls use structured fields for queryability:
//
//	logger.Info("Products associated",
//	    zap.String("placement", "onboarding"),
//	    zap.Int("matched", 3),
//	    zap.Int("expected", 4),
//	)
//
// # Configuration
//
// Build a logger once per paywall and thread it through:
//
//	logger, err := logging.NewFromEnv()
//	if err != nil {
//	    return err
//	}
//	defer logger.Sync()
//	vm := viewmodel.New(cfg, viewmodel.WithLogger(logger))
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging

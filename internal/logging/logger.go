package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevelEnvVar is the environment variable that controls logging verbosity.
// When unset or empty, logging is silent (no zap output).
// Valid values: "debug", "info", "warn", "error"
const LogLevelEnvVar = "PAYWALL_LOG_LEVEL"

// New creates a logger with the specified level. If level is empty, it checks
// the PAYWALL_LOG_LEVEL environment variable; if neither is set a nop logger
// is returned so the SDK stays silent inside host applications.
//
// The returned logger is handed to the view model and renderer explicitly.
// The engine holds no process-wide logger state; the logger's lifetime is the
// lifetime of the paywall that owns it.
func New(level string) (*zap.Logger, error) {
	if level == "" {
		level = os.Getenv(LogLevelEnvVar)
	}
	if level == "" {
		return zap.NewNop(), nil
	}

	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		// Unknown level - use info as default when explicitly set to something
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	// Customize encoder for better readability
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.EncodeCaller = zapcore.ShortCallerEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewFromEnv builds a logger from the PAYWALL_LOG_LEVEL environment variable.
// This is the recommended constructor for CLI commands that want silent mode
// by default.
func NewFromEnv() (*zap.Logger, error) {
	return New("")
}

// Nop returns a disabled logger. Components accept it as a safe default when
// the host passes no logger of its own.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// LogActionDispatch logs a batch of paywall actions handed to the event callback.
func LogActionDispatch(logger *zap.Logger, actionTypes []string) {
	logger.Debug("Dispatching paywall actions",
		zap.Int("count", len(actionTypes)),
		zap.Strings("actions", actionTypes),
	)
}

// LogResolutionMiss logs a text/asset/product lookup that degraded to a
// sentinel result. Misses are expected during partial loads and are never
// surfaced as errors.
func LogResolutionMiss(logger *zap.Logger, kind, id string) {
	logger.Debug("Resolution miss",
		zap.String("kind", kind),
		zap.String("id", id),
	)
}

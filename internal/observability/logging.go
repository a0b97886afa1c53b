// Package observability builds the structured loggers shared by the script
// host and the library components it wires together.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/blockkit/internal/config"
)

// baseConfigs maps a logging.format value to its zap preset.
var baseConfigs = map[string]func() zap.Config{
	"json":    zap.NewProductionConfig,
	"console": zap.NewDevelopmentConfig,
}

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}
	base, ok := baseConfigs[cfg.Format]
	if !ok {
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg := base()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// Component returns a child of logger named after a library component, e.g.
// "damage" or "scripting", so every entry carries its origin.
//
// Precondition: logger must be non-nil.
func Component(logger *zap.Logger, name string) *zap.Logger {
	return logger.Named(name).With(zap.String("component", name))
}

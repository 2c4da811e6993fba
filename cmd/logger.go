package cmd

import (
	"fmt"

	"go.uber.org/zap"
)

// newLogger builds the process logger. "debug" gets the development encoder.
func newLogger(level string) (*zap.Logger, error) {
	atomic, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if atomic.Level() == zap.DebugLevel {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = atomic

	return cfg.Build()
}

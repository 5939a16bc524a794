// SPDX-License-Identifier: MIT

// Package logging builds the zap loggers used by the nucprep command.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the logger's level and encoding.
type Config struct {
	Level       string `yaml:"level"`       // debug, info, warn, error; empty means info
	Development bool   `yaml:"development"` // console encoding instead of JSON
}

// New builds a logger from cfg. Verbose forces the debug level.
func New(cfg Config, verbose bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if s := strings.TrimSpace(cfg.Level); s != "" {
		var err error
		if level, err = zapcore.ParseLevel(s); err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
	}
	if verbose {
		level = zapcore.DebugLevel
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: failed to initialize logger: %w", err)
	}
	return logger, nil
}

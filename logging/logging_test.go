// SPDX-License-Identifier: MIT

package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/katalvlaran/nucprep/logging"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     logging.Config
		verbose bool
		want    zapcore.Level
	}{
		{"default", logging.Config{}, false, zapcore.InfoLevel},
		{"warn", logging.Config{Level: "warn"}, false, zapcore.WarnLevel},
		{"verbose overrides", logging.Config{Level: "error"}, true, zapcore.DebugLevel},
		{"development", logging.Config{Level: "DEBUG", Development: true}, false, zapcore.DebugLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := logging.New(tc.cfg, tc.verbose)
			require.NoError(t, err)
			assert.Equal(t, tc.want, l.Level())
		})
	}
}

func TestNewBadLevel(t *testing.T) {
	_, err := logging.New(logging.Config{Level: "loud"}, false)
	assert.Error(t, err)
}

package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", FileName)

	logger, err := New(Options{Level: "info", Path: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("loaded", zap.String("resource", "quote"))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"msg":"loaded"`)
	assert.Contains(t, out, `"resource":"quote"`)
	assert.NotContains(t, out, "hidden")
}

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		enabled zapcore.Level
	}{
		{"default info", Options{Path: "x"}, zapcore.InfoLevel},
		{"warn", Options{Level: "warn"}, zapcore.WarnLevel},
		{"verbose wins", Options{Level: "error", Verbose: true}, zapcore.DebugLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.opts.Path != "" {
				tt.opts.Path = filepath.Join(t.TempDir(), tt.opts.Path)
			}
			logger, err := New(tt.opts)
			require.NoError(t, err)

			assert.True(t, logger.Core().Enabled(tt.enabled))
			if tt.enabled > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.enabled-1))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "loud"))
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mathsheet.log")
	logger, err := New(Options{Level: "info", File: path})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("worksheet generated", zap.Int("count", 4))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"worksheet generated"`)
	assert.Contains(t, string(data), `"count":4`)
	assert.NotContains(t, string(data), "hidden")
}

func TestNew_Verbose(t *testing.T) {
	logger, err := New(Options{Level: "warn", Verbose: true, File: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}

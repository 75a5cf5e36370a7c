package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/idilsaglam/jottings/internal/config"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jottings.log")
	logger, err := New(config.LoggingConfig{Level: "warn", File: path}, false)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", zap.Int64("id", 3))
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"msg":"kept"`)
	assert.Contains(t, string(b), `"id":3`)
	assert.NotContains(t, string(b), "dropped")
}

func TestNew_Verbose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jottings.log")
	logger, err := New(config.LoggingConfig{Level: "error", File: path}, true)
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zap.DebugLevel))
}

func TestNew_NoFileIsNop(t *testing.T) {
	logger, err := New(config.LoggingConfig{Level: "info"}, false)
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zap.ErrorLevel))
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud", File: "x.log"}, false)
	assert.Error(t, err)
}

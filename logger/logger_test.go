package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestInitLogger(t *testing.T) {
	assert.NoError(t, InitLogger(true, ""))
	assert.NoError(t, InitLogger(false, ""))
	Sync()
}

func TestInitLogger_File(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "app.log")

	require.NoError(t, InitLogger(false, logPath))
	zap.S().Infow("log file smoke test")
	Sync()

	info, err := os.Stat(logPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

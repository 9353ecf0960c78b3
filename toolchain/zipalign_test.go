package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZipalign_Align(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	zipalign := NewZipalign(toolPath)
	output, err := zipalign.Align(apkPath)

	assert.NoError(t, err)
	assert.Equal(t, "fake tool output", output)

	copyPath := filepath.Join(dir, "app.copy.apk")
	assert.Equal(t, []string{"-f", "4", copyPath, apkPath}, recordedArgs(t, argsPath))

	// The temporary copy is removed after a successful run.
	_, err = os.Stat(copyPath)
	assert.True(t, os.IsNotExist(err))
}

func TestZipalign_Align_ToolFailure(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, _ := fakeTool(t, dir, 2)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	zipalign := NewZipalign(toolPath)
	_, err := zipalign.Align(apkPath)

	assert.True(t, errors.Is(err, ErrExternalTool))

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.ExitCode)

	// The temporary copy is removed even when the tool fails.
	_, err = os.Stat(filepath.Join(dir, "app.copy.apk"))
	assert.True(t, os.IsNotExist(err))
}

func TestZipalign_Align_MissingInput(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	zipalign := NewZipalign(toolPath)
	_, err := zipalign.Align(filepath.Join(dir, "missing.apk"))

	assert.True(t, errors.Is(err, ErrNotFound))
	assertNotInvoked(t, argsPath)
}

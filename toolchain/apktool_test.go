package toolchain

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApktool_Decode(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	outputDir := filepath.Join(dir, "decoded")

	apktool := NewApktool(toolPath)
	output, err := apktool.Decode(apkPath, outputDir, false)

	assert.NoError(t, err)
	assert.Equal(t, "fake tool output", output)
	assert.Equal(t, []string{"d", apkPath, "-o", outputDir}, recordedArgs(t, argsPath))
}

func TestApktool_Decode_DerivedOutputDir(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	apktool := NewApktool(toolPath)
	_, err := apktool.Decode(apkPath, "", false)

	assert.NoError(t, err)
	assert.Equal(t, []string{"d", apkPath, "-o", filepath.Join(dir, "app")}, recordedArgs(t, argsPath))
}

func TestApktool_Decode_Force(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	outputDir := filepath.Join(dir, "decoded")
	require.NoError(t, os.Mkdir(outputDir, 0o755))

	apktool := NewApktool(toolPath)

	// Without force an existing output directory is refused before any
	// process is launched.
	_, err := apktool.Decode(apkPath, outputDir, false)
	assert.True(t, errors.Is(err, ErrAlreadyExists))
	assertNotInvoked(t, argsPath)

	// With force the flag follows the subcommand token.
	_, err = apktool.Decode(apkPath, outputDir, true)
	assert.NoError(t, err)
	assert.Equal(t, []string{"d", "--force", apkPath, "-o", outputDir}, recordedArgs(t, argsPath))
}

func TestApktool_Decode_MissingInput(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apktool := NewApktool(toolPath)
	_, err := apktool.Decode(filepath.Join(dir, "missing.apk"), "", false)

	assert.True(t, errors.Is(err, ErrNotFound))
	assertNotInvoked(t, argsPath)
}

func TestApktool_Decode_MissingOutputParent(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	apktool := NewApktool(toolPath)
	_, err := apktool.Decode(apkPath, filepath.Join(dir, "no", "such", "parent"), false)

	assert.True(t, errors.Is(err, ErrDirectoryMissing))
	assertNotInvoked(t, argsPath)
}

func TestApktool_Decode_ToolFailure(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, _ := fakeTool(t, dir, 1)

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	apktool := NewApktool(toolPath)
	_, err := apktool.Decode(apkPath, filepath.Join(dir, "decoded"), false)

	assert.True(t, errors.Is(err, ErrExternalTool))

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 1, exitErr.ExitCode)
	assert.Equal(t, "fake tool output", exitErr.Output)
}

func TestApktool_Decode_LaunchFailure(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()

	apkPath := filepath.Join(dir, "app.apk")
	require.NoError(t, os.WriteFile(apkPath, []byte("apk"), 0o644))

	apktool := NewApktool(filepath.Join(dir, "no-such-tool"))
	_, err := apktool.Decode(apkPath, filepath.Join(dir, "decoded"), false)

	assert.True(t, errors.Is(err, ErrExecution))
}

func TestApktool_Build(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	sourceDir := filepath.Join(dir, "decoded")
	require.NoError(t, os.Mkdir(sourceDir, 0o755))

	apktool := NewApktool(toolPath)

	output, err := apktool.Build(sourceDir, "")
	assert.NoError(t, err)
	assert.Equal(t, "fake tool output", output)
	assert.Equal(t, []string{"b", "--force-all", sourceDir}, recordedArgs(t, argsPath))

	outputAPK := filepath.Join(dir, "rebuilt.apk")
	_, err = apktool.Build(sourceDir, outputAPK)
	assert.NoError(t, err)
	assert.Equal(t, []string{"b", "--force-all", sourceDir, "-o", outputAPK}, recordedArgs(t, argsPath))
}

func TestApktool_Build_MissingSourceDir(t *testing.T) {
	setupTestLogger(t)

	dir := t.TempDir()
	toolPath, argsPath := fakeTool(t, dir, 0)

	apktool := NewApktool(toolPath)
	_, err := apktool.Build(filepath.Join(dir, "missing"), "")

	assert.True(t, errors.Is(err, ErrDirectoryMissing))
	assertNotInvoked(t, argsPath)
}

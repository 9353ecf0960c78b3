package toolchain

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func setupTestLogger(t *testing.T) {
	t.Helper()
	zap.ReplaceGlobals(zaptest.NewLogger(t))
}

// fakeTool writes an executable script into dir that records its arguments,
// prints a fixed line and exits with the given status.
func fakeTool(t *testing.T, dir string, exitCode int) (toolPath, argsPath string) {
	t.Helper()

	argsPath = filepath.Join(dir, "args.txt")
	toolPath = filepath.Join(dir, "tool.sh")

	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$@\" > " + argsPath + "\n" +
		"echo fake tool output\n" +
		fmt.Sprintf("exit %d\n", exitCode)

	require.NoError(t, os.WriteFile(toolPath, []byte(script), 0o755))
	return toolPath, argsPath
}

// recordedArgs returns the arguments the fake tool was invoked with, one per
// line in its record file.
func recordedArgs(t *testing.T, argsPath string) []string {
	t.Helper()

	data, err := os.ReadFile(argsPath)
	require.NoError(t, err)

	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "\n")
}

// assertNotInvoked asserts that the fake tool recorded no invocation.
func assertNotInvoked(t *testing.T, argsPath string) {
	t.Helper()

	_, err := os.Stat(argsPath)
	require.True(t, os.IsNotExist(err), "expected no tool invocation, but arguments were recorded")
}

// writeZip writes a zip archive with the given entries to path.
func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range entries {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

// readZip returns the entries of the zip archive at path.
func readZip(t *testing.T, path string) map[string]string {
	t.Helper()

	reader, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer reader.Close()

	entries := make(map[string]string)
	for _, entry := range reader.File {
		f, err := entry.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		require.NoError(t, f.Close())
		entries[entry.Name] = string(content)
	}
	return entries
}

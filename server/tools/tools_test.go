package tools

import (
	"testing"

	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/cnosuke/mcp-apk-repack/config"
	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

func newTestToolchain() *toolchain.Toolchain {
	return toolchain.New(toolchain.Config{
		ApktoolPath:        "apktool",
		JarsignerPath:      "jarsigner",
		ZipalignPath:       "zipalign",
		TimestampAuthority: "http://tsa.example/rfc3161",
	})
}

func TestRegisterAllTools(t *testing.T) {
	zap.ReplaceGlobals(zaptest.NewLogger(t))

	mcpServer := server.NewMCPServer("test", "0.0.1")
	err := RegisterAllTools(mcpServer, newTestToolchain(), &config.Config{})
	assert.NoError(t, err)
}

func TestRegisterDecodeTool(t *testing.T) {
	zap.ReplaceGlobals(zaptest.NewLogger(t))

	mcpServer := server.NewMCPServer("test", "0.0.1")
	err := RegisterDecodeTool(mcpServer, newTestToolchain())
	assert.NoError(t, err)
}

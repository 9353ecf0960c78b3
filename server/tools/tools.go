package tools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/cnosuke/mcp-apk-repack/config"
	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

// RegisterAllTools - Register all tools with the server
func RegisterAllTools(mcpServer *server.MCPServer, tc *toolchain.Toolchain, cfg *config.Config) error {
	if err := RegisterDecodeTool(mcpServer, tc); err != nil {
		return err
	}
	if err := RegisterBuildTool(mcpServer, tc); err != nil {
		return err
	}
	if err := RegisterSignTool(mcpServer, tc, cfg); err != nil {
		return err
	}
	if err := RegisterResignTool(mcpServer, tc, cfg); err != nil {
		return err
	}
	if err := RegisterAlignTool(mcpServer, tc); err != nil {
		return err
	}
	if err := RegisterRepackTool(mcpServer, tc, cfg); err != nil {
		return err
	}

	return nil
}

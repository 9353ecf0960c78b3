package server

import (
	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-apk-repack/config"
	"github.com/cnosuke/mcp-apk-repack/server/tools"
	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

// Run - Execute the MCP server
func Run(cfg *config.Config, name, version string) error {
	zap.S().Infow("starting MCP APK Repack Server")

	tc := toolchain.New(toolchain.Config{
		ApktoolPath:        cfg.Toolchain.ApktoolPath,
		JarsignerPath:      cfg.Toolchain.JarsignerPath,
		ZipalignPath:       cfg.Toolchain.ZipalignPath,
		TimestampAuthority: cfg.Toolchain.TimestampAuthority,
	})

	mcpServer := server.NewMCPServer(name, version)

	// Register all tools
	zap.S().Debugw("registering tools")
	if err := tools.RegisterAllTools(mcpServer, tc, cfg); err != nil {
		zap.S().Errorw("failed to register tools", "error", err)
		return err
	}

	// Start the server on the stdio transport
	zap.S().Infow("starting MCP server")
	if err := server.ServeStdio(mcpServer); err != nil {
		zap.S().Errorw("failed to start server", "error", err)
		return errors.Wrap(err, "failed to start server")
	}

	zap.S().Infow("server shutting down")
	return nil
}

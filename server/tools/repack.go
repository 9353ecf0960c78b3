package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-apk-repack/config"
	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

// RegisterRepackTool - Register the apk_repack tool
func RegisterRepackTool(mcpServer *server.MCPServer, tc *toolchain.Toolchain, cfg *config.Config) error {
	zap.S().Debugw("registering apk_repack tool")

	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Rebuild a decoded source tree into a signed, aligned apk in one step (build, resign, align)."),
		mcp.WithString("source_dir",
			mcp.Required(),
			mcp.Description("Path of the decoded source tree"),
		),
		mcp.WithString("output_apk",
			mcp.Required(),
			mcp.Description("Path of the apk to produce"),
		),
	}, keystoreFlags()...)

	repackTool := mcp.NewTool("apk_repack", opts...)

	mcpServer.AddTool(repackTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sourceDir := stringArg(request, "source_dir")
		outputAPK := stringArg(request, "output_apk")
		keystore, password, alias := keystoreArgs(request, cfg)

		zap.S().Debugw("executing apk_repack",
			"source_dir", sourceDir,
			"output_apk", outputAPK,
			"keystore", keystore,
			"key_alias", alias)

		if sourceDir == "" {
			zap.S().Warnw("empty source_dir provided")
			return mcp.NewToolResultError("source_dir is required"), nil
		}
		if outputAPK == "" {
			zap.S().Warnw("empty output_apk provided")
			return mcp.NewToolResultError("output_apk is required"), nil
		}

		output, err := tc.Repack(sourceDir, outputAPK, keystore, password, alias)
		if err != nil {
			zap.S().Errorw("failed to repack apk",
				"source_dir", sourceDir,
				"output_apk", outputAPK,
				"error", err)
		}
		return newToolResult("toolchain", output, err), nil
	})

	return nil
}

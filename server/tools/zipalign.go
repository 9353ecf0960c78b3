package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

// RegisterAlignTool - Register the apk_align tool
func RegisterAlignTool(mcpServer *server.MCPServer, tc *toolchain.Toolchain) error {
	zap.S().Debugw("registering apk_align tool")

	alignTool := mcp.NewTool("apk_align",
		mcp.WithDescription("Align an apk on 4-byte boundaries using zipalign."),
		mcp.WithString("apk_path",
			mcp.Required(),
			mcp.Description("Path of the apk file to align; the file is rewritten in place"),
		),
	)

	mcpServer.AddTool(alignTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		apkPath := stringArg(request, "apk_path")

		zap.S().Debugw("executing apk_align",
			"apk_path", apkPath)

		if apkPath == "" {
			zap.S().Warnw("empty apk_path provided")
			return mcp.NewToolResultError("apk_path is required"), nil
		}

		output, err := tc.Zipalign.Align(apkPath)
		if err != nil {
			zap.S().Errorw("failed to align apk",
				"apk_path", apkPath,
				"error", err)
		}
		return newToolResult("zipalign", output, err), nil
	})

	return nil
}

package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

// RegisterDecodeTool - Register the apk_decode tool
func RegisterDecodeTool(mcpServer *server.MCPServer, tc *toolchain.Toolchain) error {
	zap.S().Debugw("registering apk_decode tool")

	decodeTool := mcp.NewTool("apk_decode",
		mcp.WithDescription("Decode an apk into an editable source tree using apktool."),
		mcp.WithString("apk_path",
			mcp.Required(),
			mcp.Description("Path of the apk file to decode"),
		),
		mcp.WithString("output_dir",
			mcp.Description("Output directory; defaults to a directory named after the apk, next to it"),
		),
		mcp.WithBoolean("force",
			mcp.Description("Overwrite an existing output directory"),
		),
	)

	mcpServer.AddTool(decodeTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		apkPath := stringArg(request, "apk_path")
		outputDir := stringArg(request, "output_dir")
		force := boolArg(request, "force")

		zap.S().Debugw("executing apk_decode",
			"apk_path", apkPath,
			"output_dir", outputDir,
			"force", force)

		if apkPath == "" {
			zap.S().Warnw("empty apk_path provided")
			return mcp.NewToolResultError("apk_path is required"), nil
		}

		output, err := tc.Apktool.Decode(apkPath, outputDir, force)
		if err != nil {
			zap.S().Errorw("failed to decode apk",
				"apk_path", apkPath,
				"error", err)
		}
		return newToolResult("apktool", output, err), nil
	})

	return nil
}

// RegisterBuildTool - Register the apk_build tool
func RegisterBuildTool(mcpServer *server.MCPServer, tc *toolchain.Toolchain) error {
	zap.S().Debugw("registering apk_build tool")

	buildTool := mcp.NewTool("apk_build",
		mcp.WithDescription("Rebuild a decoded source tree into an apk using apktool."),
		mcp.WithString("source_dir",
			mcp.Required(),
			mcp.Description("Path of the decoded source tree"),
		),
		mcp.WithString("output_apk",
			mcp.Description("Output apk path; defaults to apktool's dist/ location inside the source tree"),
		),
	)

	mcpServer.AddTool(buildTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		sourceDir := stringArg(request, "source_dir")
		outputAPK := stringArg(request, "output_apk")

		zap.S().Debugw("executing apk_build",
			"source_dir", sourceDir,
			"output_apk", outputAPK)

		if sourceDir == "" {
			zap.S().Warnw("empty source_dir provided")
			return mcp.NewToolResultError("source_dir is required"), nil
		}

		output, err := tc.Apktool.Build(sourceDir, outputAPK)
		if err != nil {
			zap.S().Errorw("failed to build apk",
				"source_dir", sourceDir,
				"error", err)
		}
		return newToolResult("apktool", output, err), nil
	})

	return nil
}

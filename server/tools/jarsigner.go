package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-apk-repack/config"
	"github.com/cnosuke/mcp-apk-repack/toolchain"
)

func keystoreFlags() []mcp.ToolOption {
	return []mcp.ToolOption{
		mcp.WithString("keystore",
			mcp.Description("Path to the keystore file; defaults to the configured keystore"),
		),
		mcp.WithString("storepass",
			mcp.Description("Keystore password; defaults to the configured password"),
		),
		mcp.WithString("key_alias",
			mcp.Description("Key alias; defaults to the configured alias"),
		),
	}
}

// keystoreArgs resolves the keystore parameters from the request, falling
// back to the configuration file. The password is never logged.
func keystoreArgs(request mcp.CallToolRequest, cfg *config.Config) (path, password, alias string) {
	path = stringArg(request, "keystore")
	if path == "" {
		path = cfg.Keystore.Path
	}
	password = stringArg(request, "storepass")
	if password == "" {
		password = cfg.Keystore.Password
	}
	alias = stringArg(request, "key_alias")
	if alias == "" {
		alias = cfg.Keystore.KeyAlias
	}
	return path, password, alias
}

// RegisterSignTool - Register the apk_sign tool
func RegisterSignTool(mcpServer *server.MCPServer, tc *toolchain.Toolchain, cfg *config.Config) error {
	zap.S().Debugw("registering apk_sign tool")

	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Sign an apk with a keystore-based signature using jarsigner."),
		mcp.WithString("apk_path",
			mcp.Required(),
			mcp.Description("Path of the apk file to sign"),
		),
	}, keystoreFlags()...)

	signTool := mcp.NewTool("apk_sign", opts...)

	mcpServer.AddTool(signTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		apkPath := stringArg(request, "apk_path")
		keystore, password, alias := keystoreArgs(request, cfg)

		zap.S().Debugw("executing apk_sign",
			"apk_path", apkPath,
			"keystore", keystore,
			"key_alias", alias)

		if apkPath == "" {
			zap.S().Warnw("empty apk_path provided")
			return mcp.NewToolResultError("apk_path is required"), nil
		}

		output, err := tc.Jarsigner.Sign(apkPath, keystore, password, alias)
		if err != nil {
			zap.S().Errorw("failed to sign apk",
				"apk_path", apkPath,
				"error", err)
		}
		return newToolResult("jarsigner", output, err), nil
	})

	return nil
}

// RegisterResignTool - Register the apk_resign tool
func RegisterResignTool(mcpServer *server.MCPServer, tc *toolchain.Toolchain, cfg *config.Config) error {
	zap.S().Debugw("registering apk_resign tool")

	opts := append([]mcp.ToolOption{
		mcp.WithDescription("Strip an existing signature from an apk and sign it again using jarsigner."),
		mcp.WithString("apk_path",
			mcp.Required(),
			mcp.Description("Path of the apk file to resign"),
		),
	}, keystoreFlags()...)

	resignTool := mcp.NewTool("apk_resign", opts...)

	mcpServer.AddTool(resignTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		apkPath := stringArg(request, "apk_path")
		keystore, password, alias := keystoreArgs(request, cfg)

		zap.S().Debugw("executing apk_resign",
			"apk_path", apkPath,
			"keystore", keystore,
			"key_alias", alias)

		if apkPath == "" {
			zap.S().Warnw("empty apk_path provided")
			return mcp.NewToolResultError("apk_path is required"), nil
		}

		output, err := tc.Jarsigner.Resign(apkPath, keystore, password, alias)
		if err != nil {
			zap.S().Errorw("failed to resign apk",
				"apk_path", apkPath,
				"error", err)
		}
		return newToolResult("jarsigner", output, err), nil
	})

	return nil
}

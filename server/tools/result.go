package tools

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/cnosuke/mcp-apk-repack/toolchain"
	"github.com/cnosuke/mcp-apk-repack/types"
)

// newToolResult converts a toolchain invocation outcome into the JSON result
// returned to the client. Tool failures are reported inside the result, not
// as protocol errors, so the client sees the captured output.
func newToolResult(tool, output string, err error) *mcp.CallToolResult {
	result := types.ToolResult{
		Tool:   tool,
		Output: output,
	}

	if err != nil {
		result.Error = err.Error()
		result.ExitCode = 1

		var exitErr *toolchain.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode
			result.Output = exitErr.Output
		}
	}

	jsonBytes, jsonErr := json.Marshal(result)
	if jsonErr != nil {
		zap.S().Errorw("failed to marshal result to JSON", "error", jsonErr)
		return mcp.NewToolResultError("failed to marshal result to JSON")
	}
	return mcp.NewToolResultText(string(jsonBytes))
}

// stringArg extracts a string argument from the request, returning "" when
// absent.
func stringArg(request mcp.CallToolRequest, name string) string {
	if val, ok := request.Params.Arguments[name].(string); ok {
		return val
	}
	return ""
}

// boolArg extracts a boolean argument from the request, returning false when
// absent.
func boolArg(request mcp.CallToolRequest, name string) bool {
	if val, ok := request.Params.Arguments[name].(bool); ok {
		return val
	}
	return false
}

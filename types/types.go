package types

// ToolResult - Structure for toolchain invocation results
type ToolResult struct {
	Tool     string `json:"tool"`
	Output   string `json:"output"`
	ExitCode int    `json:"exit_code"`
	Error    string `json:"error,omitempty"`
}

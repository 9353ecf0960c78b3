package toolchain

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Failure kinds surfaced by the toolchain. Callers branch on these with
// errors.Is instead of matching message strings.
var (
	// ErrNotFound - a required input file does not exist
	ErrNotFound = errors.New("file not found")

	// ErrDirectoryMissing - a required directory does not exist
	ErrDirectoryMissing = errors.New("directory not found")

	// ErrAlreadyExists - the output target exists and overwrite was not requested
	ErrAlreadyExists = errors.New("output already exists")

	// ErrExternalTool - a tool ran but exited with a nonzero status; use
	// errors.As with *ExitError to obtain the captured output
	ErrExternalTool = errors.New("external tool failed")

	// ErrExecution - a tool could not be launched at all
	ErrExecution = errors.New("tool execution failed")

	// ErrArchiveRewrite - reading, filtering or rewriting an archive failed
	// during signature removal
	ErrArchiveRewrite = errors.New("archive rewrite failed")
)

// ExitError carries the diagnostics of a tool invocation that exited nonzero.
type ExitError struct {
	Tool     string
	ExitCode int
	Output   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with status %d", e.Tool, e.ExitCode)
}

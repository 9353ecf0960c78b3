package toolchain

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// run launches the tool with the given arguments, blocks until it exits and
// returns its combined stdout and stderr, trimmed. The wrapped tools
// interleave progress output on both streams, so a single buffer captures
// both.
func run(tool string, args ...string) (string, error) {
	zap.S().Infow("running command",
		"tool", tool,
		"args", args)

	cmd := exec.Command(tool, args...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	err := cmd.Run()
	combined := strings.TrimSpace(output.String())

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			zap.S().Errorw("command exited with nonzero status",
				"tool", tool,
				"exit_code", exitErr.ExitCode(),
				"output", combined)
			return combined, errors.Mark(&ExitError{
				Tool:     tool,
				ExitCode: exitErr.ExitCode(),
				Output:   combined,
			}, ErrExternalTool)
		}

		zap.S().Errorw("failed to run command",
			"tool", tool,
			"error", err)
		return combined, errors.Mark(
			errors.Wrapf(err, "failed to run %s", tool), ErrExecution)
	}

	return combined, nil
}

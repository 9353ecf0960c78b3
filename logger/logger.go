package logger

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// InitLogger initializes the global zap logger. When debug is set a
// development config at debug level is used. If logPath is not empty the log
// is written there; otherwise it goes to stderr, keeping stdout free for the
// MCP stdio transport.
func InitLogger(debug bool, logPath string) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	output := "stderr"
	if logPath != "" {
		output = logPath
	}
	cfg.OutputPaths = []string{output}
	cfg.ErrorOutputPaths = []string{output}

	l, err := cfg.Build()
	if err != nil {
		return errors.Wrap(err, "failed to build logger")
	}

	zap.ReplaceGlobals(l)
	return nil
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = zap.L().Sync()
}

// Package logging builds the zap logger the application components share.
// Diagnostics from the markdown converter and rasterizer failures land here
// rather than on the user's terminal.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFile is the log location inside the project directory.
const LogFile = "logs/feria.log"

// New creates the application logger, writing JSON lines under projectDir.
// With debug enabled the level drops to Debug and output also goes to
// stderr. Callers that have no project directory yet should use zap.NewNop.
func New(projectDir string, debug bool) (*zap.Logger, error) {
	logPath := filepath.Join(projectDir, LogFile)
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{logPath}
	config.ErrorOutputPaths = []string{logPath}
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		config.OutputPaths = append(config.OutputPaths, "stderr")
	}
	return config.Build()
}

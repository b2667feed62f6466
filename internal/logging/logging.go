// Package logging bootstraps the application logger from settings.
package logging

import (
	"fmt"
	"strings"
	"time"

	"github.com/lixenwraith/log"

	"github.com/watchfire-io/tasklog/internal/config"
	"github.com/watchfire-io/tasklog/internal/models"
)

// ShutdownTimeout bounds the final flush on exit.
const ShutdownTimeout = 2 * time.Second

// Output overrides for callers that must keep the terminal clean.
const (
	OutputNone   = "none"
	OutputFile   = "file"
	OutputStderr = "stderr"
)

// New creates a logger from the logging settings. output, when non-empty,
// overrides cfg.Output (the TUI forces file or none).
func New(cfg models.LoggingConfig, output string) (*log.Logger, error) {
	if output == "" {
		output = cfg.Output
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	configArgs := []string{fmt.Sprintf("level=%d", level)}

	switch output {
	case OutputNone:
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case OutputStderr:
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case OutputFile:
		if err := config.EnsureGlobalLogsDir(); err != nil {
			return nil, fmt.Errorf("failed to create logs dir: %w", err)
		}
		dir, err := config.GlobalLogsDir()
		if err != nil {
			return nil, err
		}
		configArgs = append(configArgs,
			"enable_stdout=false",
			fmt.Sprintf("directory=%s", dir),
			"name=tasklog",
			"max_size_mb=10",
			"max_total_size_mb=50")

	default:
		return nil, fmt.Errorf("invalid log output mode: %s", output)
	}

	logger := log.NewLogger()
	if err := logger.ApplyConfigString(configArgs...); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// NewNop returns a logger that discards everything.
func NewNop() *log.Logger {
	logger := log.NewLogger()
	_ = logger.ApplyConfigString(
		"disable_file=true",
		"enable_stdout=false",
		"level=255")
	return logger
}

// ParseLevel maps a level name onto the logger's numeric level.
func ParseLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info", "":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

// Shutdown flushes and stops the logger.
func Shutdown(logger *log.Logger) {
	if logger == nil {
		return
	}
	_ = logger.Shutdown(ShutdownTimeout)
}

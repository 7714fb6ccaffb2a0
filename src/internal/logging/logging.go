// FILE: ssetail/src/internal/logging/logging.go
package logging

import (
	"fmt"
	"strings"

	"ssetail/src/internal/config"

	"github.com/lixenwraith/log"
)

// New creates and starts a logger from the logging section. In quiet mode
// every output is disabled.
func New(cfg *config.LogConfig, quiet bool) (*log.Logger, error) {
	logger := log.NewLogger()
	logConfig := log.DefaultConfig()

	if quiet {
		// In quiet mode, disable ALL logging output
		logConfig.EnableConsole = false
		logConfig.EnableFile = false
		if err := logger.ApplyConfig(logConfig); err != nil {
			return nil, err
		}
		return logger, logger.Start()
	}

	if cfg == nil {
		return nil, fmt.Errorf("logging config cannot be nil")
	}

	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	logConfig.Level = level

	// Configure based on output mode
	switch cfg.Output {
	case "none":
		logConfig.EnableFile = false
		logConfig.EnableConsole = false

	case "stdout", "stderr":
		logConfig.EnableFile = false
		logConfig.EnableConsole = true
		logConfig.ConsoleTarget = cfg.Output

	case "file":
		logConfig.EnableConsole = false
		configureFileLogging(logConfig, cfg)

	case "both":
		logConfig.EnableConsole = true
		configureFileLogging(logConfig, cfg)
		logConfig.ConsoleTarget = "stderr"
		if cfg.Console != nil && cfg.Console.Target != "" {
			logConfig.ConsoleTarget = cfg.Console.Target
		}

	default:
		return nil, fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	if cfg.Console != nil && cfg.Console.Format != "" {
		logConfig.Format = cfg.Console.Format
	}

	if err := logger.ApplyConfig(logConfig); err != nil {
		return nil, fmt.Errorf("failed to apply logger config: %w", err)
	}
	if err := logger.Start(); err != nil {
		return nil, fmt.Errorf("failed to start logger: %w", err)
	}
	return logger, nil
}

// configureFileLogging sets up file-based logging parameters
func configureFileLogging(logConfig *log.Config, cfg *config.LogConfig) {
	logConfig.EnableFile = true
	if cfg.File == nil {
		return
	}

	logConfig.Directory = cfg.File.Directory
	logConfig.Name = cfg.File.Name
	logConfig.MaxSizeKB = cfg.File.MaxSizeMB * 1000
	logConfig.MaxTotalSizeKB = cfg.File.MaxTotalSizeMB * 1000
	if cfg.File.RetentionHours > 0 {
		logConfig.RetentionPeriodHrs = cfg.File.RetentionHours
	}
}

// ParseLevel maps a level name onto the logger's level values
func ParseLevel(level string) (int64, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int64(log.LevelDebug), nil
	case "info":
		return int64(log.LevelInfo), nil
	case "warn", "warning":
		return int64(log.LevelWarn), nil
	case "error":
		return int64(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}

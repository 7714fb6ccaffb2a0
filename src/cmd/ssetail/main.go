// FILE: ssetail/src/cmd/ssetail/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	flagCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", err, helpText)
		os.Exit(1)
	}

	// Initialize output handler with quiet mode
	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowHelp {
		Print("%s", helpText)
		os.Exit(0)
	}

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("SSETAIL_CONFIG_FILE", flagCfg.ConfigFile)
	}

	// Load configuration with CLI overrides
	cfg, err := config.Load(flagCfg.Overrides())
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		if strings.Contains(err.Error(), "missing host") {
			FatalError(1, "Error: host is required\n\n%s", helpText)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	if flagCfg.SaveConfig != "" {
		if err := cfg.SaveToFile(flagCfg.SaveConfig); err != nil {
			FatalError(1, "Failed to save config: %v\n", err)
		}
		Print("Configuration saved to %s\n", flagCfg.SaveConfig)
		os.Exit(0)
	}

	// Initialize logger with quiet mode awareness
	if err := initializeLogger(cfg.Logging, cfg.Quiet); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	target := cfg.Target()
	logger.Debug("msg", "ssetail starting",
		"component", "main",
		"version", version.String(),
		"config_file", cfg.ConfigFile,
		"endpoint", target.String(),
		"framing", cfg.Client.Framing,
		"log_output", cfg.Logging.Output)

	// Route SIGINT/SIGTERM into cancellation of the retry loop
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	supervisor, sinks, err := bootstrapClient(ctx, cfg)
	if err != nil {
		logger.Error("msg", "Failed to bootstrap client",
			"component", "main",
			"error", err)
		FatalError(1, "Failed to start: %v\n", err)
	}

	if enableStatusReporter(cfg) {
		go statusReporter(ctx, supervisor, sinks, time.Duration(cfg.Status.IntervalSeconds)*time.Second)
	}

	// Blocks until a shutdown signal arrives
	supervisor.Run(ctx)

	logger.Info("msg", "Shutdown signal received, flushing records...",
		"component", "main")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	done := make(chan struct{})
	go func() {
		for _, s := range sinks {
			s.Stop()
		}
		close(done)
	}()

	select {
	case <-done:
		logger.Info("msg", "Shutdown complete", "component", "main")
	case <-shutdownCtx.Done():
		logger.Error("msg", "Shutdown timeout exceeded - forcing exit", "component", "main")
		shutdownLogger()
		os.Exit(1)
	}
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}

// FILE: ssetail/src/cmd/ssetail/bootstrap.go
package main

import (
	"context"
	"fmt"
	"os"

	"ssetail/src/internal/client"
	"ssetail/src/internal/config"
	"ssetail/src/internal/filter"
	"ssetail/src/internal/format"
	"ssetail/src/internal/logging"
	"ssetail/src/internal/sink"

	"golang.org/x/term"
)

// bootstrapClient builds the record pipeline and the connection supervisor.
// Sinks are started against ctx and must be stopped by the caller.
func bootstrapClient(ctx context.Context, cfg *config.Config) (*client.Supervisor, []sink.Sink, error) {
	formatter, err := format.New(&cfg.Records, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create record formatter: %w", err)
	}

	var sinks []sink.Sink

	if cfg.Records.File.Enabled {
		fileSink, err := sink.NewFileSink(cfg.Records.File, cfg.Records.BufferSize, logger, formatter)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create record file sink: %w", err)
		}
		sinks = append(sinks, fileSink)
		logger.Info("msg", "Record file configured",
			"component", "main",
			"directory", cfg.Records.File.Directory,
			"name", cfg.Records.File.Name,
			"max_size_kb", cfg.Records.File.MaxSizeKB,
			"max_total_size_kb", cfg.Records.File.MaxTotalSizeKB)
	}

	if consoleMirrorEnabled(cfg.Records.Console, cfg.Records.ConsoleTarget, cfg.Quiet) {
		sinks = append(sinks, sink.NewConsoleSink(cfg.Records.ConsoleTarget, cfg.Records.BufferSize, logger, formatter))
	}

	if len(sinks) == 0 {
		logger.Warn("msg", "No record sinks enabled, log lines are only counted",
			"component", "main")
	}

	var chain *filter.Chain
	if len(cfg.Filters) > 0 {
		chain, err = filter.NewChain(cfg.Filters, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create filter chain: %w", err)
		}
	}

	supervisor, err := client.New(&cfg.Client, cfg.Target(), chain, logger, sinks...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create client: %w", err)
	}

	for _, s := range sinks {
		if err := s.Start(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to start %s sink: %w", s.GetStats().Type, err)
		}
	}

	return supervisor, sinks, nil
}

// consoleMirrorEnabled resolves the records console mode; "auto" mirrors only to a terminal
func consoleMirrorEnabled(mode, target string, quiet bool) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	}

	if quiet {
		return false
	}
	f := os.Stdout
	if target == "stderr" {
		f = os.Stderr
	}
	return term.IsTerminal(int(f.Fd()))
}

// initializeLogger sets up the application logger based on configuration
func initializeLogger(cfg *config.LogConfig, quiet bool) error {
	var err error
	logger, err = logging.New(cfg, quiet)
	return err
}

// FILE: ssetail/src/cmd/sse-emitter/main.go

// Command sse-emitter broadcasts lines read from stdin as an SSE log stream.
//
//	tail -F app.log | sse-emitter -p 8080
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/emitter"
	"ssetail/src/internal/logging"
	"ssetail/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/spf13/pflag"
)

const usage = `sse-emitter: serve stdin lines as a text/event-stream log feed.

Usage:
  sse-emitter [options]

Options:
`

var logger *log.Logger

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var (
		configFile  string
		port        int64
		host        string
		rateLimit   float64
		quiet       bool
		showVersion bool
	)

	flagSet := pflag.NewFlagSet("sse-emitter", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVarP(&configFile, "config", "c", "", "config file path")
	flagSet.StringVar(&host, "host", "", "listen address (default 0.0.0.0)")
	flagSet.Int64VarP(&port, "port", "p", 0, "listen port (default 8080)")
	flagSet.Float64Var(&rateLimit, "rate", 0, "max published lines per second, 0 is unlimited")
	flagSet.BoolVarP(&quiet, "quiet", "q", false, "suppress all console output")
	flagSet.BoolVarP(&showVersion, "version", "v", false, "show version information")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if showVersion {
		fmt.Println(version.String())
		return nil
	}
	if flagSet.NArg() > 0 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(0))
	}

	if configFile != "" {
		os.Setenv("SSETAIL_CONFIG_FILE", configFile)
	}

	var overrides []string
	if flagSet.Changed("host") {
		overrides = append(overrides, "--host="+host)
	}
	if flagSet.Changed("port") {
		overrides = append(overrides, "--port="+strconv.FormatInt(port, 10))
	}
	if flagSet.Changed("rate") {
		overrides = append(overrides, "--max_lines_per_second="+strconv.FormatFloat(rateLimit, 'f', -1, 64))
	}
	if quiet {
		overrides = append(overrides, "--quiet=true")
	}

	cfg, err := config.LoadEmitter(overrides)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = logging.New(cfg.Logging, cfg.Quiet)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Shutdown(2 * time.Second)

	logger.Info("msg", "sse-emitter starting",
		"component", "main",
		"version", version.String(),
		"config_file", cfg.ConfigFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, err := emitter.NewServer(cfg, logger)
	if err != nil {
		return err
	}
	if err := server.Start(ctx); err != nil {
		return err
	}
	defer server.Stop()

	// End of input keeps the server up; clients still get keepalives
	source := emitter.NewLineSource(os.Stdin, server, logger)
	go func() {
		if err := source.Run(ctx); err != nil {
			logger.Error("msg", "Input reader stopped",
				"component", "main",
				"error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("msg", "Shutdown signal received",
		"component", "main",
		"lines", source.GetStats()["total_lines"])
	return nil
}

func printHelp(flagSet *pflag.FlagSet) {
	var sb strings.Builder
	sb.WriteString(usage)
	sb.WriteString(flagSet.FlagUsages())
	sb.WriteString("\nOther settings (stream_path, status_path, keepalive_seconds, burst, ...) come from\n")
	sb.WriteString("~/.config/sse-emitter.toml or SSETAIL_* environment variables.\n")
	fmt.Fprint(os.Stderr, sb.String())
}

// FILE: ssetail/src/cmd/ssetail/flags.go
package main

import (
	"fmt"
	"io"
	"strconv"

	"ssetail/src/internal/core"
	"ssetail/src/internal/logging"

	"github.com/spf13/pflag"
)

// FlagConfig holds the parsed command line
type FlagConfig struct {
	Host       string
	Port       int64
	Path       string
	ConfigFile string
	SaveConfig string
	Framing    string
	LogLevel   string
	LogOutput  string
	Console    string

	Quiet       bool
	ShowVersion bool
	ShowHelp    bool

	// Config keys explicitly set on the command line
	overrides []string
}

// ParseFlags parses args (without the program name)
func ParseFlags(args []string) (*FlagConfig, error) {
	fc := &FlagConfig{}

	flagSet := pflag.NewFlagSet("ssetail", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.Int64VarP(&fc.Port, "port", "p", core.DefaultPort, "server port")
	flagSet.StringVar(&fc.Path, "path", core.DefaultPath, "event stream path")
	flagSet.StringVarP(&fc.ConfigFile, "config", "c", "", "config file path")
	flagSet.StringVar(&fc.SaveConfig, "save-config", "", "write the effective config to this file and exit")
	flagSet.StringVar(&fc.Framing, "framing", "", "event framing: event, chunk")
	flagSet.StringVar(&fc.LogLevel, "log-level", "", "log level: debug, info, warn, error")
	flagSet.StringVar(&fc.LogOutput, "log-output", "", "log output: file, stdout, stderr, both, none")
	flagSet.StringVar(&fc.Console, "console", "", "mirror records to the console: auto, on, off")
	flagSet.BoolVarP(&fc.Quiet, "quiet", "q", false, "suppress all console output")
	flagSet.BoolVarP(&fc.ShowVersion, "version", "v", false, "show version information")
	flagSet.BoolVarP(&fc.ShowHelp, "help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}

	positional := flagSet.Args()
	switch len(positional) {
	case 0:
	case 1:
		fc.Host = positional[0]
	default:
		return nil, fmt.Errorf("unexpected argument: %s", positional[1])
	}

	if fc.LogLevel != "" {
		if _, err := logging.ParseLevel(fc.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", fc.LogLevel)
		}
	}
	if fc.LogOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[fc.LogOutput] {
			return nil, fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", fc.LogOutput)
		}
	}

	// Only explicitly set flags override file and environment values
	if fc.Host != "" {
		fc.overrides = append(fc.overrides, "--endpoint.host="+fc.Host)
	}
	if flagSet.Changed("port") {
		fc.overrides = append(fc.overrides, "--endpoint.port="+strconv.FormatInt(fc.Port, 10))
	}
	if flagSet.Changed("path") {
		fc.overrides = append(fc.overrides, "--endpoint.path="+fc.Path)
	}
	if fc.Framing != "" {
		fc.overrides = append(fc.overrides, "--client.framing="+fc.Framing)
	}
	if fc.LogLevel != "" {
		fc.overrides = append(fc.overrides, "--logging.level="+fc.LogLevel)
	}
	if fc.LogOutput != "" {
		fc.overrides = append(fc.overrides, "--logging.output="+fc.LogOutput)
	}
	if fc.Console != "" {
		fc.overrides = append(fc.overrides, "--records.console="+fc.Console)
	}
	if fc.Quiet {
		fc.overrides = append(fc.overrides, "--quiet=true")
	}

	return fc, nil
}

// Overrides returns the config builder arguments for explicitly set flags
func (fc *FlagConfig) Overrides() []string {
	return fc.overrides
}

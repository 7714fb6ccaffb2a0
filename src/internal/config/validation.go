// FILE: ssetail/src/internal/config/validation.go
package config

import (
	"fmt"
	"strings"
	"text/template"

	lconfig "github.com/lixenwraith/config"
)

// validateConfig is the centralized validator for the client configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := validateEndpoint(&cfg.Endpoint); err != nil {
		return fmt.Errorf("endpoint: %w", err)
	}

	if err := validateClient(&cfg.Client); err != nil {
		return fmt.Errorf("client: %w", err)
	}

	if err := validateRecords(&cfg.Records); err != nil {
		return fmt.Errorf("records: %w", err)
	}

	for i := range cfg.Filters {
		if err := validateFilter(i, &cfg.Filters[i]); err != nil {
			return err
		}
	}

	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if !cfg.Status.Disabled && cfg.Status.IntervalSeconds < 1 {
		return fmt.Errorf("status: interval_seconds must be positive: %d", cfg.Status.IntervalSeconds)
	}

	return nil
}

func validateEndpoint(e *EndpointConfig) error {
	if err := lconfig.NonEmpty(e.Host); err != nil {
		return fmt.Errorf("missing host")
	}
	if strings.ContainsAny(e.Host, " \r\n/") {
		return fmt.Errorf("invalid host: %q", e.Host)
	}
	if err := lconfig.Port(e.Port); err != nil {
		return err
	}
	if !strings.HasPrefix(e.Path, "/") {
		return fmt.Errorf("path must start with /: %q", e.Path)
	}
	if strings.ContainsAny(e.Path, " \r\n") {
		return fmt.Errorf("path must not contain whitespace: %q", e.Path)
	}
	return nil
}

func validateClient(c *ClientConfig) error {
	if c.ReadBufferSize < 1 {
		return fmt.Errorf("read_buffer_size must be positive: %d", c.ReadBufferSize)
	}
	if c.IdleTimeoutMS < 1 {
		return fmt.Errorf("idle_timeout_ms must be positive: %d", c.IdleTimeoutMS)
	}
	if c.RetryDelayMS < 1 {
		return fmt.Errorf("retry_delay_ms must be positive: %d", c.RetryDelayMS)
	}
	if c.DialTimeoutMS < 0 {
		return fmt.Errorf("dial_timeout_ms must not be negative: %d", c.DialTimeoutMS)
	}
	if c.KeepAliveMS < 0 {
		return fmt.Errorf("keep_alive_ms must not be negative: %d", c.KeepAliveMS)
	}

	switch strings.ToLower(c.Framing) {
	case "", "event", "chunk":
	default:
		return fmt.Errorf("invalid framing: %s (valid: event, chunk)", c.Framing)
	}
	return nil
}

func validateRecords(r *RecordsConfig) error {
	switch r.Format {
	case "", "txt", "json", "raw":
	default:
		return fmt.Errorf("invalid format: %s (valid: txt, json, raw)", r.Format)
	}

	if r.Template != "" {
		// Helpers are provided by the formatter, stub them for parsing
		funcs := template.FuncMap{
			"FmtTime":   func(any) string { return "" },
			"ToUpper":   strings.ToUpper,
			"ToLower":   strings.ToLower,
			"TrimSpace": strings.TrimSpace,
		}
		if _, err := template.New("record").Funcs(funcs).Parse(r.Template); err != nil {
			return fmt.Errorf("invalid template: %w", err)
		}
	}

	switch r.Console {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("invalid console mode: %s (valid: auto, on, off)", r.Console)
	}

	switch r.ConsoleTarget {
	case "stdout", "stderr":
	default:
		return fmt.Errorf("invalid console target: %s (valid: stdout, stderr)", r.ConsoleTarget)
	}

	if r.File.Enabled {
		if err := lconfig.NonEmpty(r.File.Directory); err != nil {
			return fmt.Errorf("file: missing directory")
		}
		if err := lconfig.NonEmpty(r.File.Name); err != nil {
			return fmt.Errorf("file: missing name")
		}
		if r.File.MaxSizeKB < 0 || r.File.MaxTotalSizeKB < 0 {
			return fmt.Errorf("file: size limits must not be negative")
		}
	}

	if r.BufferSize < 1 {
		return fmt.Errorf("buffer_size must be positive: %d", r.BufferSize)
	}
	return nil
}

func validateEmitterConfig(cfg *EmitterConfig) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := lconfig.Port(cfg.Port); err != nil {
		return err
	}
	if cfg.Host != "" && cfg.Host != "0.0.0.0" {
		if err := lconfig.IPAddress(cfg.Host); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(cfg.StreamPath, "/") {
		return fmt.Errorf("stream_path must start with /")
	}
	if !strings.HasPrefix(cfg.StatusPath, "/") {
		return fmt.Errorf("status_path must start with /")
	}
	if cfg.StreamPath == cfg.StatusPath {
		return fmt.Errorf("stream_path and status_path must differ")
	}

	if cfg.KeepaliveSeconds < 0 {
		return fmt.Errorf("keepalive_seconds must not be negative: %d", cfg.KeepaliveSeconds)
	}
	if cfg.BufferSize < 1 {
		return fmt.Errorf("buffer_size must be positive: %d", cfg.BufferSize)
	}
	if cfg.ReadTimeoutMS < 0 {
		return fmt.Errorf("read_timeout_ms must not be negative: %d", cfg.ReadTimeoutMS)
	}
	if cfg.MaxLinesPerSecond < 0 {
		return fmt.Errorf("max_lines_per_second must not be negative")
	}
	if cfg.MaxLinesPerSecond > 0 && cfg.Burst < 1 {
		return fmt.Errorf("burst must be positive when rate limiting")
	}

	if err := validateLogConfig(cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}
	return nil
}

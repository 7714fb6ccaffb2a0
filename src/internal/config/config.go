// FILE: ssetail/src/internal/config/config.go
package config

import "ssetail/src/internal/core"

// Config is the complete ssetail client configuration
type Config struct {
	// Top-level flags
	ConfigFile string `toml:"config_file"`
	Quiet      bool   `toml:"quiet"`

	// Subscription target
	Endpoint EndpointConfig `toml:"endpoint"`

	// Connection cycle tuning
	Client ClientConfig `toml:"client"`

	// Forwarded log-line output
	Records RecordsConfig `toml:"records"`

	// Record filters, all must pass
	Filters []FilterConfig `toml:"filters"`

	// Application logging
	Logging *LogConfig `toml:"logging"`

	// Periodic status report
	Status StatusConfig `toml:"status"`
}

// EndpointConfig identifies the SSE server
type EndpointConfig struct {
	Host string `toml:"host"`
	Port int64  `toml:"port"`
	Path string `toml:"path"`
}

// ClientConfig tunes the connection supervisor
type ClientConfig struct {
	// Bytes requested per read
	ReadBufferSize int64 `toml:"read_buffer_size"`

	// Read deadline, must exceed the server keepalive interval
	IdleTimeoutMS int64 `toml:"idle_timeout_ms"`

	// Fixed delay between connection cycles
	RetryDelayMS int64 `toml:"retry_delay_ms"`

	DialTimeoutMS int64 `toml:"dial_timeout_ms"`
	KeepAliveMS   int64 `toml:"keep_alive_ms"`

	// "event" (blank-line boundaries) or "chunk" (one event per read)
	Framing string `toml:"framing"`
}

// RecordsConfig controls where forwarded log lines are written
type RecordsConfig struct {
	// Formatter: "txt", "json", "raw"
	Format          string `toml:"format"`
	Template        string `toml:"template"`
	TimestampFormat string `toml:"timestamp_format"`

	// Rotated file output
	File RecordFileConfig `toml:"file"`

	// Console mirror: "auto", "on", "off"
	Console       string `toml:"console"`
	ConsoleTarget string `toml:"console_target"`

	// Per-sink channel capacity
	BufferSize int64 `toml:"buffer_size"`
}

// RecordFileConfig configures the rotated record file
type RecordFileConfig struct {
	Enabled        bool    `toml:"enabled"`
	Directory      string  `toml:"directory"`
	Name           string  `toml:"name"`
	MaxSizeKB      int64   `toml:"max_size_kb"`
	MaxTotalSizeKB int64   `toml:"max_total_size_kb"`
	MinDiskFreeKB  int64   `toml:"min_disk_free_kb"`
	RetentionHours float64 `toml:"retention_hours"`
}

// StatusConfig controls the periodic status reporter
type StatusConfig struct {
	Disabled        bool  `toml:"disabled"`
	IntervalSeconds int64 `toml:"interval_seconds"`
}

// Target returns the immutable subscription target
func (c *Config) Target() core.Endpoint {
	return core.Endpoint{
		Host: c.Endpoint.Host,
		Port: c.Endpoint.Port,
		Path: c.Endpoint.Path,
	}
}

func defaults() *Config {
	return &Config{
		Endpoint: EndpointConfig{
			Port: core.DefaultPort,
			Path: core.DefaultPath,
		},
		Client: ClientConfig{
			ReadBufferSize: core.DefaultReadBufferSize,
			IdleTimeoutMS:  core.DefaultIdleTimeout.Milliseconds(),
			RetryDelayMS:   core.DefaultRetryDelay.Milliseconds(),
			DialTimeoutMS:  core.DefaultDialTimeout.Milliseconds(),
			KeepAliveMS:    core.DefaultKeepAlive.Milliseconds(),
			Framing:        "event",
		},
		Records: RecordsConfig{
			Format:          "txt",
			Template:        DefaultRecordTemplate,
			TimestampFormat: DefaultTimestampFormat,
			File: RecordFileConfig{
				Enabled:        true,
				Directory:      "./",
				Name:           "ssetail",
				MaxSizeKB:      1000,
				MaxTotalSizeKB: 100000,
			},
			Console:       "auto",
			ConsoleTarget: "stdout",
			BufferSize:    core.DefaultSinkBufferSize,
		},
		Logging: DefaultLogConfig(),
		Status: StatusConfig{
			IntervalSeconds: 30,
		},
	}
}

// Default record layout: "2006-01-02 15:04:05,000 <message>"
const (
	DefaultRecordTemplate  = "{{FmtTime .Timestamp}} {{.Message}}"
	DefaultTimestampFormat = "2006-01-02 15:04:05,000"
)

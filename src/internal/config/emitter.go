// FILE: ssetail/src/internal/config/emitter.go
package config

import "ssetail/src/internal/core"

// EmitterConfig configures the companion SSE server
type EmitterConfig struct {
	ConfigFile string `toml:"config_file"`
	Quiet      bool   `toml:"quiet"`

	Host       string `toml:"host"`
	Port       int64  `toml:"port"`
	StreamPath string `toml:"stream_path"`
	StatusPath string `toml:"status_path"`

	// Interval of "event: keepalive" frames, 0 disables them
	KeepaliveSeconds int64 `toml:"keepalive_seconds"`

	// Per-client queue capacity
	BufferSize int64 `toml:"buffer_size"`

	// Published lines per second, 0 is unlimited; excess lines are dropped
	MaxLinesPerSecond float64 `toml:"max_lines_per_second"`
	Burst             int64   `toml:"burst"`

	// Request header read limit; streams themselves have no deadline
	ReadTimeoutMS int64 `toml:"read_timeout_ms"`

	Logging *LogConfig `toml:"logging"`
}

func emitterDefaults() *EmitterConfig {
	return &EmitterConfig{
		Host:             "0.0.0.0",
		Port:             core.DefaultPort,
		StreamPath:       core.DefaultPath,
		StatusPath:       "/status",
		KeepaliveSeconds: int64(core.DefaultKeepaliveEvery.Seconds()),
		BufferSize:       core.DefaultSinkBufferSize,
		Burst:            100,
		ReadTimeoutMS:    5000,
		Logging:          DefaultLogConfig(),
	}
}

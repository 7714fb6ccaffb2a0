// FILE: ssetail/src/internal/core/const.go
package core

import "time"

// Endpoint defaults
const (
	DefaultPort = 8080
	DefaultPath = "/log-events"
)

// Event types emitted by the log server
const (
	EventKeepalive = "keepalive"
	EventLogLine   = "log-line"
)

// Connection cycle defaults.
// IdleTimeout must stay above the server keepalive cadence (10s).
const (
	DefaultReadBufferSize = 1024
	DefaultIdleTimeout    = 15 * time.Second
	DefaultRetryDelay     = 5 * time.Second
	DefaultDialTimeout    = 10 * time.Second
	DefaultKeepAlive      = 30 * time.Second
	DefaultKeepaliveEvery = 10 * time.Second
)

const DefaultSinkBufferSize = 1000

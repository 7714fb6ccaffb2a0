// FILE: ssetail/src/internal/core/types.go
package core

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

// Endpoint identifies one subscription target. Built once at startup, never mutated.
type Endpoint struct {
	Host string
	Port int64
	Path string
}

// Address returns the dialable host:port form
func (e Endpoint) Address() string {
	return net.JoinHostPort(e.Host, strconv.FormatInt(e.Port, 10))
}

// Request renders the handshake sent right after the connection is established
func (e Endpoint) Request() []byte {
	return fmt.Appendf(nil, "GET %s HTTP/1.1\r\nHost: %s:%d\r\nAccept: text/event-stream\r\n\r\n",
		e.Path, e.Host, e.Port)
}

func (e Endpoint) String() string {
	return "http://" + e.Address() + e.Path
}

// LogRecord is a sanitized log line forwarded to the record sinks
type LogRecord struct {
	Time    time.Time `json:"time"`
	Source  string    `json:"source"`
	Event   string    `json:"event,omitempty"`
	Message string    `json:"message"`
	RawSize int64     `json:"-"`
}

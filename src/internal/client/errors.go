// FILE: ssetail/src/internal/client/errors.go
package client

import (
	"errors"
	"io"
	"net"
)

// Connection cycle failures. All of them are transient: the supervisor
// logs the cause, waits the retry delay and reconnects.
var (
	ErrConnect     = errors.New("connect failed")
	ErrWrite       = errors.New("request write failed")
	ErrRead        = errors.New("read failed")
	ErrIdleTimeout = errors.New("idle timeout")
	ErrClosed      = errors.New("connection closed by server")

	// ErrUnexpected wraps a panic recovered from a connection cycle
	ErrUnexpected = errors.New("unexpected failure")
)

// isConnectionError reports whether err belongs to the socket error family
func isConnectionError(err error) bool {
	return errors.Is(err, ErrConnect) ||
		errors.Is(err, ErrWrite) ||
		errors.Is(err, ErrRead) ||
		errors.Is(err, ErrIdleTimeout) ||
		errors.Is(err, ErrClosed)
}

// classifyReadError maps a failed read onto the sentinel set
func classifyReadError(err error) error {
	if errors.Is(err, io.EOF) {
		return ErrClosed
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrIdleTimeout
	}

	return ErrRead
}

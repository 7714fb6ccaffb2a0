// FILE: ssetail/src/internal/sink/sink.go
package sink

import (
	"context"
	"time"

	"ssetail/src/internal/core"
)

// Sink represents an output destination for forwarded log records
type Sink interface {
	// Input returns the channel for sending records to this sink
	Input() chan<- core.LogRecord

	// Start begins processing records
	Start(ctx context.Context) error

	// Stop drains buffered records and shuts the sink down
	Stop()

	// GetStats returns sink statistics
	GetStats() SinkStats
}

// SinkStats contains statistics about a sink
type SinkStats struct {
	Type           string
	TotalProcessed uint64
	TotalFailed    uint64
	StartTime      time.Time
	LastProcessed  time.Time
	Details        map[string]any
}

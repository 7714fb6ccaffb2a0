// FILE: ssetail/src/cmd/ssetail/status.go
package main

import (
	"context"
	"os"
	"time"

	"ssetail/src/internal/client"
	"ssetail/src/internal/config"
	"ssetail/src/internal/sink"
)

// statusReporter periodically logs supervisor and sink statistics
func statusReporter(ctx context.Context, supervisor *client.Supervisor, sinks []sink.Sink, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// Safely get stats with recovery
			func() {
				defer func() {
					if r := recover(); r != nil {
						logger.Error("msg", "Panic in status reporter",
							"component", "status_reporter",
							"panic", r)
					}
				}()

				logClientStatus(supervisor.GetStats())
				for _, s := range sinks {
					logSinkStatus(s.GetStats())
				}
			}()
		}
	}
}

// logClientStatus logs the connection state; a disconnected client is reported at info
func logClientStatus(stats map[string]any) {
	statusFields := []any{
		"msg", "Client status",
		"component", "status_reporter",
		"address", stats["address"],
		"connected", stats["connected"],
		"records", stats["total_records"],
		"keepalives", stats["total_keepalives"],
		"failures", stats["total_failures"],
	}

	if dropped, ok := stats["total_dropped"].(uint64); ok && dropped > 0 {
		statusFields = append(statusFields, "dropped", dropped)
	}
	if filtered, ok := stats["total_filtered"].(uint64); ok && filtered > 0 {
		statusFields = append(statusFields, "filtered", filtered)
	}

	if connected, _ := stats["connected"].(bool); !connected {
		statusFields = append(statusFields, "last_error", stats["last_error"])
		logger.Info(statusFields...)
		return
	}
	logger.Debug(statusFields...)
}

func logSinkStatus(stats sink.SinkStats) {
	logger.Debug("msg", "Sink status",
		"component", "status_reporter",
		"sink", stats.Type,
		"processed", stats.TotalProcessed,
		"failed", stats.TotalFailed,
		"last_processed", stats.LastProcessed.Format(time.TimeOnly))
}

func enableStatusReporter(cfg *config.Config) bool {
	// Status reporter can be disabled via environment variable
	if os.Getenv("SSETAIL_DISABLE_STATUS_REPORTER") == "1" {
		return false
	}
	return !cfg.Status.Disabled
}

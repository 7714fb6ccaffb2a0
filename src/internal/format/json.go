// FILE: ssetail/src/internal/format/json.go
package format

import (
	"encoding/json"
	"fmt"
	"time"

	"ssetail/src/internal/core"

	"github.com/lixenwraith/log"
)

const (
	fieldTime    = "time"
	fieldSource  = "source"
	fieldEvent   = "event"
	fieldMessage = "message"
)

// JSONFormatter produces one JSON object per record.
type JSONFormatter struct {
	logger *log.Logger
}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter(logger *log.Logger) *JSONFormatter {
	return &JSONFormatter{logger: logger}
}

// Format transforms a single LogRecord into a JSON line.
// A message that is itself a JSON object is merged in, metadata fields win.
func (f *JSONFormatter) Format(record core.LogRecord) ([]byte, error) {
	output := map[string]any{
		fieldTime:   record.Time.Format(time.RFC3339Nano),
		fieldSource: record.Source,
	}
	if record.Event != "" {
		output[fieldEvent] = record.Event
	}

	var msgData map[string]any
	if err := json.Unmarshal([]byte(record.Message), &msgData); err == nil {
		for k, v := range msgData {
			if _, reserved := output[k]; !reserved {
				output[k] = v
			}
		}

		if _, hasTime := msgData[fieldTime]; hasTime {
			f.logger.Debug("msg", "Overriding timestamp from JSON message",
				"component", "json_formatter",
				"original", msgData[fieldTime])
		}
	} else {
		output[fieldMessage] = record.Message
	}

	result, err := json.Marshal(output)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return append(result, '\n'), nil
}

// Name returns the formatter's type name.
func (f *JSONFormatter) Name() string {
	return "json"
}

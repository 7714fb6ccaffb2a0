// FILE: ssetail/src/internal/format/raw.go
package format

import (
	"ssetail/src/internal/core"

	"github.com/lixenwraith/log"
)

// Outputs the record message as-is with a newline
type RawFormatter struct {
	logger *log.Logger
}

// Creates a new raw formatter
func NewRawFormatter(logger *log.Logger) *RawFormatter {
	return &RawFormatter{
		logger: logger,
	}
}

// Returns the message with a newline appended
func (f *RawFormatter) Format(record core.LogRecord) ([]byte, error) {
	return append([]byte(record.Message), '\n'), nil
}

// Returns the formatter name
func (f *RawFormatter) Name() string {
	return "raw"
}

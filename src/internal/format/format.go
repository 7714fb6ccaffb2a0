// FILE: ssetail/src/internal/format/format.go
package format

import (
	"fmt"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"

	"github.com/lixenwraith/log"
)

// Formatter defines the interface for transforming a LogRecord into a byte slice.
type Formatter interface {
	// Format takes a LogRecord and returns the formatted line as a byte slice.
	Format(record core.LogRecord) ([]byte, error)

	// Name returns the formatter type name
	Name() string
}

// New creates a new Formatter based on the records configuration.
func New(cfg *config.RecordsConfig, logger *log.Logger) (Formatter, error) {
	name := cfg.Format
	if name == "" {
		name = "txt"
	}

	switch name {
	case "json":
		return NewJSONFormatter(logger), nil
	case "txt":
		return NewTxtFormatter(cfg.Template, cfg.TimestampFormat, logger)
	case "raw":
		return NewRawFormatter(logger), nil
	default:
		return nil, fmt.Errorf("unknown formatter type: %s", name)
	}
}

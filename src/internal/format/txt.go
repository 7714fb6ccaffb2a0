// FILE: ssetail/src/internal/format/txt.go
package format

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"

	"github.com/lixenwraith/log"
)

// Produces human-readable text lines using templates
type TxtFormatter struct {
	timestampFormat string
	template        *template.Template
	logger          *log.Logger
}

// Creates a new text formatter, empty arguments select the defaults
func NewTxtFormatter(tmplText, timestampFormat string, logger *log.Logger) (*TxtFormatter, error) {
	if tmplText == "" {
		tmplText = config.DefaultRecordTemplate
	}
	if timestampFormat == "" {
		timestampFormat = config.DefaultTimestampFormat
	}

	f := &TxtFormatter{
		timestampFormat: timestampFormat,
		logger:          logger,
	}

	// Create template with helper functions
	funcMap := template.FuncMap{
		"FmtTime": func(t time.Time) string {
			return t.Format(f.timestampFormat)
		},
		"ToUpper":   strings.ToUpper,
		"ToLower":   strings.ToLower,
		"TrimSpace": strings.TrimSpace,
	}

	tmpl, err := template.New("record").Funcs(funcMap).Parse(tmplText)
	if err != nil {
		return nil, fmt.Errorf("invalid template: %w", err)
	}

	f.template = tmpl
	return f, nil
}

// Formats the record using the template
func (f *TxtFormatter) Format(record core.LogRecord) ([]byte, error) {
	data := map[string]any{
		"Timestamp": record.Time,
		"Source":    record.Source,
		"Event":     record.Event,
		"Message":   record.Message,
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		f.logger.Debug("msg", "Template execution failed, using fallback",
			"component", "txt_formatter",
			"error", err)

		fallback := fmt.Sprintf("%s %s\n", record.Time.Format(f.timestampFormat), record.Message)
		return []byte(fallback), nil
	}

	// Ensure newline at end
	result := buf.Bytes()
	if len(result) == 0 || result[len(result)-1] != '\n' {
		result = append(result, '\n')
	}

	return result, nil
}

// Returns the formatter name
func (f *TxtFormatter) Name() string {
	return "txt"
}

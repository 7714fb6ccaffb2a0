// FILE: ssetail/src/internal/filter/filter.go
package filter

import (
	"fmt"
	"regexp"
	"sync/atomic"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"

	"github.com/lixenwraith/log"
)

// Device log line header: severity letter, timestamp in parentheses, tag.
// Matches both "I (5120) app: ..." and "W (12:00:01.250) wifi: ..."
var lineHeader = regexp.MustCompile(`^([EWIDV]) \([^)]*\) ([^:]+):`)

// Filter applies regex-based filtering to forwarded records
type Filter struct {
	config   config.FilterConfig
	patterns []*regexp.Regexp
	logger   *log.Logger

	// Statistics
	totalProcessed atomic.Uint64
	totalMatched   atomic.Uint64
	totalDropped   atomic.Uint64
	totalNoField   atomic.Uint64
}

// NewFilter creates a new filter from configuration
func NewFilter(cfg config.FilterConfig, logger *log.Logger) (*Filter, error) {
	// Set defaults
	if cfg.Type == "" {
		cfg.Type = config.FilterTypeInclude
	}
	if cfg.Logic == "" {
		cfg.Logic = config.FilterLogicOr
	}
	if cfg.Field == "" {
		cfg.Field = config.FilterFieldMessage
	}

	f := &Filter{
		config:   cfg,
		patterns: make([]*regexp.Regexp, 0, len(cfg.Patterns)),
		logger:   logger,
	}

	for i, pattern := range cfg.Patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern[%d] '%s': %w", i, pattern, err)
		}
		f.patterns = append(f.patterns, re)
	}

	logger.Debug("msg", "Filter created",
		"component", "filter",
		"type", cfg.Type,
		"logic", cfg.Logic,
		"field", cfg.Field,
		"pattern_count", len(cfg.Patterns))

	return f, nil
}

// Apply checks if a record should be passed through. A record without the
// selected field counts as not matched: include filters drop it, exclude
// filters keep it.
func (f *Filter) Apply(record core.LogRecord) bool {
	f.totalProcessed.Add(1)

	// No patterns means pass everything
	if len(f.patterns) == 0 {
		return true
	}

	matched := false
	if text, ok := f.field(record); ok {
		matched = f.matches(text)
	} else {
		f.totalNoField.Add(1)
	}
	if matched {
		f.totalMatched.Add(1)
	}

	shouldPass := matched
	if f.config.Type == config.FilterTypeExclude {
		shouldPass = !matched
	}

	if !shouldPass {
		f.totalDropped.Add(1)
	}

	return shouldPass
}

// field extracts the configured part of record
func (f *Filter) field(record core.LogRecord) (string, bool) {
	switch f.config.Field {
	case config.FilterFieldSource:
		return record.Source, true
	case config.FilterFieldEvent:
		return record.Event, true
	case config.FilterFieldLevel, config.FilterFieldTag:
		level, tag, ok := ParseLineHeader(record.Message)
		if !ok {
			return "", false
		}
		if f.config.Field == config.FilterFieldLevel {
			return level, true
		}
		return tag, true
	default:
		return record.Message, true
	}
}

// ParseLineHeader splits the severity letter and tag off a device log line
func ParseLineHeader(message string) (level, tag string, ok bool) {
	m := lineHeader.FindStringSubmatch(message)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// matches checks if text matches the patterns according to the logic
func (f *Filter) matches(text string) bool {
	switch f.config.Logic {
	case config.FilterLogicOr:
		for _, re := range f.patterns {
			if re.MatchString(text) {
				return true
			}
		}
		return false

	case config.FilterLogicAnd:
		for _, re := range f.patterns {
			if !re.MatchString(text) {
				return false
			}
		}
		return true

	default:
		// Shouldn't happen after validation
		f.logger.Warn("msg", "Unknown filter logic",
			"component", "filter",
			"logic", f.config.Logic)
		return false
	}
}

// GetStats returns filter statistics
func (f *Filter) GetStats() map[string]any {
	return map[string]any{
		"type":            f.config.Type,
		"logic":           f.config.Logic,
		"field":           f.config.Field,
		"pattern_count":   len(f.patterns),
		"total_processed": f.totalProcessed.Load(),
		"total_matched":   f.totalMatched.Load(),
		"total_dropped":   f.totalDropped.Load(),
		"total_no_field":  f.totalNoField.Load(),
	}
}

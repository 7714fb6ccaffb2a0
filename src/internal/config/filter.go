// FILE: ssetail/src/internal/config/filter.go
package config

import (
	"fmt"
	"regexp"
)

// FilterType determines how matching records are handled
type FilterType string

const (
	FilterTypeInclude FilterType = "include" // Pass only matching records
	FilterTypeExclude FilterType = "exclude" // Drop matching records
)

// FilterLogic determines how multiple patterns combine
type FilterLogic string

const (
	FilterLogicOr  FilterLogic = "or"  // Match any pattern
	FilterLogicAnd FilterLogic = "and" // Match all patterns
)

// FilterField selects the part of a record the patterns run against
type FilterField string

const (
	FilterFieldMessage FilterField = "message" // Sanitized log line
	FilterFieldLevel   FilterField = "level"   // Severity letter of "I (123) tag: text" lines
	FilterFieldTag     FilterField = "tag"     // Component tag of "I (123) tag: text" lines
	FilterFieldSource  FilterField = "source"  // host:port the line came from
	FilterFieldEvent   FilterField = "event"   // SSE event name
)

// FilterConfig is one regex filter applied to forwarded records
type FilterConfig struct {
	Type     FilterType  `toml:"type"`
	Logic    FilterLogic `toml:"logic"`
	Field    FilterField `toml:"field"`
	Patterns []string    `toml:"patterns"`
}

func validateFilter(filterIndex int, cfg *FilterConfig) error {
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
	default:
		return fmt.Errorf("filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			filterIndex, cfg.Type)
	}

	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
	default:
		return fmt.Errorf("filter[%d]: invalid logic '%s' (must be 'or' or 'and')",
			filterIndex, cfg.Logic)
	}

	switch cfg.Field {
	case FilterFieldMessage, FilterFieldLevel, FilterFieldTag, FilterFieldSource, FilterFieldEvent, "":
	default:
		return fmt.Errorf("filter[%d]: invalid field '%s' (must be 'message', 'level', 'tag', 'source' or 'event')",
			filterIndex, cfg.Field)
	}

	// Empty patterns is valid - passes everything
	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter[%d] pattern[%d] '%s': invalid regex: %w",
				filterIndex, i, pattern, err)
		}
	}

	return nil
}

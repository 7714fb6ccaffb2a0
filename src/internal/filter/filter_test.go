// FILE: ssetail/src/internal/filter/filter_test.go
package filter

import (
	"testing"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNewFilter(t *testing.T) {
	logger := newTestLogger()

	t.Run("SuccessWithDefaults", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"wifi"}}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeInclude, f.config.Type)
		assert.Equal(t, config.FilterLogicOr, f.config.Logic)
	})

	t.Run("SuccessWithCustomConfig", func(t *testing.T) {
		cfg := config.FilterConfig{
			Type:     config.FilterTypeExclude,
			Logic:    config.FilterLogicAnd,
			Patterns: []string{"^D ", "heap"},
		}
		f, err := NewFilter(cfg, logger)
		assert.NoError(t, err)
		assert.NotNil(t, f)
		assert.Equal(t, config.FilterTypeExclude, f.config.Type)
		assert.Equal(t, config.FilterLogicAnd, f.config.Logic)
		assert.Len(t, f.patterns, 2)
	})

	t.Run("ErrorInvalidRegex", func(t *testing.T) {
		cfg := config.FilterConfig{Patterns: []string{"["}}
		f, err := NewFilter(cfg, logger)
		assert.Error(t, err)
		assert.Nil(t, f)
		assert.Contains(t, err.Error(), "invalid regex pattern")
	})
}

func TestFilter_Apply(t *testing.T) {
	logger := newTestLogger()

	testCases := []struct {
		name     string
		cfg      config.FilterConfig
		record   core.LogRecord
		expected bool
	}{
		{
			name:     "IncludeOR_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicOr, Patterns: []string{"^E ", "^W "}},
			record:   core.LogRecord{Message: "E (812) spi: timeout"},
			expected: true,
		},
		{
			name:     "IncludeOR_NoMatch",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicOr, Patterns: []string{"^E ", "^W "}},
			record:   core.LogRecord{Message: "I (812) spi: ready"},
			expected: false,
		},
		{
			name:     "IncludeAND_MatchAll",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicAnd, Patterns: []string{"wifi", "disconnect"}},
			record:   core.LogRecord{Message: "W (90) wifi: disconnected, reason 201"},
			expected: true,
		},
		{
			name:     "IncludeAND_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Logic: config.FilterLogicAnd, Patterns: []string{"wifi", "disconnect"}},
			record:   core.LogRecord{Message: "I (90) wifi: connected"},
			expected: false,
		},
		{
			name:     "ExcludeOR_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicOr, Patterns: []string{"^D ", "^V "}},
			record:   core.LogRecord{Message: "D (5) gpio: level 1"},
			expected: false,
		},
		{
			name:     "ExcludeOR_NoMatch",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicOr, Patterns: []string{"^D ", "^V "}},
			record:   core.LogRecord{Message: "I (5) gpio: configured"},
			expected: true,
		},
		{
			name:     "ExcludeAND_MatchAll",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicAnd, Patterns: []string{"heap", "free"}},
			record:   core.LogRecord{Message: "I (7) app: heap free 81234"},
			expected: false,
		},
		{
			name:     "ExcludeAND_MatchOne",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Logic: config.FilterLogicAnd, Patterns: []string{"heap", "free"}},
			record:   core.LogRecord{Message: "I (7) app: heap used 4000"},
			expected: true,
		},
		{
			name:     "NoPatterns",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{}},
			record:   core.LogRecord{Message: "any message"},
			expected: true,
		},
		{
			name:     "LevelField_IncludeErrors",
			cfg:      config.FilterConfig{Field: config.FilterFieldLevel, Patterns: []string{"^[EW]$"}},
			record:   core.LogRecord{Message: "W (12:00:01.250) wifi: beacon timeout"},
			expected: true,
		},
		{
			name:     "LevelField_IgnoresMessageBody",
			cfg:      config.FilterConfig{Field: config.FilterFieldLevel, Patterns: []string{"E"}},
			record:   core.LogRecord{Message: "I (40) app: Error counter reset"},
			expected: false,
		},
		{
			name:     "LevelField_IncludeDropsHeaderless",
			cfg:      config.FilterConfig{Field: config.FilterFieldLevel, Patterns: []string{"."}},
			record:   core.LogRecord{Message: "ets Jun  8 2016 00:22:57"},
			expected: false,
		},
		{
			name:     "TagField_ExcludeKeepsHeaderless",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Field: config.FilterFieldTag, Patterns: []string{"^wifi$"}},
			record:   core.LogRecord{Message: "rst:0x1 (POWERON_RESET),boot:0x13"},
			expected: true,
		},
		{
			name:     "TagField_ExcludeTag",
			cfg:      config.FilterConfig{Type: config.FilterTypeExclude, Field: config.FilterFieldTag, Patterns: []string{"^wifi$"}},
			record:   core.LogRecord{Message: "I (90) wifi: connected"},
			expected: false,
		},
		{
			name:     "SourceField",
			cfg:      config.FilterConfig{Field: config.FilterFieldSource, Patterns: []string{"^esp32\\.local:"}},
			record:   core.LogRecord{Source: "esp32.local:8080", Message: "boot"},
			expected: true,
		},
		{
			name:     "EventField",
			cfg:      config.FilterConfig{Field: config.FilterFieldEvent, Patterns: []string{"^log-line$"}},
			record:   core.LogRecord{Event: core.EventLogLine, Message: "boot"},
			expected: true,
		},
		{
			name:     "SourceIsNotMatched",
			cfg:      config.FilterConfig{Type: config.FilterTypeInclude, Patterns: []string{"esp32"}},
			record:   core.LogRecord{Source: "esp32.local:8080", Message: "boot"},
			expected: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := NewFilter(tc.cfg, logger)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, f.Apply(tc.record))
		})
	}
}

func TestFilter_GetStats(t *testing.T) {
	f, err := NewFilter(config.FilterConfig{Type: config.FilterTypeExclude, Patterns: []string{"noise"}}, newTestLogger())
	assert.NoError(t, err)

	f.Apply(core.LogRecord{Message: "noise"})
	f.Apply(core.LogRecord{Message: "signal"})

	stats := f.GetStats()
	assert.Equal(t, uint64(2), stats["total_processed"])
	assert.Equal(t, uint64(1), stats["total_matched"])
	assert.Equal(t, uint64(1), stats["total_dropped"])
	assert.Equal(t, config.FilterFieldMessage, stats["field"])
}

func TestParseLineHeader(t *testing.T) {
	testCases := []struct {
		message string
		level   string
		tag     string
		ok      bool
	}{
		{message: "I (5120) app: heap 81234", level: "I", tag: "app", ok: true},
		{message: "E (12:00:01.250) spi_master: timeout: 3", level: "E", tag: "spi_master", ok: true},
		{message: "V (1) nvs: ", level: "V", tag: "nvs", ok: true},
		{message: "X (1) app: unknown level"},
		{message: "I 5120 app: no parentheses"},
		{message: "plain text"},
		{message: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.message, func(t *testing.T) {
			level, tag, ok := ParseLineHeader(tc.message)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.level, level)
			assert.Equal(t, tc.tag, tag)
		})
	}
}

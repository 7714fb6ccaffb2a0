// FILE: ssetail/src/internal/format/json_test.go
package format

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"ssetail/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFormatter_Format(t *testing.T) {
	formatter := NewJSONFormatter(newTestLogger())
	testTime := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	record := core.LogRecord{
		Time:    testTime,
		Source:  "esp32.local:8080",
		Event:   "log-line",
		Message: "W (88) phy: calibration skipped",
	}

	t.Run("BasicFormatting", func(t *testing.T) {
		output, err := formatter.Format(record)
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(output, &result), "Output should be valid JSON")

		assert.Equal(t, testTime.Format(time.RFC3339Nano), result["time"])
		assert.Equal(t, "esp32.local:8080", result["source"])
		assert.Equal(t, "log-line", result["event"])
		assert.Equal(t, "W (88) phy: calibration skipped", result["message"])
		assert.True(t, strings.HasSuffix(string(output), "\n"), "Output should end with a newline")
	})

	t.Run("MessageIsJSON", func(t *testing.T) {
		jsonRecord := record
		jsonRecord.Message = `{"temp":21.5,"source":"spoofed"}`

		output, err := formatter.Format(jsonRecord)
		require.NoError(t, err)

		var result map[string]any
		require.NoError(t, json.Unmarshal(output, &result))

		assert.Equal(t, 21.5, result["temp"])
		assert.Equal(t, "esp32.local:8080", result["source"], "metadata takes precedence")
		assert.NotContains(t, result, "message")
	})
}

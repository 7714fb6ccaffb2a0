// FILE: ssetail/src/internal/format/txt_test.go
package format

import (
	"strings"
	"testing"
	"time"

	"ssetail/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTxtFormatter(t *testing.T) {
	t.Run("InvalidTemplate", func(t *testing.T) {
		_, err := NewTxtFormatter("{{ .Timestamp | InvalidFunc }}", "", newTestLogger())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "invalid template")
	})
}

func TestTxtFormatter_Format(t *testing.T) {
	logger := newTestLogger()
	testTime := time.Date(2024, 3, 9, 14, 5, 7, 250_000_000, time.UTC)
	record := core.LogRecord{
		Time:    testTime,
		Source:  "192.168.4.1:8080",
		Event:   "log-line",
		Message: "I (5120) app: heap 81234",
	}

	t.Run("DefaultTemplate", func(t *testing.T) {
		formatter, err := NewTxtFormatter("", "", logger)
		require.NoError(t, err)

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.Equal(t, "2024-03-09 14:05:07,250 I (5120) app: heap 81234\n", string(output))
	})

	t.Run("CustomTemplate", func(t *testing.T) {
		formatter, err := NewTxtFormatter("{{.Source}} {{ToUpper .Event}} {{.Message}}", "", logger)
		require.NoError(t, err)

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.Equal(t, "192.168.4.1:8080 LOG-LINE I (5120) app: heap 81234\n", string(output))
	})

	t.Run("CustomTimestampFormat", func(t *testing.T) {
		formatter, err := NewTxtFormatter("", "2006-01-02", logger)
		require.NoError(t, err)

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(string(output), "2024-03-09 I (5120)"))
	})

	t.Run("TemplateWithTrailingNewline", func(t *testing.T) {
		formatter, err := NewTxtFormatter("{{.Message}}\n", "", logger)
		require.NoError(t, err)

		output, err := formatter.Format(record)
		require.NoError(t, err)

		assert.Equal(t, "I (5120) app: heap 81234\n", string(output))
	})
}

// FILE: ssetail/src/internal/sink/file_test.go
package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"
	"ssetail/src/internal/format"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readDir(t *testing.T, dir string) string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var sb strings.Builder
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		require.NoError(t, err)
		sb.Write(data)
	}
	return sb.String()
}

func TestFileSink_WritesFormattedRecords(t *testing.T) {
	logger := newTestLogger()
	dir := t.TempDir()

	formatter, err := format.NewTxtFormatter(config.DefaultRecordTemplate, config.DefaultTimestampFormat, logger)
	require.NoError(t, err)

	cfg := config.RecordFileConfig{
		Enabled:        true,
		Directory:      dir,
		Name:           "records",
		MaxSizeKB:      1000,
		MaxTotalSizeKB: 100000,
	}
	fs, err := NewFileSink(cfg, 10, logger, formatter)
	require.NoError(t, err)
	require.NoError(t, fs.Start(context.Background()))

	ts := time.Date(2024, 3, 9, 14, 5, 7, 250_000_000, time.Local)
	fs.Input() <- core.LogRecord{Time: ts, Message: "I (5120) app: heap 81234"}
	fs.Stop()

	content := readDir(t, dir)
	assert.Contains(t, content, "2024-03-09 14:05:07,250 I (5120) app: heap 81234")

	stats := fs.GetStats()
	assert.Equal(t, "file", stats.Type)
	assert.Equal(t, uint64(1), stats.TotalProcessed)
	assert.Equal(t, "records", stats.Details["name"])
}

func TestFileSink_DefaultsName(t *testing.T) {
	logger := newTestLogger()
	dir := t.TempDir()

	fs, err := NewFileSink(config.RecordFileConfig{Directory: dir}, 0, logger, format.NewRawFormatter(logger))
	require.NoError(t, err)
	defer fs.Stop()

	assert.Equal(t, "ssetail", fs.config.Name)
	assert.Equal(t, core.DefaultSinkBufferSize, cap(fs.input))
}

// FILE: ssetail/src/internal/sink/console_test.go
package sink

import (
	"bytes"
	"context"
	"testing"
	"time"

	"ssetail/src/internal/core"
	"ssetail/src/internal/format"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *log.Logger {
	return log.NewLogger()
}

func TestNewConsoleSink(t *testing.T) {
	logger := newTestLogger()
	formatter := format.NewRawFormatter(logger)

	assert.Equal(t, "stderr", NewConsoleSink("stderr", 10, logger, formatter).target)
	assert.Equal(t, "stdout", NewConsoleSink("bogus", 10, logger, formatter).target)

	s := NewConsoleSink("stdout", 0, logger, formatter)
	assert.Equal(t, core.DefaultSinkBufferSize, cap(s.input))
}

func TestConsoleSink_WritesRecordsInOrder(t *testing.T) {
	logger := newTestLogger()
	s := NewConsoleSink("stdout", 10, logger, format.NewRawFormatter(logger))

	var out bytes.Buffer
	s.output = &out

	require.NoError(t, s.Start(context.Background()))
	s.Input() <- core.LogRecord{Time: time.Now(), Message: "I (10) boot: first"}
	s.Input() <- core.LogRecord{Time: time.Now(), Message: "I (11) boot: second"}
	s.Stop()

	assert.Equal(t, "I (10) boot: first\nI (11) boot: second\n", out.String())

	stats := s.GetStats()
	assert.Equal(t, "console", stats.Type)
	assert.Equal(t, uint64(2), stats.TotalProcessed)
	assert.Equal(t, uint64(0), stats.TotalFailed)
}

func TestConsoleSink_StopDrainsBuffer(t *testing.T) {
	logger := newTestLogger()
	s := NewConsoleSink("stdout", 100, logger, format.NewRawFormatter(logger))

	var out bytes.Buffer
	s.output = &out

	// Buffered before the loop runs
	for i := 0; i < 50; i++ {
		s.Input() <- core.LogRecord{Message: "line"}
	}
	require.NoError(t, s.Start(context.Background()))
	s.Stop()
	s.Stop() // idempotent

	assert.Equal(t, uint64(50), s.GetStats().TotalProcessed)
	assert.Equal(t, 50, bytes.Count(out.Bytes(), []byte("line\n")))
}

// FILE: ssetail/src/internal/sink/console.go
package sink

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"ssetail/src/internal/core"
	"ssetail/src/internal/format"

	"github.com/lixenwraith/log"
)

// ConsoleSink mirrors records to stdout or stderr
type ConsoleSink struct {
	input     chan core.LogRecord
	target    string
	output    io.Writer
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	startTime time.Time
	logger    *log.Logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	totalFailed    atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewConsoleSink creates a console sink writing to target ("stdout" or "stderr")
func NewConsoleSink(target string, bufferSize int64, logger *log.Logger, formatter format.Formatter) *ConsoleSink {
	var output io.Writer = os.Stdout
	if target == "stderr" {
		output = os.Stderr
	} else {
		target = "stdout"
	}
	if bufferSize < 1 {
		bufferSize = core.DefaultSinkBufferSize
	}

	s := &ConsoleSink{
		input:     make(chan core.LogRecord, bufferSize),
		target:    target,
		output:    output,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	s.lastProcessed.Store(time.Time{})

	return s
}

func (s *ConsoleSink) Input() chan<- core.LogRecord {
	return s.input
}

func (s *ConsoleSink) Start(ctx context.Context) error {
	s.wg.Add(1)
	go s.processLoop(ctx)
	s.logger.Info("msg", "Console sink started",
		"component", "console_sink",
		"target", s.target)
	return nil
}

func (s *ConsoleSink) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
		s.logger.Info("msg", "Console sink stopped", "component", "console_sink")
	})
}

func (s *ConsoleSink) GetStats() SinkStats {
	lastProc, _ := s.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "console",
		TotalProcessed: s.totalProcessed.Load(),
		TotalFailed:    s.totalFailed.Load(),
		StartTime:      s.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"target": s.target,
		},
	}
}

func (s *ConsoleSink) processLoop(ctx context.Context) {
	defer s.wg.Done()

	for {
		select {
		case record := <-s.input:
			s.write(record)
		case <-ctx.Done():
			s.drain()
			return
		case <-s.done:
			s.drain()
			return
		}
	}
}

func (s *ConsoleSink) drain() {
	for {
		select {
		case record := <-s.input:
			s.write(record)
		default:
			return
		}
	}
}

func (s *ConsoleSink) write(record core.LogRecord) {
	s.totalProcessed.Add(1)
	s.lastProcessed.Store(time.Now())

	formatted, err := s.formatter.Format(record)
	if err != nil {
		s.totalFailed.Add(1)
		s.logger.Error("msg", "Failed to format record for console",
			"component", "console_sink",
			"error", err)
		return
	}
	if _, err := s.output.Write(formatted); err != nil {
		s.totalFailed.Add(1)
	}
}

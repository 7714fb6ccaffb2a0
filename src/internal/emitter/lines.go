// FILE: ssetail/src/internal/emitter/lines.go
package emitter

import (
	"bufio"
	"context"
	"io"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/log"
)

// Publisher accepts lines for broadcast
type Publisher interface {
	Publish(line string) bool
}

// LineSource feeds lines read from r (normally stdin) to a Publisher
type LineSource struct {
	reader    io.Reader
	publisher Publisher
	logger    *log.Logger
	startTime time.Time

	// Statistics
	totalLines   atomic.Uint64
	droppedLines atomic.Uint64
	lastLineTime atomic.Value // time.Time
}

func NewLineSource(r io.Reader, publisher Publisher, logger *log.Logger) *LineSource {
	s := &LineSource{
		reader:    r,
		publisher: publisher,
		logger:    logger,
		startTime: time.Now(),
	}
	s.lastLineTime.Store(time.Time{})
	return s
}

// Run reads until EOF, a read error or ctx cancellation.
// Cancellation is observed between lines only.
func (s *LineSource) Run(ctx context.Context) error {
	s.logger.Info("msg", "Line source started", "component", "line_source")

	scanner := bufio.NewScanner(s.reader)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line := scanner.Text()
		if line == "" {
			continue
		}

		s.totalLines.Add(1)
		s.lastLineTime.Store(time.Now())
		if !s.publisher.Publish(line) {
			s.droppedLines.Add(1)
		}
	}

	if err := scanner.Err(); err != nil {
		s.logger.Error("msg", "Scanner error reading input",
			"component", "line_source",
			"error", err)
		return err
	}

	s.logger.Info("msg", "Line source reached end of input",
		"component", "line_source",
		"total_lines", s.totalLines.Load())
	return nil
}

func (s *LineSource) GetStats() map[string]any {
	lastLine, _ := s.lastLineTime.Load().(time.Time)

	return map[string]any{
		"type":           "stdin",
		"total_lines":    s.totalLines.Load(),
		"dropped_lines":  s.droppedLines.Load(),
		"start_time":     s.startTime,
		"last_line_time": lastLine,
	}
}

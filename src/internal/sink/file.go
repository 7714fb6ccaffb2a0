// FILE: ssetail/src/internal/sink/file.go
package sink

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"
	"ssetail/src/internal/format"

	"github.com/lixenwraith/log"
)

// FileSink writes records to a size-rotated file set
type FileSink struct {
	input     chan core.LogRecord
	config    config.RecordFileConfig
	writer    *log.Logger // Internal logger instance for file writing
	done      chan struct{}
	stopOnce  sync.Once
	wg        sync.WaitGroup
	startTime time.Time
	logger    *log.Logger // Application logger
	formatter format.Formatter

	// Statistics
	totalProcessed atomic.Uint64
	totalFailed    atomic.Uint64
	lastProcessed  atomic.Value // time.Time
}

// NewFileSink creates a file sink and starts its rotating writer
func NewFileSink(cfg config.RecordFileConfig, bufferSize int64, logger *log.Logger, formatter format.Formatter) (*FileSink, error) {
	if cfg.Directory == "" {
		cfg.Directory = "./"
		logger.Warn("msg", "No record directory provided, current directory will be used",
			"component", "file_sink")
	}
	if cfg.Name == "" {
		cfg.Name = "ssetail"
		logger.Warn("msg", "No record file name provided, default will be used",
			"component", "file_sink",
			"name", cfg.Name)
	}
	if bufferSize < 1 {
		bufferSize = core.DefaultSinkBufferSize
	}

	// Records carry their own timestamp, the writer adds nothing
	writerConfig := log.DefaultConfig()
	writerConfig.Directory = cfg.Directory
	writerConfig.Name = cfg.Name
	writerConfig.EnableConsole = false
	writerConfig.ShowTimestamp = false
	writerConfig.ShowLevel = false

	if cfg.MaxSizeKB > 0 {
		writerConfig.MaxSizeKB = cfg.MaxSizeKB
	}
	if cfg.MaxTotalSizeKB > 0 {
		writerConfig.MaxTotalSizeKB = cfg.MaxTotalSizeKB
	}
	if cfg.MinDiskFreeKB > 0 {
		writerConfig.MinDiskFreeKB = cfg.MinDiskFreeKB
	}
	if cfg.RetentionHours > 0 {
		writerConfig.RetentionPeriodHrs = cfg.RetentionHours
	}

	writer := log.NewLogger()
	if err := writer.ApplyConfig(writerConfig); err != nil {
		return nil, fmt.Errorf("failed to initialize record writer: %w", err)
	}
	if err := writer.Start(); err != nil {
		return nil, fmt.Errorf("failed to start record writer: %w", err)
	}

	fs := &FileSink{
		input:     make(chan core.LogRecord, bufferSize),
		config:    cfg,
		writer:    writer,
		done:      make(chan struct{}),
		startTime: time.Now(),
		logger:    logger,
		formatter: formatter,
	}
	fs.lastProcessed.Store(time.Time{})

	return fs, nil
}

func (fs *FileSink) Input() chan<- core.LogRecord {
	return fs.input
}

func (fs *FileSink) Start(ctx context.Context) error {
	fs.wg.Add(1)
	go fs.processLoop(ctx)
	fs.logger.Info("msg", "File sink started",
		"component", "file_sink",
		"directory", fs.config.Directory,
		"name", fs.config.Name)
	return nil
}

func (fs *FileSink) Stop() {
	fs.stopOnce.Do(func() {
		fs.logger.Info("msg", "Stopping file sink", "component", "file_sink")
		close(fs.done)
		fs.wg.Wait()

		if err := fs.writer.Shutdown(2 * time.Second); err != nil {
			fs.logger.Error("msg", "Error shutting down record writer",
				"component", "file_sink",
				"error", err)
		}

		fs.logger.Info("msg", "File sink stopped",
			"component", "file_sink",
			"total_processed", fs.totalProcessed.Load())
	})
}

func (fs *FileSink) GetStats() SinkStats {
	lastProc, _ := fs.lastProcessed.Load().(time.Time)

	return SinkStats{
		Type:           "file",
		TotalProcessed: fs.totalProcessed.Load(),
		TotalFailed:    fs.totalFailed.Load(),
		StartTime:      fs.startTime,
		LastProcessed:  lastProc,
		Details: map[string]any{
			"directory":   fs.config.Directory,
			"name":        fs.config.Name,
			"max_size_kb": fs.config.MaxSizeKB,
			"pending":     len(fs.input),
		},
	}
}

func (fs *FileSink) processLoop(ctx context.Context) {
	defer fs.wg.Done()

	for {
		select {
		case record := <-fs.input:
			fs.write(record)
		case <-ctx.Done():
			fs.drain()
			return
		case <-fs.done:
			fs.drain()
			return
		}
	}
}

// drain flushes whatever is still buffered
func (fs *FileSink) drain() {
	for {
		select {
		case record := <-fs.input:
			fs.write(record)
		default:
			return
		}
	}
}

func (fs *FileSink) write(record core.LogRecord) {
	fs.totalProcessed.Add(1)
	fs.lastProcessed.Store(time.Now())

	formatted, err := fs.formatter.Format(record)
	if err != nil {
		fs.totalFailed.Add(1)
		fs.logger.Error("msg", "Failed to format record",
			"component", "file_sink",
			"error", err)
		return
	}

	// Convert to string to prevent hex encoding of []byte by log package
	// Strip new line, writer adds it
	fs.writer.Message(string(bytes.TrimSuffix(formatted, []byte{'\n'})))
}

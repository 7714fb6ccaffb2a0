// FILE: ssetail/src/internal/client/supervisor.go

// Package client keeps a subscription to a remote SSE log stream alive.
package client

import (
	"context"
	"fmt"
	"net"
	"sync/atomic"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"
	"ssetail/src/internal/filter"
	"ssetail/src/internal/sink"
	"ssetail/src/internal/sse"

	"github.com/lixenwraith/log"
)

// dialFunc matches net.Dialer.DialContext
type dialFunc func(ctx context.Context, network, address string) (net.Conn, error)

// Supervisor owns the connection cycle: dial, request, receive, react, retry
type Supervisor struct {
	endpoint       core.Endpoint
	readBufferSize int
	idleTimeout    time.Duration
	retryDelay     time.Duration
	framing        sse.Framing
	dial           dialFunc

	filters *filter.Chain
	sinks   []sink.Sink
	logger  *log.Logger

	startTime time.Time

	// Statistics
	totalAttempts   atomic.Uint64
	totalConnects   atomic.Uint64
	totalFailures   atomic.Uint64
	totalRecords    atomic.Uint64
	totalKeepalives atomic.Uint64
	totalIgnored    atomic.Uint64
	totalFiltered   atomic.Uint64
	totalDropped    atomic.Uint64
	connected       atomic.Bool
	lastError       atomic.Value // string
	lastEvent       atomic.Value // time.Time
}

// New creates a supervisor for endpoint. Records that pass filters are
// published to every sink; a nil chain passes everything.
func New(cfg *config.ClientConfig, endpoint core.Endpoint, filters *filter.Chain, logger *log.Logger, sinks ...sink.Sink) (*Supervisor, error) {
	if cfg == nil {
		return nil, fmt.Errorf("client config cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	framing, err := sse.ParseFraming(cfg.Framing)
	if err != nil {
		return nil, err
	}

	readBufferSize := int(cfg.ReadBufferSize)
	if readBufferSize < 1 {
		readBufferSize = core.DefaultReadBufferSize
	}
	idleTimeout := time.Duration(cfg.IdleTimeoutMS) * time.Millisecond
	if idleTimeout <= 0 {
		idleTimeout = core.DefaultIdleTimeout
	}
	retryDelay := time.Duration(cfg.RetryDelayMS) * time.Millisecond
	if retryDelay <= 0 {
		retryDelay = core.DefaultRetryDelay
	}

	dialer := &net.Dialer{
		Timeout:   time.Duration(cfg.DialTimeoutMS) * time.Millisecond,
		KeepAlive: time.Duration(cfg.KeepAliveMS) * time.Millisecond,
	}

	s := &Supervisor{
		endpoint:       endpoint,
		readBufferSize: readBufferSize,
		idleTimeout:    idleTimeout,
		retryDelay:     retryDelay,
		framing:        framing,
		dial:           dialer.DialContext,
		filters:        filters,
		sinks:          sinks,
		logger:         logger,
		startTime:      time.Now(),
	}
	s.lastError.Store("")
	s.lastEvent.Store(time.Time{})

	return s, nil
}

// Run drives connection cycles until ctx is cancelled. Every cycle failure
// is logged and retried after the fixed delay; Run itself never fails.
func (s *Supervisor) Run(ctx context.Context) error {
	address := s.endpoint.Address()

	s.logger.Debug("msg", "Connecting to "+address,
		"component", "client",
		"path", s.endpoint.Path,
		"framing", s.framing,
		"idle_timeout", s.idleTimeout,
		"retry_delay", s.retryDelay)

	for {
		err := s.cycle(ctx)
		if ctx.Err() != nil {
			s.logger.Info("msg", "Client stopped",
				"component", "client",
				"address", address)
			return nil
		}

		s.totalFailures.Add(1)
		s.lastError.Store(err.Error())

		message := "Unexpected error"
		if isConnectionError(err) {
			message = "Connection error"
		}
		s.logger.Error("msg", message,
			"component", "client",
			"address", address,
			"error", err,
			"retry_delay", s.retryDelay)

		timer := time.NewTimer(s.retryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("msg", "Client stopped",
				"component", "client",
				"address", address)
			return nil
		case <-timer.C:
		}

		s.logger.Debug("msg", "Retrying connection",
			"component", "client",
			"address", address,
			"attempt", s.totalAttempts.Load()+1)
	}
}

// cycle runs one connection from dial to failure. It always returns a non-nil error.
func (s *Supervisor) cycle(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrUnexpected, r)
		}
	}()

	s.totalAttempts.Add(1)

	conn, err := s.dial(ctx, "tcp", s.endpoint.Address())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrConnect, err)
	}
	defer conn.Close()

	// Unblock the pending read on shutdown
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if _, err := conn.Write(s.endpoint.Request()); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	s.totalConnects.Add(1)
	s.connected.Store(true)
	defer s.connected.Store(false)

	s.logger.Info("msg", "Connected to log server",
		"component", "client",
		"address", s.endpoint.Address(),
		"path", s.endpoint.Path,
		"local_addr", conn.LocalAddr())

	parser := sse.NewParser(s.framing)
	buf := make([]byte, s.readBufferSize)

	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
			return fmt.Errorf("%w: %w", ErrRead, err)
		}

		n, readErr := conn.Read(buf)
		if n > 0 {
			events, parseErr := parser.Feed(buf[:n])
			for _, ev := range events {
				s.react(ev)
			}
			if parseErr != nil {
				return parseErr
			}
		}

		if readErr != nil {
			if ctx.Err() == nil {
				if ev, ok := parser.Flush(); ok {
					s.react(ev)
				}
			}

			sentinel := classifyReadError(readErr)
			if sentinel == ErrIdleTimeout {
				return fmt.Errorf("%w: no data for %s: %w", sentinel, s.idleTimeout, readErr)
			}
			return fmt.Errorf("%w: %w", sentinel, readErr)
		}
	}
}

// react classifies one event and forwards log lines
func (s *Supervisor) react(ev sse.Event) {
	if ev.Empty() {
		return
	}
	s.lastEvent.Store(time.Now())

	switch {
	case ev.Type == core.EventKeepalive:
		s.totalKeepalives.Add(1)
		s.logger.Debug("msg", "Keepalive received",
			"component", "client",
			"data", ev.Data)

	case ev.Type == core.EventLogLine && ev.HasData:
		message := sse.Sanitize(ev.Data)
		if message == "" {
			s.totalIgnored.Add(1)
			s.logger.Debug("msg", "Empty log line ignored",
				"component", "client")
			return
		}

		record := core.LogRecord{
			Time:    time.Now(),
			Source:  s.endpoint.Address(),
			Event:   ev.Type,
			Message: message,
			RawSize: int64(len(ev.Data)),
		}
		if !s.filters.Apply(record) {
			s.totalFiltered.Add(1)
			return
		}

		s.totalRecords.Add(1)
		s.logger.Info("msg", "Log line forwarded",
			"component", "client",
			"size", record.RawSize)
		s.publish(record)

	default:
		s.totalIgnored.Add(1)
		s.logger.Debug("msg", "Event ignored",
			"component", "client",
			"event", ev.Type,
			"has_data", ev.HasData)
	}
}

// publish hands record to every sink without blocking the receive loop
func (s *Supervisor) publish(record core.LogRecord) {
	for i, sk := range s.sinks {
		select {
		case sk.Input() <- record:
		default:
			s.totalDropped.Add(1)
			s.logger.Debug("msg", "Dropped record for full sink",
				"component", "client",
				"sink_index", i,
				"sink_type", sk.GetStats().Type)
		}
	}
}

// GetStats returns supervisor statistics
func (s *Supervisor) GetStats() map[string]any {
	lastError, _ := s.lastError.Load().(string)
	lastEvent, _ := s.lastEvent.Load().(time.Time)

	return map[string]any{
		"address":          s.endpoint.Address(),
		"path":             s.endpoint.Path,
		"framing":          string(s.framing),
		"connected":        s.connected.Load(),
		"uptime_seconds":   int(time.Since(s.startTime).Seconds()),
		"total_attempts":   s.totalAttempts.Load(),
		"total_connects":   s.totalConnects.Load(),
		"total_failures":   s.totalFailures.Load(),
		"total_records":    s.totalRecords.Load(),
		"total_keepalives": s.totalKeepalives.Load(),
		"total_ignored":    s.totalIgnored.Load(),
		"total_filtered":   s.totalFiltered.Load(),
		"total_dropped":    s.totalDropped.Load(),
		"last_error":       lastError,
		"last_event":       lastEvent,
	}
}

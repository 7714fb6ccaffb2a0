// FILE: ssetail/src/internal/emitter/server.go

// Package emitter is a small SSE log server speaking the same wire format
// as the devices ssetail subscribes to. It is used for local testing and
// for re-broadcasting any line-oriented log over the network.
package emitter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"ssetail/src/internal/config"
	"ssetail/src/internal/core"
	"ssetail/src/internal/version"

	"github.com/lixenwraith/log"
	"github.com/lixenwraith/log/compat"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

// Server streams published lines to every connected SSE client
type Server struct {
	// Configuration reference (NOT a copy)
	config *config.EmitterConfig

	// Runtime
	input          chan []byte
	server         *fasthttp.Server
	listener       net.Listener
	limiter        *rate.Limiter
	keepaliveEvery time.Duration
	activeClients  atomic.Int64
	startTime      time.Time
	done           chan struct{}
	stopOnce       sync.Once
	wg             sync.WaitGroup
	logger         *log.Logger

	// Broker architecture
	clients      map[uint64]chan []byte
	clientsMu    sync.RWMutex
	unregister   chan uint64
	nextClientID atomic.Uint64

	// Statistics
	totalPublished   atomic.Uint64
	totalRateLimited atomic.Uint64
	totalDropped     atomic.Uint64
	totalKeepalives  atomic.Uint64
	lastPublished    atomic.Value // time.Time
}

// NewServer creates an emitter; Start binds the listener
func NewServer(cfg *config.EmitterConfig, logger *log.Logger) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("emitter config cannot be nil")
	}

	bufferSize := cfg.BufferSize
	if bufferSize < 1 {
		bufferSize = core.DefaultSinkBufferSize
	}

	s := &Server{
		config:         cfg,
		input:          make(chan []byte, bufferSize),
		keepaliveEvery: time.Duration(cfg.KeepaliveSeconds) * time.Second,
		startTime:      time.Now(),
		done:           make(chan struct{}),
		logger:         logger,
		clients:        make(map[uint64]chan []byte),
		unregister:     make(chan uint64),
	}
	s.lastPublished.Store(time.Time{})

	if cfg.MaxLinesPerSecond > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.MaxLinesPerSecond), int(cfg.Burst))
		logger.Info("msg", "Line rate limiting enabled",
			"component", "emitter",
			"lines_per_second", cfg.MaxLinesPerSecond,
			"burst", cfg.Burst)
	}

	return s, nil
}

// Start binds the listener and serves until ctx is cancelled or Stop is called
func (s *Server) Start(ctx context.Context) error {
	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = ln

	s.wg.Add(1)
	go s.brokerLoop(ctx)

	s.server = &fasthttp.Server{
		Name:             fmt.Sprintf("sse-emitter/%s", version.Short()),
		Handler:          s.requestHandler,
		DisableKeepalive: false,
		Logger:           compat.NewFastHTTPAdapter(s.logger),
		ReadTimeout:      time.Duration(s.config.ReadTimeoutMS) * time.Millisecond,
	}

	go func() {
		s.logger.Info("msg", "SSE emitter started",
			"component", "emitter",
			"listen", ln.Addr().String(),
			"stream_path", s.config.StreamPath,
			"status_path", s.config.StatusPath,
			"keepalive", s.keepaliveEvery)

		if err := s.server.Serve(ln); err != nil {
			s.logger.Error("msg", "SSE emitter server failed",
				"component", "emitter",
				"error", err)
		}
	}()

	// Monitor context for shutdown signal
	go func() {
		select {
		case <-ctx.Done():
			s.Stop()
		case <-s.done:
		}
	}()

	return nil
}

// Addr returns the bound listener address, nil before Start
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop disconnects all clients and shuts the HTTP server down
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("msg", "Stopping SSE emitter", "component", "emitter")

		// Signal all client handlers to stop. Closing under the lock orders
		// every client registration before the wait below.
		s.clientsMu.Lock()
		close(s.done)
		s.clientsMu.Unlock()

		if s.server != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := s.server.ShutdownWithContext(ctx); err != nil {
				s.logger.Warn("msg", "SSE emitter shutdown incomplete",
					"component", "emitter",
					"error", err)
			}
		}

		// Wait for broker and client handlers
		s.wg.Wait()

		s.clientsMu.Lock()
		for id, ch := range s.clients {
			close(ch)
			delete(s.clients, id)
		}
		s.clientsMu.Unlock()

		s.logger.Info("msg", "SSE emitter stopped",
			"component", "emitter",
			"total_published", s.totalPublished.Load())
	})
}

// Publish queues one log line for broadcast. It returns false when the
// line was dropped by the rate limiter or a full queue.
func (s *Server) Publish(line string) bool {
	if s.limiter != nil && !s.limiter.Allow() {
		s.totalRateLimited.Add(1)
		return false
	}

	select {
	case s.input <- logLineFrame(line):
		return true
	default:
		s.totalDropped.Add(1)
		s.logger.Debug("msg", "Dropped line, broadcast queue full",
			"component", "emitter")
		return false
	}
}

// logLineFrame renders a line as a single-data-field event.
// Embedded line breaks would split the frame, so they become spaces.
func logLineFrame(line string) []byte {
	line = strings.TrimRight(line, "\r\n")
	line = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(line)
	return fmt.Appendf(nil, "event: %s\ndata: %s\n\n", core.EventLogLine, line)
}

func keepaliveFrame(uptime time.Duration) []byte {
	return fmt.Appendf(nil, "event: %s\ndata: %d\n\n", core.EventKeepalive, uptime.Milliseconds())
}

// Broadcasts only to active clients
func (s *Server) brokerLoop(ctx context.Context) {
	defer s.wg.Done()

	var tickerChan <-chan time.Time
	if s.keepaliveEvery > 0 {
		ticker := time.NewTicker(s.keepaliveEvery)
		tickerChan = ticker.C
		defer ticker.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.done:
			return

		case clientID := <-s.unregister:
			// Broker owns channel cleanup
			s.clientsMu.Lock()
			if clientChan, exists := s.clients[clientID]; exists {
				delete(s.clients, clientID)
				close(clientChan)
				s.logger.Debug("msg", "Unregistered client",
					"component", "emitter",
					"client_id", clientID)
			}
			s.clientsMu.Unlock()

		case frame := <-s.input:
			s.totalPublished.Add(1)
			s.lastPublished.Store(time.Now())
			// With no clients connected the line is discarded
			s.broadcast(frame)

		case <-tickerChan:
			s.totalKeepalives.Add(1)
			s.broadcast(keepaliveFrame(time.Since(s.startTime)))
		}
	}
}

func (s *Server) broadcast(frame []byte) {
	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()

	slowClients := 0
	for id, ch := range s.clients {
		select {
		case ch <- frame:
		default:
			slowClients++
			if slowClients == 1 { // Log only once per broadcast
				s.logger.Debug("msg", "Dropped frame for slow client(s)",
					"component", "emitter",
					"client_id", id,
					"total_clients", len(s.clients))
			}
		}
	}
}

func (s *Server) requestHandler(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == s.config.StatusPath:
		s.handleStatus(ctx)
	case path == s.config.StreamPath && ctx.IsGet():
		s.handleStream(ctx)
	case path == s.config.StreamPath:
		ctx.SetStatusCode(fasthttp.StatusMethodNotAllowed)
		ctx.Response.Header.Set("Allow", fasthttp.MethodGet)
	default:
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetContentType("application/json")
		json.NewEncoder(ctx).Encode(map[string]any{
			"error": "Not Found",
		})
	}
}

func (s *Server) handleStream(ctx *fasthttp.RequestCtx) {
	// Register new client with broker
	clientID := s.nextClientID.Add(1)
	clientChan := make(chan []byte, cap(s.input))

	s.clientsMu.Lock()
	select {
	case <-s.done:
		s.clientsMu.Unlock()
		ctx.SetStatusCode(fasthttp.StatusServiceUnavailable)
		return
	default:
	}
	s.clients[clientID] = clientChan
	s.wg.Add(1)
	s.clientsMu.Unlock()

	remoteAddr := ctx.RemoteAddr().String()

	// Set SSE headers
	ctx.Response.Header.Set("Content-Type", "text/event-stream")
	ctx.Response.Header.Set("Cache-Control", "no-cache")
	ctx.Response.Header.Set("Connection", "keep-alive")
	ctx.Response.Header.Set("Access-Control-Allow-Origin", "*")
	ctx.Response.Header.Set("X-Accel-Buffering", "no")

	streamFunc := func(w *bufio.Writer) {
		connectCount := s.activeClients.Add(1)
		s.logger.Info("msg", "SSE client connected",
			"component", "emitter",
			"remote_addr", remoteAddr,
			"client_id", clientID,
			"active_clients", connectCount)

		defer func() {
			disconnectCount := s.activeClients.Add(-1)
			s.logger.Info("msg", "SSE client disconnected",
				"component", "emitter",
				"remote_addr", remoteAddr,
				"client_id", clientID,
				"active_clients", disconnectCount)

			// Signal broker to cleanup this client's channel
			select {
			case s.unregister <- clientID:
			case <-s.done:
			}
			s.wg.Done()
		}()

		// Push headers out before the first event
		if err := w.Flush(); err != nil {
			return
		}

		for {
			select {
			case frame, ok := <-clientChan:
				if !ok {
					return
				}
				if _, err := w.Write(frame); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					// Client disconnected
					return
				}
			case <-s.done:
				return
			}
		}
	}

	ctx.SetBodyStreamWriter(streamFunc)
}

func (s *Server) handleStatus(ctx *fasthttp.RequestCtx) {
	ctx.SetContentType("application/json")

	data, _ := json.Marshal(s.GetStats())
	ctx.SetBody(data)
}

// GetStats returns emitter statistics, also served on the status path
func (s *Server) GetStats() map[string]any {
	lastPublished, _ := s.lastPublished.Load().(time.Time)

	return map[string]any{
		"service": "sse-emitter",
		"version": version.Short(),
		"server": map[string]any{
			"port":           s.config.Port,
			"active_clients": s.activeClients.Load(),
			"buffer_size":    cap(s.input),
			"uptime_seconds": int(time.Since(s.startTime).Seconds()),
		},
		"endpoints": map[string]string{
			"stream": s.config.StreamPath,
			"status": s.config.StatusPath,
		},
		"features": map[string]any{
			"keepalive_seconds":    s.keepaliveEvery.Seconds(),
			"max_lines_per_second": s.config.MaxLinesPerSecond,
		},
		"statistics": map[string]any{
			"total_published":    s.totalPublished.Load(),
			"total_rate_limited": s.totalRateLimited.Load(),
			"total_dropped":      s.totalDropped.Load(),
			"total_keepalives":   s.totalKeepalives.Load(),
			"last_published":     lastPublished,
		},
	}
}

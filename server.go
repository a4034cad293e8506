package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/scopeworks/wavescope/internal/audio"
	"github.com/scopeworks/wavescope/internal/config"
	"github.com/scopeworks/wavescope/internal/server"
	"github.com/scopeworks/wavescope/internal/types"
)

// Server is an HTTP server exposing the visualizer's status and live audio
// levels for local diagnostics.
type Server struct {
	config    *config.Config
	capture   *audio.Capture
	monitor   *audio.LevelMonitor
	version   *VersionChecker
	fps       *atomic.Int64
	startTime time.Time
}

// NewServer returns a new Server reporting on the given capture and monitor.
func NewServer(cfg *config.Config, capture *audio.Capture, monitor *audio.LevelMonitor, fps *atomic.Int64) *Server {
	return &Server{
		config:    cfg,
		capture:   capture,
		monitor:   monitor,
		version:   NewVersionChecker(),
		fps:       fps,
		startTime: time.Now(),
	}
}

// handleStatus serves the current status as JSON.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.buildStatus(""))
}

// handleLevels serves the current audio levels as JSON.
func (s *Server) handleLevels(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.writeJSON(w, http.StatusOK, s.monitor.AudioLevels())
}

// handleDevices serves the available input devices as JSON.
func (s *Server) handleDevices(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	devices, err := audio.Devices()
	if err != nil {
		slog.Error("device listing failed", "error", err)
		http.Error(w, "device listing failed", http.StatusInternalServerError)
		return
	}
	s.writeJSON(w, http.StatusOK, devices)
}

// writeJSON writes v as a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Debug("response write failed", "error", err)
	}
}

// handleWebSocket streams live levels and periodic status to a client.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.UpgradeConnection(w, r)
	if err != nil {
		slog.Error("WebSocket upgrade failed", "error", err)
		return
	}

	// Only the writer goroutine writes to the connection; the event loop
	// feeds it through the send channel.
	send := make(chan any, 16)
	done := make(chan struct{})

	go s.runWebSocketWriter(conn, send)
	go s.runWebSocketReader(conn, done)

	s.runWebSocketEventLoop(send, done)
}

// runWebSocketWriter writes messages from the send channel to the connection.
func (s *Server) runWebSocketWriter(conn server.WebSocketConn, send <-chan any) {
	defer func() {
		if err := conn.Close(); err != nil {
			slog.Debug("WebSocket close error", "error", err)
		}
	}()
	for msg := range send {
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// runWebSocketReader drains the connection and signals when it closes. The
// status stream is one-way; inbound messages are discarded.
func (s *Server) runWebSocketReader(conn server.WebSocketConn, done chan<- struct{}) {
	defer close(done)
	for {
		var discard json.RawMessage
		if err := conn.ReadJSON(&discard); err != nil {
			return
		}
	}
}

// runWebSocketEventLoop pushes periodic level and status updates.
func (s *Server) runWebSocketEventLoop(send chan any, done <-chan struct{}) {
	levelsTicker := time.NewTicker(100 * time.Millisecond) // 10 fps for the level readout
	statusTicker := time.NewTicker(3000 * time.Millisecond)
	defer levelsTicker.Stop()
	defer statusTicker.Stop()

	// trySend attempts to send a message, returning false if done is closed
	trySend := func(msg any) bool {
		select {
		case send <- msg:
			return true
		case <-done:
			return false
		}
	}

	// Send initial status
	if !trySend(s.buildStatus("status")) {
		close(send)
		return
	}

	for {
		select {
		case <-done:
			close(send)
			return
		case <-levelsTicker.C:
			if !trySend(types.WSLevelsResponse{Type: "levels", Levels: s.monitor.AudioLevels()}) {
				close(send)
				return
			}
		case <-statusTicker.C:
			if !trySend(s.buildStatus("status")) {
				close(send)
				return
			}
		}
	}
}

// buildStatus returns the current status response.
func (s *Server) buildStatus(msgType string) types.StatusResponse {
	cfg := s.config.Snapshot()

	return types.StatusResponse{
		Type:           msgType,
		CaptureState:   s.capture.State().String(),
		SampleRate:     cfg.SampleRate,
		BufferedFrames: s.capture.Buffered(),
		Uptime:         time.Since(s.startTime).Truncate(time.Second).String(),
		FPS:            int(s.fps.Load()),
		Version:        s.version.Info(),
	}
}

// SetupRoutes returns an [http.Handler] configured with all routes.
func (s *Server) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/levels", s.handleLevels)
	mux.HandleFunc("/api/devices", s.handleDevices)
	mux.HandleFunc("/ws", s.handleWebSocket)

	return securityHeaders(mux)
}

// securityHeaders returns middleware that wraps handlers with security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

// Start launches the HTTP server in the background and returns it so the
// caller can shut it down.
func (s *Server) Start() *http.Server {
	addr := fmt.Sprintf(":%d", s.config.Snapshot().ServerPort)
	slog.Info("starting status server", "addr", addr)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.SetupRoutes(),
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	return srv
}

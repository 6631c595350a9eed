// Package server exposes the daemon's HTTP API: the gesture catalog,
// the action log, operating mode control, the MJPEG preview stream,
// and the action event WebSocket.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/PiotrUrb/gesture-recognition-system/internal/capture"
	"github.com/PiotrUrb/gesture-recognition-system/internal/server/api"
	"github.com/PiotrUrb/gesture-recognition-system/internal/store"
)

// Config holds the server dependencies. Nil fields disable the routes
// that depend on them.
type Config struct {
	Store  *store.Store
	Camera capture.Source
	Modes  api.ModeController
	Events *EventHub
}

// Server is the daemon's HTTP front end.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a Server and wires its routes.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	if s.config.Store != nil {
		gestureHandler := api.NewGestureHandler(s.config.Store)
		s.mux.Handle("/api/gestures", gestureHandler)
		s.mux.Handle("/api/gestures/", gestureHandler)

		s.mux.Handle("/api/logs", api.NewLogsHandler(s.config.Store))
	}

	if s.config.Modes != nil {
		s.mux.Handle("/api/mode", api.NewModeHandler(s.config.Modes, s.config.Store))
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	if s.config.Events != nil {
		s.mux.Handle("/api/events", s.config.Events)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := map[string]interface{}{
		"status": "ok",
		"uptime": time.Since(s.start).String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}

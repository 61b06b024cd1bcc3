// Package server provides the HTTP surface of the installation: the song
// and performance API, live control, the MJPEG camera monitor, and the
// stage WebSocket feed.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/veena/internal/capture"
	"github.com/ayusman/veena/internal/server/api"
	"github.com/ayusman/veena/internal/store"
)

// Config holds the server configuration.
type Config struct {
	StaticDir  string
	Store      *store.Store
	Camera     capture.Camera
	Controller api.Controller
	Stage      *StageHandler
}

// Server represents the HTTP server for the installation.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register library API handlers if Store is configured
	if s.config.Store != nil {
		songHandler := api.NewSongHandler(s.config.Store)
		s.mux.Handle("/api/songs", songHandler)
		s.mux.Handle("/api/songs/", songHandler)

		s.mux.Handle("/api/performances", api.NewPerformanceHandler(s.config.Store))
	}

	// Register control endpoints if a Controller is configured
	if s.config.Controller != nil {
		controlHandler := api.NewControlHandler(s.config.Controller)
		s.mux.Handle("/api/control", controlHandler)
		s.mux.Handle("/api/status", controlHandler)
	}

	// Register camera monitor endpoint if Camera is configured
	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

	// Register stage WebSocket endpoint if a stage feed is configured
	if s.config.Stage != nil {
		s.mux.Handle("/api/stage", s.config.Stage)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
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

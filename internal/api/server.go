package api

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// Defaults applied by NewServer when a Config field is zero.
const (
	DefaultReadTimeout  = 30 * time.Second
	DefaultWriteTimeout = 30 * time.Second
)

// Config holds the HTTP listener settings.
type Config struct {
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// Server represents the HTTP server for the scheduling API.
type Server struct {
	mux        *http.ServeMux
	httpServer *http.Server
	logger     *slog.Logger
}

// NewServer creates a new Server instance.
func NewServer(cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = DefaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = DefaultWriteTimeout
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/projects/{projectId}/schedule", handleSchedule)
	mux.HandleFunc("GET /health", handleHealth)

	handler := withRequestLogging(logger, withRecovery(withCORS(cfg.AllowedOrigins, mux)))

	return &Server{
		mux:    mux,
		logger: logger,
		httpServer: &http.Server{
			Addr:         cfg.Addr,
			Handler:      handler,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// Mount registers an additional handler, such as the socket.io endpoint.
// It must be called before Start.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.mux.Handle(pattern, h)
}

// Handler returns the fully wrapped root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Start starts the HTTP server.
// Blocks until the server is stopped or an error occurs.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Serve accepts connections on l. Blocks like Start.
func (s *Server) Serve(l net.Listener) error {
	return s.httpServer.Serve(l)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/heimdex/shotmanager/internal/session"
	"github.com/heimdex/shotmanager/internal/store"
)

// ServerConfig carries what the handlers need. Repository holds the auth
// token; Session owns the timeline.
type ServerConfig struct {
	Port       int
	Session    *session.Session
	Repository store.Repository
	Logger     *slog.Logger
	StartTime  time.Time
	Version    string
	InstanceID string
}

// Server serves the API on the loopback interface only.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	logger     *slog.Logger
}

func NewServer(cfg ServerConfig) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              net.JoinHostPort("127.0.0.1", fmt.Sprint(cfg.Port)),
			Handler:           NewRouter(cfg),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		logger: cfg.Logger,
	}
}

// Listen binds the server address so that a busy port fails before
// anything else starts. Port 0 picks a free port.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpServer.Addr, err)
	}
	s.listener = ln
	return nil
}

// Start serves until Shutdown. It binds first when Listen was not called.
func (s *Server) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	s.logger.Info("starting HTTP server", "addr", s.Addr())
	if err := s.httpServer.Serve(s.listener); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

// Addr is the bound address once listening, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.httpServer.Addr
}

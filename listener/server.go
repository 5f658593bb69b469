package listener

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/0xalexb/hjarta-kv/listener/middleware"
)

// ReadHeaderTimeout is the default timeout for reading request headers.
const ReadHeaderTimeout = 10 * time.Second

// Server serves one named document API endpoint.
type Server struct {
	name       string
	config     Config
	logger     *slog.Logger
	server     *http.Server
	listener   net.Listener
	onServeErr func()
}

// NewServer validates cfg and prepares an http.Server serving handler behind middleware.Chain.
// A nil logger means slog.Default().
// onServeErr, if non-nil, is called when serving stops with an error other than http.ErrServerClosed.
func NewServer(name string, handler http.Handler, cfg Config, logger *slog.Logger, onServeErr func()) (*Server, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	if handler == nil {
		return nil, ErrNilHandler
	}

	cfg.SetDefaults()

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("listener", name))

	return &Server{
		name:   name,
		config: cfg,
		logger: logger,
		server: &http.Server{ //nolint:exhaustruct // only relevant fields needed
			Addr:              cfg.Address,
			Handler:           middleware.Chain(handler, logger, middleware.Limits{
				MaxBodyBytes:      cfg.MaxBodyBytes,
				RequestsPerSecond: cfg.RateLimit,
				Burst:             cfg.Burst,
			}),
			ReadHeaderTimeout: ReadHeaderTimeout,
			ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		},
		listener:   nil,
		onServeErr: onServeErr,
	}, nil
}

// Addr returns the bound address once started, or the configured address before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}

	return s.config.Address
}

// Start binds the configured address and serves in a background goroutine.
func (s *Server) Start(ctx context.Context) error {
	listenCfg := net.ListenConfig{} //nolint:exhaustruct // zero-value defaults are fine

	listener, err := listenCfg.Listen(ctx, "tcp", s.config.Address)
	if err != nil {
		s.logger.Error("failed to listen", "address", s.config.Address, "error", err)

		return fmt.Errorf("%w: %w", ErrListenFailed, err)
	}

	s.listener = listener

	s.logger.Info("serving documents", "address", s.Addr(), "max_body_bytes", s.config.MaxBodyBytes)

	go func() {
		serveErr := s.server.Serve(listener)
		if serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			s.logger.Error("HTTP listener error", "error", serveErr)

			if s.onServeErr != nil {
				s.onServeErr()
			}
		}
	}()

	return nil
}

// Stop waits for in-flight requests to finish, bounded by ctx.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping HTTP listener", "address", s.Addr())

	err := s.server.Shutdown(ctx)
	if err != nil {
		s.logger.Error("shutdown failed", "error", err)

		return fmt.Errorf("%w: %w", ErrShutdownFailed, err)
	}

	return nil
}

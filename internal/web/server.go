package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"syscall"
	"time"
)

const (
	DefaultPort            = 8000
	DefaultShutdownTimeout = 5 * time.Second
)

// Server serves a handler over HTTP until its context is canceled.
type Server struct {
	host            string
	port            int
	handler         http.Handler
	shutdownTimeout time.Duration

	addr  net.Addr
	ready chan struct{}
}

// NewServer creates a server for handler on DefaultPort across all interfaces.
func NewServer(handler http.Handler, opts ...ServerOpt) *Server {
	s := &Server{
		port:            DefaultPort,
		handler:         handler,
		shutdownTimeout: DefaultShutdownTimeout,
		ready:           make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start listens and serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", net.JoinHostPort(s.host, strconv.Itoa(s.port)))
	if err != nil {
		if errors.Is(err, syscall.EADDRINUSE) {
			return fmt.Errorf("port %d is already in use (another server running?)", s.port)
		}
		return fmt.Errorf("listening on port %d: %w", s.port, err)
	}

	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.addr = listener.Addr()
	close(s.ready)
	slog.InfoContext(ctx, "listening for http", "addr", s.addr.String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving http: %w", err)
	case <-ctx.Done():
	}

	// The parent context is already done, shut down on a fresh one.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	slog.InfoContext(ctx, "http server stopped")

	return nil
}

// Ready is closed once the server is listening.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Port returns the configured port.
func (s *Server) Port() int {
	return s.port
}

// Addr returns the bound address. Only valid after Ready is closed.
func (s *Server) Addr() net.Addr {
	return s.addr
}

package web

import "time"

type ServerOpt func(*Server)

// WithHost sets the interface to bind. Empty binds all interfaces.
func WithHost(host string) ServerOpt {
	return func(s *Server) {
		s.host = host
	}
}

// WithPort sets the port to bind. Zero picks a free port.
func WithPort(port int) ServerOpt {
	return func(s *Server) {
		s.port = port
	}
}

// WithShutdownTimeout bounds how long in-flight requests get on shutdown.
func WithShutdownTimeout(d time.Duration) ServerOpt {
	return func(s *Server) {
		s.shutdownTimeout = d
	}
}

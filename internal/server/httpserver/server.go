// Package httpserver is the HTTP surface of the greeter: routing, request
// parameter extraction, JSON responses, and the middleware chain.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/greeter/internal/logging"
	"github.com/dmitrijs2005/greeter/internal/server/services"
)

const (
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 10 * time.Second
)

type HTTPServer struct {
	address           string
	users             *services.UserService
	logger            logging.Logger
	readHeaderTimeout time.Duration
	shutdownTimeout   time.Duration
}

// Option customises an HTTPServer.
type Option func(*HTTPServer)

func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *HTTPServer) {
		if d > 0 {
			s.readHeaderTimeout = d
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *HTTPServer) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

func NewHTTPServer(a string, l logging.Logger, us *services.UserService, opts ...Option) *HTTPServer {
	s := &HTTPServer{
		address:           a,
		logger:            l.With("module", "http_server"),
		users:             us,
		readHeaderTimeout: defaultReadHeaderTimeout,
		shutdownTimeout:   defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /users", s.listUsers)
	mux.HandleFunc("POST /users", s.registerUser)
	mux.HandleFunc("PUT /users/{id}", s.updateUser)
	mux.HandleFunc("DELETE /users/{id}", s.deleteUser)
	mux.HandleFunc("GET /ping", s.ping)
	mux.HandleFunc("GET /openapi.json", s.openAPI)

	return s.requestID(s.accessLog(s.recoverer(mux)))
}

// Run serves until ctx is cancelled, then shuts down gracefully, giving
// in-flight requests up to the shutdown timeout to finish.
func (s *HTTPServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: s.readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	stopped := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		stopped <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-stopped
}

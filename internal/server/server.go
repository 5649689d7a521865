package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/go-acme-cse/internal/handler"
	"github.com/MKhiriev/go-acme-cse/internal/logger"
)

type server struct {
	httpServer *httpServer
	logger     *logger.Logger
}

// NewServer serves the handler present in handlers on address. A zero
// timeout leaves the server without read and write deadlines.
func NewServer(handlers *handler.Handlers, address string, timeout time.Duration, logger *logger.Logger) (Server, error) {
	logger.Info().Str("address", address).Msg("creating new server...")

	var router http.Handler
	switch {
	case handlers == nil || address == "":
	case handlers.HTTP != nil:
		router = handlers.HTTP.Init()
	case handlers.Scheduler != nil:
		router = handlers.Scheduler.Init()
	}
	if router == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(router, address, timeout, logger),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() error {
	if err := s.run(); err != nil {
		s.logger.Error().Err(err).Msg("error running server")
		return err
	}
	return nil
}

func (s *server) Shutdown() {
	if s.httpServer != nil {
		s.httpServer.Shutdown()
	}
}

func (s *server) run() error {
	if s.httpServer == nil {
		return errors.New("no servers to run")
	}

	idleConnectionsClosed := make(chan struct{})
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	// listen for stop signals
	go func() {
		<-ctx.Done()

		s.Shutdown()

		close(idleConnectionsClosed)
	}()

	s.logger.Info().Str("address", s.httpServer.server.Addr).Msg("Launching HTTP server")
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.RunServer()
	}()

	select {
	case err := <-serveErr:
		// the listener failed: release the signal goroutine and report
		stop()
		<-idleConnectionsClosed
		if err != nil {
			return fmt.Errorf("HTTP server on %s: %w", s.httpServer.server.Addr, err)
		}
	case <-idleConnectionsClosed:
	}
	s.logger.Info().Msg("server Shutdown gracefully")

	return nil
}

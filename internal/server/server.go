package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"golang.org/x/sync/errgroup"
)

// Server is a static file server rooted at a single directory.
type Server struct {
	root    string
	logger  *slog.Logger
	handler http.Handler
}

// New returns a Server for root that logs through logger.
func New(root string, logger *slog.Logger) *Server {
	return &Server{
		root:    root,
		logger:  logger,
		handler: logRequests(logger, http.FileServer(http.Dir(root))),
	}
}

// Handler returns the request handler, including request logging.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Serve accepts connections on ln until ctx is cancelled or the listener
// fails. Cancellation closes the server and every open connection at once;
// in-flight requests are dropped. The listener is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:  s.handler,
		ErrorLog: slog.NewLogLogger(s.logger.Handler(), slog.LevelError),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Debug("Accept loop started.", "address", ln.Addr().String(), "root", s.root)
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Debug("Closing server.")
		return httpServer.Close()
	})

	err := g.Wait()
	// Close is idempotent; this covers a Serve that failed before starting.
	_ = ln.Close()
	return err
}

// ListenAndServe binds addr and serves until ctx is cancelled. A bind
// failure is returned immediately.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := Listen(ctx, addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/glovebox/glovebox/backend/go-services/pkg/logger"
)

// ShutdownGrace bounds how long in-flight requests may run once shutdown starts.
const ShutdownGrace = 10 * time.Second

// ListenAndServe listens on srv.Addr and serves until ctx is cancelled.
func ListenAndServe(ctx context.Context, srv *http.Server, grace time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, srv, ln, grace)
}

// Serve runs srv on ln. When ctx ends it stops accepting connections and waits
// up to grace for in-flight requests before returning.
func Serve(ctx context.Context, srv *http.Server, ln net.Listener, grace time.Duration) error {
	errc := make(chan error, 1)
	go func() {
		logger.Infof("listening on %s", ln.Addr())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

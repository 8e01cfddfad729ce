package internal

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"
)

// Run starts the HTTP server and blocks until shutdown. It handles SIGINT
// and SIGTERM for graceful shutdown.
//
// Returns nil on clean shutdown, or an error if the server fails to start or
// shutdown hooks fail.
func (a *App) Run() error {
	a.setupRoutes()

	baseCtx := a.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Listen first to get actual address
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return err
	}
	a.listener = ln

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Wait for shutdown signal, Stop() call, or server error
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	case <-a.done:
	}

	a.logger.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), a.shutdownTimeout)
	defer shutdownCancel()

	var errs []error
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	// Hooks close stores and other resources; run them concurrently under
	// the same deadline.
	g, hookCtx := errgroup.WithContext(shutdownCtx)
	for _, hook := range a.shutdownHooks {
		g.Go(func() error {
			if err := hook(hookCtx); err != nil {
				a.logger.Error("shutdown hook failed", slog.Any("error", err))
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		a.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	a.logger.Info("shutdown completed")
	return nil
}

// Stop triggers graceful shutdown programmatically. Useful for tests or when
// shutdown needs to be initiated from code.
func (a *App) Stop() error {
	select {
	case <-a.done:
		// Already closed
	default:
		close(a.done)
	}
	return nil
}

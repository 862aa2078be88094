package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"realestate/app/logging"
	"realestate/app/repositories"
	"realestate/app/routes"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func newServeCommand(o *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the admin API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, o)
		},
	}
	cmd.Flags().StringVar(&o.addr, "addr", "", "listen address (overrides http.addr)")
	cmd.Flags().StringVar(&o.store, "store", "", "store driver: mongo or badger (overrides store.driver)")
	return cmd
}

// runServe serves the API until SIGINT or SIGTERM.
func runServe(cmd *cobra.Command, o *options) error {
	cfg, err := o.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logger, err := o.logger(cmd, cfg)
	if err != nil {
		return err
	}

	b, err := openBackend(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.GetShutdownTimeout())
		defer cancel()
		if err := b.Close(ctx); err != nil {
			logger.Warn().Err(err).Msg("closing store")
		}
	}()

	if b.Mongo != nil {
		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GetConnectTimeout())
		if err := repositories.EnsureIndexes(ctx, b.Mongo); err != nil {
			// The manager reconnects on demand, so startup goes on.
			logger.Warn().Err(err).Msg("ensuring indexes")
		}
		cancel()
	}

	router := routes.SetupRoutes(routes.Dependencies{
		Store:  b.Store,
		Auth:   newAuthenticator(cfg),
		Logger: logging.Component(logger, "http"),
	})

	ln, err := net.Listen("tcp", cfg.HTTP.Addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.HTTP.Addr, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Handler: router, ReadHeaderTimeout: 10 * time.Second}
	logger.Info().
		Str("addr", ln.Addr().String()).
		Str("store", cfg.Store.Driver).
		Str("auth", cfg.Auth.Mode).
		Msg("starting admin API")
	return serve(ctx, srv, ln, cfg.GetShutdownTimeout(), logger)
}

// serve runs srv on ln until ctx is done, then shuts it down gracefully
// within timeout.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, logger zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

package cli

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/opmc/inventory/internal/api"
	"github.com/opmc/inventory/internal/inventory"
	"github.com/opmc/inventory/internal/web"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the web UI and JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = app.cfg.Addr
			}

			closeLog, err := setupLogger(app.cfg.LogPath, false)
			if err != nil {
				return err
			}
			defer closeLog()

			gw, closeGW, err := app.openGateway()
			if err != nil {
				return err
			}
			defer closeGW()

			handler, err := app.handler(gw)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, addr, handler)
		},
	}
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (overrides OPMC_ADDR)")
	return cmd
}

// handler combines the JSON API and the web UI. API routes take priority.
func (app *App) handler(gw inventory.Gateway) (http.Handler, error) {
	exporter, err := app.exporter(gw)
	if err != nil {
		return nil, err
	}

	webRouter, err := web.NewRouter(gw, exporter)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(gw, exporter))
	mux.Handle("/", webRouter)
	return api.LoggingMiddleware(mux), nil
}

// serve runs the server until ctx is cancelled, then shuts down gracefully.
func serve(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server started", "addr", addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		return err
	}
	slog.Info("server stopped")
	return nil
}

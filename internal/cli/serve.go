package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/idilsaglam/tada/internal/server"
	"github.com/idilsaglam/tada/internal/store"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		addr   string
		dbPath string
		token  string
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local /api/todo collection server backed by SQLite",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.ListenAddr
			}
			if dbPath == "" {
				dbPath = app.Config.DBPath
			}
			logger := app.Logger.With().Str("component", "serve").Logger()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			st, err := store.OpenSQLite(ctx, dbPath)
			if err != nil {
				return err
			}
			defer st.Close()
			logger.Info().Str("db", dbPath).Msg("opened database")

			srv := server.New(st, server.Config{Token: token}, app.Logger)
			httpServer := &http.Server{
				Addr:              addr,
				Handler:           srv.Router(),
				ReadHeaderTimeout: 10 * time.Second,
				ReadTimeout:       30 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info().Str("addr", addr).Msg("HTTP server listening")
				if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
				logger.Info().Msg("received shutdown signal")
			case err := <-errCh:
				if err != nil {
					return err
				}
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("HTTP server shutdown error")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :5000)")
	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite file (default from config, todos.sqlite)")
	cmd.Flags().StringVar(&token, "token", os.Getenv("TADA_SERVER_TOKEN"), "require this bearer token on /api routes")
	return cmd
}

package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"board/internal/bootstrap"
	"board/internal/config"
	"board/internal/middleware"
	"board/internal/server"

	"github.com/spf13/cobra"
)

func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := context.Background()
			rt, err := bootstrap.InitRuntime(ctx, cfg, bootstrap.Options{
				ApplySchema: true,
				Cache:       true,
				Events:      true,
			})
			if err != nil {
				return err
			}
			defer func() {
				if err := rt.Close(context.Background()); err != nil {
					middleware.Logger.Error("runtime close failed", slog.String("error", err.Error()))
				}
			}()

			srv, err := server.NewServerWithDeps(cfg, rt.DB, rt.Publisher)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}

			// Build the app before Start runs concurrently with Shutdown.
			srv.App()
			errCh := make(chan error, 1)
			go func() { errCh <- srv.Start() }()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(sigChan)

			select {
			case err := <-errCh:
				return err
			case <-sigChan:
			}

			middleware.Logger.Info("Shutting down server...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

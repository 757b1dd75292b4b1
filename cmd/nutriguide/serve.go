package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/alchemorsel/nutriguide/internal/infrastructure/config"
	"github.com/alchemorsel/nutriguide/internal/infrastructure/container"
	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	RunE: func(cmd *cobra.Command, _ []string) error {
		var cfg *config.Config
		app := fx.New(
			fx.NopLogger,
			container.WithConfigPath(cfgFile),
			container.Module,
			fx.Populate(&cfg),
		)

		ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer cancel()

		if err := app.Start(ctx); err != nil {
			return fmt.Errorf("failed to start application: %w", err)
		}

		select {
		case <-ctx.Done():
		case <-app.Done():
		}

		stopCtx, stopCancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace())
		defer stopCancel()
		return app.Stop(stopCtx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

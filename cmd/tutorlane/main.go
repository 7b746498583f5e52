package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/tutorlane/tutorlane/adapter/api"
	"github.com/tutorlane/tutorlane/internal/app"
	"github.com/tutorlane/tutorlane/internal/shared/infrastructure/migrations"
	"github.com/tutorlane/tutorlane/pkg/config"
	"github.com/tutorlane/tutorlane/pkg/observability"
)

func main() {
	root := &cobra.Command{
		Use:   "tutorlane",
		Short: "Tutorlane session and reschedule lifecycle service",
	}
	root.AddCommand(serveCmd(), migrateCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := observability.LoggerForEnv(cfg.AppEnv, cfg.LogLevel)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			go func() {
				sigCh := make(chan os.Signal, 1)
				signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
				<-sigCh
				cancel()
			}()

			container, err := app.NewContainer(ctx, cfg, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize container: %w", err)
			}
			defer container.Close()

			if cfg.OutboxProcessorEnabled {
				if err := container.OutboxProcessor.Start(ctx); err != nil {
					return fmt.Errorf("failed to start outbox processor: %w", err)
				}
			} else {
				logger.Info("outbox processor disabled, run the worker to publish events")
			}

			reschedule := api.NewRescheduleHandler(api.RescheduleHandlerConfig{
				CreateRequest:        container.CreateRequestHandler,
				ApproveRequest:       container.ApproveRequestHandler,
				RejectRequest:        container.RejectRequestHandler,
				GetRequest:           container.GetRequestHandler,
				ListContractRequests: container.ListContractRequestsHandler,
				Logger:               logger,
			})
			sessions := api.NewSessionHandler(api.SessionHandlerConfig{
				UpdateStatus:         container.UpdateSessionStatusHandler,
				UpdateTutor:          container.UpdateSessionTutorHandler,
				GetSession:           container.GetSessionHandler,
				ListContractSessions: container.ListContractSessionsHandler,
				Logger:               logger,
			})

			serverCfg := api.DefaultServerConfig()
			serverCfg.Addr = cfg.HTTPAddr
			server := api.NewServer(serverCfg, reschedule, sessions, container.Health, logger)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger := observability.LoggerForEnv(cfg.AppEnv, cfg.LogLevel)

			ctx := cmd.Context()
			pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer pool.Close()

			migrator, err := migrations.NewMigrator(pool, logger)
			if err != nil {
				return fmt.Errorf("failed to create migrator: %w", err)
			}
			defer migrator.Close()

			return migrator.Up(ctx)
		},
	}
}

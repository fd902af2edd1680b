package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"personal-library/internal/app"
	"personal-library/internal/config"
	"personal-library/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

type cliState struct {
	cfg *config.Config
}

func newRootCommand() *cobra.Command {
	state := &cliState{}

	root := &cobra.Command{
		Use:           "library",
		Short:         "Personal library web application",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil {
				logger.Debug("No .env file found, using environment variables", nil)
			}

			cfg, err := config.New()
			if err != nil {
				return err
			}
			logger.Init(cfg.LogLevel)
			state.cfg = cfg
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Start the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return state.serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Create or update the database schema",
			RunE: func(cmd *cobra.Command, args []string) error {
				return state.migrate()
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Load the sample library into an empty database",
			RunE: func(cmd *cobra.Command, args []string) error {
				return state.seed()
			},
		},
		&cobra.Command{
			Use:   "routes",
			Short: "Print the registered HTTP routes",
			RunE: func(cmd *cobra.Command, args []string) error {
				return state.routes(cmd)
			},
		},
	)

	return root
}

func (s *cliState) serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}

	logger.Info("Starting Personal Library", nil)

	application, err := app.New(s.cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		if err := application.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("Shutting down server...", nil)
	case runErr = <-serverErr:
		logger.Error(runErr, "Server error occurred, initiating shutdown", nil)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("Server exited gracefully", nil)
	return runErr
}

func (s *cliState) migrate() error {
	db, err := app.OpenDatabase(s.cfg)
	if err != nil {
		return err
	}
	if db == nil {
		logger.Info("In-memory storage has no schema to migrate", nil)
		return nil
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	return app.Migrate(db)
}

func (s *cliState) seed() error {
	application, err := app.New(s.cfg, app.Options{})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		_ = application.Shutdown(context.Background())
	}()

	result, err := application.Seed()
	if err != nil {
		return err
	}

	logger.Info("Seed finished", map[string]interface{}{
		"users":   result.Users,
		"books":   result.Books,
		"reviews": result.Reviews,
	})
	return nil
}

// routes builds the router against in-memory storage so no database is
// needed to list it.
func (s *cliState) routes(cmd *cobra.Command) error {
	cfg := *s.cfg
	cfg.DBDriver = config.DriverMemory
	cfg.SeedOnStart = false

	application, err := app.New(&cfg, app.Options{SkipMigrations: true})
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer func() {
		_ = application.Shutdown(context.Background())
	}()

	for _, route := range application.Routes() {
		fmt.Fprintln(cmd.OutOrStdout(), route)
	}
	return nil
}

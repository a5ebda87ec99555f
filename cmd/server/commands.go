package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/platform/migrations"
	"github.com/spf13/cobra"
)

// cli carries the configuration and logger loaded once for every command.
type cli struct {
	config *config.Config
	logger *slog.Logger
}

type commandContext struct {
	correlationID uuid.UUID
	startedAt     time.Time
}

type commandContextKey struct{}

// newRootCmd builds the command tree: serve, and migrate up/status.
func newRootCmd() *cobra.Command {
	return newRootCmdWith(&cli{})
}

// newRootCmdWith uses any configuration or logger already set on c instead
// of loading them.
func newRootCmdWith(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Taskboard API server",
		Long:          "Taskboard serves a JSON API for creating, updating and summarizing tasks.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.config == nil {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("failed to load configuration: %w", err)
				}
				c.config = cfg
			}
			if c.logger == nil {
				l, err := logger.Setup(c.config.Server)
				if err != nil {
					return fmt.Errorf("failed to set up logger: %w", err)
				}
				c.logger = l
			}

			info := commandContext{correlationID: uuid.New(), startedAt: time.Now()}
			cmd.SetContext(context.WithValue(cmd.Context(), commandContextKey{}, info))
			c.logger.Info("command start",
				"command", cmd.CommandPath(),
				"correlation_id", info.correlationID.String())
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			info, ok := cmd.Context().Value(commandContextKey{}).(commandContext)
			if !ok || c.logger == nil {
				return
			}
			c.logger.Info("command end",
				"command", cmd.CommandPath(),
				"correlation_id", info.correlationID.String(),
				"duration_ms", time.Since(info.startedAt).Milliseconds())
		},
	}

	root.AddCommand(newServeCmd(c), newMigrateCmd(c))
	return root
}

func newServeCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Apply pending migrations and start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, err := newApplication(ctx, c.config, c.logger)
			if err != nil {
				return err
			}
			defer app.cleanup()

			if err := app.migrate(ctx); err != nil {
				return err
			}
			return app.startHTTPServer(ctx, app.router())
		},
	}
}

func newMigrateCmd(c *cli) *cobra.Command {
	migrate := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, dialect, err := openDatabase(cmd.Context(), c.config.Database, c.logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db, c.logger)
			return migrations.Up(cmd.Context(), db, dialect, c.logger)
		},
	}

	status := &cobra.Command{
		Use:   "status",
		Short: "Show the state of every migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, dialect, err := openDatabase(cmd.Context(), c.config.Database, c.logger)
			if err != nil {
				return err
			}
			defer closeDatabase(db, c.logger)

			statuses, err := migrations.Status(cmd.Context(), db, dialect, c.logger)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, s := range statuses {
				fmt.Fprintf(out, "%05d  %-8s  %s\n", s.Source.Version, s.State, s.Source.Path)
			}
			return nil
		},
	}

	migrate.AddCommand(up, status)
	return migrate
}

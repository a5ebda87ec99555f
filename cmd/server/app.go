package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/taskboard-api/internal/api"
	"github.com/phrazzld/taskboard-api/internal/config"
	"github.com/phrazzld/taskboard-api/internal/platform/migrations"
	"github.com/phrazzld/taskboard-api/internal/platform/postgres"
	"github.com/phrazzld/taskboard-api/internal/platform/sqlite"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config  *config.Config
	logger  *slog.Logger
	db      *sql.DB
	dialect string

	taskStore   store.TaskStore
	taskService service.TaskService
}

// newApplication opens the database and wires the store and service for
// the configured driver.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (*application, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, dialect, err := openDatabase(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		dialect: dialect,
	}

	switch dialect {
	case migrations.DialectPostgres:
		app.taskStore = postgres.NewPostgresTaskStore(db, logger)
	default:
		app.taskStore = sqlite.NewSQLiteTaskStore(db, logger)
	}

	app.taskService, err = service.NewTaskService(app.taskStore, logger)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create task service: %w", err)
	}

	return app, nil
}

// migrate applies pending schema migrations.
func (app *application) migrate(ctx context.Context) error {
	return migrations.Up(ctx, app.db, app.dialect, app.logger)
}

// router builds the HTTP handler for the configured origins.
func (app *application) router() http.Handler {
	return api.NewRouter(api.RouterConfig{
		TaskService:    app.taskService,
		Logger:         app.logger,
		AllowedOrigins: app.config.Server.AllowedOrigins,
	})
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db == nil {
		return
	}
	closeDatabase(app.db, app.logger)
	app.db = nil
}

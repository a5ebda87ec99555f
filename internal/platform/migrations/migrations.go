package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
)

// TableName is the goose version table.
const TableName = "schema_migrations"

// Dialect names accepted by NewProvider; they match config database drivers.
const (
	DialectPostgres = "postgres"
	DialectSQLite   = "sqlite"
)

//go:embed sql
var embedded embed.FS

// NewProvider returns a goose provider for the embedded migrations of the
// given dialect.
func NewProvider(db *sql.DB, dialect string) (*goose.Provider, error) {
	var (
		dir      string
		gDialect database.Dialect
	)
	switch dialect {
	case DialectPostgres:
		dir, gDialect = "sql/postgres", database.DialectPostgres
	case DialectSQLite:
		dir, gDialect = "sql/sqlite", database.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	versionStore, err := database.NewStore(gDialect, TableName)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration version store: %w", err)
	}

	provider, err := goose.NewProvider("", db, fsys, goose.WithStore(versionStore))
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider, nil
}

// Up applies all pending migrations.
func Up(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) error {
	log := migrationLogger(logger, "up")

	provider, err := NewProvider(db, dialect)
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := provider.Up(ctx)
	for _, r := range results {
		if r.Source == nil {
			continue
		}
		log.Info("migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds())
	}
	if err != nil {
		log.Error("migration failed", "error", err)
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.Info("migrations up to date",
		"applied", len(results),
		"duration_ms", time.Since(start).Milliseconds())
	return nil
}

// Status logs and returns the state of every known migration.
func Status(ctx context.Context, db *sql.DB, dialect string, logger *slog.Logger) ([]*goose.MigrationStatus, error) {
	log := migrationLogger(logger, "status")

	provider, err := NewProvider(db, dialect)
	if err != nil {
		return nil, err
	}

	statuses, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read migration status: %w", err)
	}

	for _, s := range statuses {
		attrs := []any{"version", s.Source.Version, "path", s.Source.Path, "state", string(s.State)}
		if !s.AppliedAt.IsZero() {
			attrs = append(attrs, "applied_at", s.AppliedAt)
		}
		log.Info("migration status", attrs...)
	}
	return statuses, nil
}

// migrationLogger tags every log line of one run with a shared correlation ID.
func migrationLogger(logger *slog.Logger, command string) *slog.Logger {
	if logger == nil {
		logger = slog.Default()
	}
	return logger.With(
		"component", "migrations",
		"command", command,
		"correlation_id", uuid.New().String(),
	)
}

package migrations_test

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/platform/migrations"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// Every new connection to :memory: is a fresh database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func TestUp_CreatesTasksTable(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openMemoryDB(t)

	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, quietLogger()))

	_, err := db.ExecContext(ctx, `INSERT INTO tasks (title) VALUES ('schema check')`)
	require.NoError(t, err)

	var priority, status string
	err = db.QueryRowContext(ctx, `SELECT priority, status FROM tasks`).Scan(&priority, &status)
	require.NoError(t, err)
	assert.Equal(t, "Medium", priority)
	assert.Equal(t, "Pending", status)

	// Running again is a no-op.
	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, quietLogger()))
}

func TestStatus(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openMemoryDB(t)

	statuses, err := migrations.Status(ctx, db, migrations.DialectSQLite, quietLogger())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, goose.StatePending, statuses[0].State)

	require.NoError(t, migrations.Up(ctx, db, migrations.DialectSQLite, quietLogger()))

	statuses, err = migrations.Status(ctx, db, migrations.DialectSQLite, quietLogger())
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, goose.StateApplied, statuses[0].State)
	assert.Equal(t, int64(1), statuses[0].Source.Version)
}

func TestNewProvider_UnknownDialect(t *testing.T) {
	t.Parallel()

	_, err := migrations.NewProvider(openMemoryDB(t), "mysql")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported migration dialect")
}

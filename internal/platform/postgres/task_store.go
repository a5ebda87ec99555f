package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// PostgresTaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type PostgresTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresTaskStore(db store.DBTX, logger *slog.Logger) *PostgresTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", componentName)),
	}
}

// componentName tags every log line written by the store.
const componentName = "task_store"

// Ensure PostgresTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*PostgresTaskStore)(nil)

// placeholder renders PostgreSQL's positional bind parameters.
func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
		priority    sql.NullString
		dueDate     sql.NullString
		status      sql.NullString
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&priority,
		&dueDate,
		&status,
		&task.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = store.StringPtr(description)
	task.DueDate = store.StringPtr(dueDate)
	task.Priority = domain.Priority(priority.String)
	task.Status = domain.Status(status.String)
	task.CreatedAt = task.CreatedAt.UTC()
	return &task, nil
}

// List implements store.TaskStore.List
// It returns every task ordered by ID, newest first.
func (s *PostgresTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	query := `SELECT ` + store.TaskColumns + ` FROM tasks ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", MapError(err))
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			log.Warn("failed to close rows", slog.String("error", closeErr.Error()))
		}
	}()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, store.NewStoreError("task", "list", "failed to scan row", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", MapError(err))
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
// It inserts a new Pending task and returns the stored row.
// Returns a domain validation error if the title is blank.
func (s *PostgresTaskStore) Create(
	ctx context.Context,
	params domain.NewTaskParams,
) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	params, err := params.Normalize()
	if err != nil {
		log.Warn("task validation failed during create", slog.String("error", err.Error()))
		return nil, err
	}

	query := `
		INSERT INTO tasks (title, description, priority, due_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + store.TaskColumns

	task, err := scanTask(s.db.QueryRowContext(
		ctx,
		query,
		params.Title,
		store.NullString(params.Description),
		string(params.Priority),
		store.NullString(params.DueDate),
		string(domain.StatusPending),
	))
	if err != nil {
		log.Error("failed to create task", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create task: %w", MapError(err))
	}

	log.Info("task created successfully",
		slog.Int64("task_id", task.ID),
		slog.String("priority", string(task.Priority)))
	return task, nil
}

// Update implements store.TaskStore.Update
// It applies the set fields of patch in a single statement.
// Returns store.ErrNoFields if the patch is empty.
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *PostgresTaskStore) Update(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	if err := patch.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, err
	}

	cols := patch.Columns()
	if len(cols) == 0 {
		return nil, store.ErrNoFields
	}

	set, args := store.SetClause(cols, placeholder)
	query := `UPDATE tasks SET ` + set +
		` WHERE id = ` + placeholder(len(args)+1) +
		` RETURNING ` + store.TaskColumns
	args = append(args, id)

	task, err := scanTask(s.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("task not found for update", slog.Int64("task_id", id))
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return nil, fmt.Errorf("failed to update task: %w", MapError(err))
	}

	log.Info("task updated successfully",
		slog.Int64("task_id", id),
		slog.Int("fields", len(cols)))
	return task, nil
}

// Delete implements store.TaskStore.Delete
// It reports whether a row was removed.
func (s *PostgresTaskStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, fmt.Errorf("failed to delete task: %w", MapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected after delete",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, store.NewStoreError("task", "delete", "failed to read rows affected", err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for deletion", slog.Int64("task_id", id))
		return false, nil
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return true, nil
}

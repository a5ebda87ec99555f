package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// SQLiteTaskStore implements the store.TaskStore interface
// using a SQLite database as the storage backend.
type SQLiteTaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewSQLiteTaskStore creates a new SQLite implementation of the TaskStore interface.
// If logger is nil, a default logger will be used.
func NewSQLiteTaskStore(db store.DBTX, logger *slog.Logger) *SQLiteTaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SQLiteTaskStore{
		db:     db,
		logger: logger.With(slog.String("component", componentName)),
	}
}

// componentName tags every log line written by the store.
const componentName = "task_store"

// Ensure SQLiteTaskStore implements store.TaskStore interface
var _ store.TaskStore = (*SQLiteTaskStore)(nil)

func placeholder(int) string {
	return "?"
}

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
		createdAt   timestamp
	)

	err := row.Scan(
		&task.ID,
		&task.Title,
		&description,
		&priority,
		&dueDate,
		&status,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	task.Description = store.StringPtr(description)
	task.DueDate = store.StringPtr(dueDate)
	task.Priority = domain.Priority(priority.String)
	task.Status = domain.Status(status.String)
	task.CreatedAt = createdAt.Time
	return &task, nil
}

// List implements store.TaskStore.List
func (s *SQLiteTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	rows, err := s.db.QueryContext(ctx, `SELECT `+store.TaskColumns+` FROM tasks ORDER BY id DESC`)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list tasks: %w", mapError(err))
	}
	defer func() { _ = rows.Close() }()

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
		return nil, fmt.Errorf("failed to list tasks: %w", mapError(err))
	}

	log.Debug("listed tasks", slog.Int("count", len(tasks)))
	return tasks, nil
}

// Create implements store.TaskStore.Create
func (s *SQLiteTaskStore) Create(
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
		VALUES (?, ?, ?, ?, ?)
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
		return nil, fmt.Errorf("failed to create task: %w", mapError(err))
	}

	log.Info("task created successfully", slog.Int64("task_id", task.ID))
	return task, nil
}

// Update implements store.TaskStore.Update
func (s *SQLiteTaskStore) Update(
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
	query := `UPDATE tasks SET ` + set + ` WHERE id = ? RETURNING ` + store.TaskColumns
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
		return nil, fmt.Errorf("failed to update task: %w", mapError(err))
	}

	log.Info("task updated successfully", slog.Int64("task_id", id))
	return task, nil
}

// Delete implements store.TaskStore.Delete
func (s *SQLiteTaskStore) Delete(ctx context.Context, id int64) (bool, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete task",
			slog.String("error", err.Error()),
			slog.Int64("task_id", id))
		return false, fmt.Errorf("failed to delete task: %w", mapError(err))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, store.NewStoreError("task", "delete", "failed to read rows affected", err)
	}

	if rowsAffected == 0 {
		log.Debug("task not found for deletion", slog.Int64("task_id", id))
		return false, nil
	}

	log.Info("task deleted successfully", slog.Int64("task_id", id))
	return true, nil
}

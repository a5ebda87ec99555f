package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/insights"
	"github.com/phrazzld/taskboard-api/internal/platform/logger"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// TaskService provides task-related operations
type TaskService interface {
	// ListTasks returns every task, newest first.
	ListTasks(ctx context.Context) ([]*domain.Task, error)

	// CreateTask validates and stores a new task.
	CreateTask(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)

	// UpdateTask applies a partial update.
	// Returns ErrNothingToUpdate or ErrTaskNotFound for the expected failures.
	UpdateTask(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// DeleteTask removes a task. Returns ErrTaskNotFound if nothing was deleted.
	DeleteTask(ctx context.Context, id int64) error

	// GetInsights summarizes all tasks as of the service clock.
	GetInsights(ctx context.Context) (insights.Insights, error)
}

// TaskServiceError wraps errors from the task service with context.
type TaskServiceError struct {
	// Operation is the operation that failed (e.g., "create_task", "list_tasks")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for TaskServiceError.
func (e *TaskServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("task service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("task service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *TaskServiceError) Unwrap() error {
	return e.Err
}

// NewTaskServiceError creates a new TaskServiceError.
// Known sentinel and validation errors are returned without wrapping.
func NewTaskServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, store.ErrTaskNotFound), errors.Is(err, ErrTaskNotFound):
		return ErrTaskNotFound
	case errors.Is(err, store.ErrNoFields), errors.Is(err, ErrNothingToUpdate):
		return ErrNothingToUpdate
	case errors.Is(err, domain.ErrValidation):
		return err
	}

	return &TaskServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}

// Clock returns the current time.
type Clock func() time.Time

// Option configures a TaskService.
type Option func(*taskServiceImpl)

// WithClock overrides the clock used to compute insights.
func WithClock(clock Clock) Option {
	return func(s *taskServiceImpl) {
		if clock != nil {
			s.now = clock
		}
	}
}

const componentName = "task_service"

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	tasks  store.TaskStore
	now    Clock
	logger *slog.Logger
}

// NewTaskService creates a new TaskService.
// It returns an error if taskStore is nil.
func NewTaskService(
	taskStore store.TaskStore,
	logger *slog.Logger,
	opts ...Option,
) (TaskService, error) {
	if taskStore == nil {
		return nil, &TaskServiceError{
			Operation: "create_service",
			Message:   "taskStore cannot be nil",
		}
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &taskServiceImpl{
		tasks:  taskStore,
		now:    func() time.Time { return time.Now().UTC() },
		logger: logger.With("component", componentName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ListTasks implements TaskService.ListTasks
func (s *taskServiceImpl) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		log.Error("failed to list tasks", "error", err)
		return nil, NewTaskServiceError("list_tasks", "failed to retrieve tasks", err)
	}
	return tasks, nil
}

// CreateTask implements TaskService.CreateTask
func (s *taskServiceImpl) CreateTask(
	ctx context.Context,
	params domain.NewTaskParams,
) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	normalized, err := params.Normalize()
	if err != nil {
		log.Debug("rejected task creation", "error", err)
		return nil, err
	}

	task, err := s.tasks.Create(ctx, normalized)
	if err != nil {
		log.Error("failed to create task", "error", err)
		return nil, NewTaskServiceError("create_task", "failed to save task", err)
	}

	log.Info("task created", "task_id", task.ID)
	return task, nil
}

// UpdateTask implements TaskService.UpdateTask
func (s *taskServiceImpl) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	if patch.IsEmpty() {
		return nil, ErrNothingToUpdate
	}
	if err := patch.Validate(); err != nil {
		log.Debug("rejected task update", "error", err, "task_id", id)
		return nil, err
	}

	task, err := s.tasks.Update(ctx, id, patch)
	if err != nil {
		if errors.Is(err, store.ErrTaskNotFound) {
			log.Debug("task not found for update", "task_id", id)
		} else {
			log.Error("failed to update task", "error", err, "task_id", id)
		}
		return nil, NewTaskServiceError("update_task", "failed to update task", err)
	}

	log.Info("task updated", "task_id", id)
	return task, nil
}

// DeleteTask implements TaskService.DeleteTask
func (s *taskServiceImpl) DeleteTask(ctx context.Context, id int64) error {
	log := logger.ForComponent(ctx, s.logger, componentName)

	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		log.Error("failed to delete task", "error", err, "task_id", id)
		return NewTaskServiceError("delete_task", "failed to delete task", err)
	}
	if !deleted {
		log.Debug("task not found for deletion", "task_id", id)
		return ErrTaskNotFound
	}

	log.Info("task deleted", "task_id", id)
	return nil
}

// GetInsights implements TaskService.GetInsights
func (s *taskServiceImpl) GetInsights(ctx context.Context) (insights.Insights, error) {
	log := logger.ForComponent(ctx, s.logger, componentName)

	tasks, err := s.tasks.List(ctx)
	if err != nil {
		log.Error("failed to load tasks for insights", "error", err)
		return insights.Insights{}, NewTaskServiceError("get_insights", "failed to retrieve tasks", err)
	}

	// Ties go to whatever was counted first, so walk tasks in creation order.
	result := insights.Compute(oldestFirst(tasks), s.now())
	log.Debug("computed insights",
		"total", result.Total,
		"overdue", result.Overdue,
		"due_soon", result.DueSoon)
	return result, nil
}

// oldestFirst returns a copy of tasks, which the store lists newest first,
// in creation order.
func oldestFirst(tasks []*domain.Task) []*domain.Task {
	ordered := slices.Clone(tasks)
	slices.Reverse(ordered)
	return ordered
}

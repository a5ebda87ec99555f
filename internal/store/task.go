package store

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskStore defines the interface for task data persistence.
// Every method is a single SQL statement; no method spans a transaction.
type TaskStore interface {
	// List returns all tasks, most recently created first.
	// Returns an empty slice when there are no tasks.
	List(ctx context.Context) ([]*domain.Task, error)

	// Create inserts a new task and returns the stored record, including the
	// assigned ID and creation time. Priority defaults to Medium and status
	// is always Pending.
	// Returns a domain validation error if the title is blank.
	Create(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)

	// Update applies the set fields of patch to the task with the given ID
	// and returns the updated record.
	// Returns ErrNoFields if the patch sets nothing.
	// Returns ErrTaskNotFound if no task has the ID.
	// Returns a domain validation error if a set title is blank.
	Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)

	// Delete removes the task with the given ID. It reports whether a row
	// was removed; a missing ID is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}

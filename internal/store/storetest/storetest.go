// Package storetest holds the behavioral test suite every store.TaskStore
// implementation must pass.
package storetest

import (
	"context"
	"testing"
	"time"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a TaskStore over an empty tasks table.
type Factory func(t *testing.T) store.TaskStore

func strPtr(s string) *string {
	return &s
}

// RunTaskStoreTests runs the TaskStore suite against stores built by newStore.
// Each subtest gets its own store.
func RunTaskStoreTests(t *testing.T, newStore Factory) {
	t.Helper()

	t.Run("list empty", func(t *testing.T) {
		s := newStore(t)
		tasks, err := s.List(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("create applies defaults", func(t *testing.T) {
		s := newStore(t)
		before := time.Now().UTC().Add(-time.Minute)

		task, err := s.Create(context.Background(), domain.NewTaskParams{Title: "  Buy milk  "})
		require.NoError(t, err)

		assert.Positive(t, task.ID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Nil(t, task.Description)
		assert.Nil(t, task.DueDate)
		assert.Equal(t, domain.PriorityMedium, task.Priority)
		assert.Equal(t, domain.StatusPending, task.Status)
		assert.False(t, task.CreatedAt.IsZero())
		assert.True(t, task.CreatedAt.After(before), "created_at %v should be recent", task.CreatedAt)
	})

	t.Run("create stores optional fields", func(t *testing.T) {
		s := newStore(t)

		task, err := s.Create(context.Background(), domain.NewTaskParams{
			Title:       "Report",
			Description: strPtr("quarterly"),
			Priority:    domain.PriorityHigh,
			DueDate:     strPtr("2026-10-20"),
		})
		require.NoError(t, err)

		require.NotNil(t, task.Description)
		assert.Equal(t, "quarterly", *task.Description)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, "2026-10-20", *task.DueDate)
		assert.Equal(t, domain.PriorityHigh, task.Priority)
	})

	t.Run("create rejects blank title", func(t *testing.T) {
		s := newStore(t)

		for _, title := range []string{"", "   ", "\t\n"} {
			_, err := s.Create(context.Background(), domain.NewTaskParams{Title: title})
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
		}

		tasks, err := s.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("list is newest first", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		var ids []int64
		for _, title := range []string{"first", "second", "third"} {
			task, err := s.Create(ctx, domain.NewTaskParams{Title: title})
			require.NoError(t, err)
			ids = append(ids, task.ID)
		}
		assert.Less(t, ids[0], ids[1])
		assert.Less(t, ids[1], ids[2])

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, "third", tasks[0].Title)
		assert.Equal(t, "second", tasks[1].Title)
		assert.Equal(t, "first", tasks[2].Title)
	})

	t.Run("update changes only set fields", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, domain.NewTaskParams{
			Title:       "Write tests",
			Description: strPtr("all of them"),
			DueDate:     strPtr("2026-10-16"),
		})
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, domain.TaskPatch{
			Status:  domain.SetTo(string(domain.StatusCompleted)),
			DueDate: domain.SetNull(),
		})
		require.NoError(t, err)

		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Write tests", updated.Title)
		require.NotNil(t, updated.Description)
		assert.Equal(t, "all of them", *updated.Description)
		assert.Nil(t, updated.DueDate)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		assert.True(t, created.CreatedAt.Equal(updated.CreatedAt))

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, updated, tasks[0])
	})

	t.Run("update trims title and accepts any priority", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, domain.NewTaskParams{Title: "old"})
		require.NoError(t, err)

		updated, err := s.Update(ctx, created.ID, domain.TaskPatch{
			Title:    domain.SetTo("  new  "),
			Priority: domain.SetTo("Urgent"),
		})
		require.NoError(t, err)
		assert.Equal(t, "new", updated.Title)
		assert.Equal(t, domain.Priority("Urgent"), updated.Priority)
	})

	t.Run("update rejects null status", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, domain.NewTaskParams{Title: "keep"})
		require.NoError(t, err)

		_, err = s.Update(ctx, created.ID, domain.TaskPatch{Status: domain.SetNull()})
		assert.ErrorIs(t, err, domain.ErrTaskStatusNull)

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, domain.StatusPending, tasks[0].Status)
	})

	t.Run("update rejects blank or null title", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, domain.NewTaskParams{Title: "keep"})
		require.NoError(t, err)

		for _, patch := range []domain.TaskPatch{
			{Title: domain.SetTo("  ")},
			{Title: domain.SetNull()},
		} {
			_, err := s.Update(ctx, created.ID, patch)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "keep", tasks[0].Title)
	})

	t.Run("update with empty patch", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		created, err := s.Create(ctx, domain.NewTaskParams{Title: "unchanged"})
		require.NoError(t, err)

		_, err = s.Update(ctx, created.ID, domain.TaskPatch{})
		assert.ErrorIs(t, err, store.ErrNoFields)
	})

	t.Run("update missing task", func(t *testing.T) {
		s := newStore(t)

		_, err := s.Update(context.Background(), 999, domain.TaskPatch{Title: domain.SetTo("ghost")})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		keep, err := s.Create(ctx, domain.NewTaskParams{Title: "keep"})
		require.NoError(t, err)
		drop, err := s.Create(ctx, domain.NewTaskParams{Title: "drop"})
		require.NoError(t, err)

		deleted, err := s.Delete(ctx, drop.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = s.Delete(ctx, drop.ID)
		require.NoError(t, err)
		assert.False(t, deleted, "second delete finds nothing")

		deleted, err = s.Delete(ctx, 424242)
		require.NoError(t, err)
		assert.False(t, deleted)

		tasks, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, keep.ID, tasks[0].ID)
	})

	t.Run("deleted ids are not reused", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		first, err := s.Create(ctx, domain.NewTaskParams{Title: "first"})
		require.NoError(t, err)
		_, err = s.Delete(ctx, first.ID)
		require.NoError(t, err)

		second, err := s.Create(ctx, domain.NewTaskParams{Title: "second"})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)
	})
}

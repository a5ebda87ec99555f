package api

import (
	"context"

	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/insights"
)

// mockTaskService implements service.TaskService with overridable functions.
type mockTaskService struct {
	ListTasksFn   func(ctx context.Context) ([]*domain.Task, error)
	CreateTaskFn  func(ctx context.Context, params domain.NewTaskParams) (*domain.Task, error)
	UpdateTaskFn  func(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTaskFn  func(ctx context.Context, id int64) error
	GetInsightsFn func(ctx context.Context) (insights.Insights, error)
}

func (m *mockTaskService) ListTasks(ctx context.Context) ([]*domain.Task, error) {
	if m.ListTasksFn != nil {
		return m.ListTasksFn(ctx)
	}
	return []*domain.Task{}, nil
}

func (m *mockTaskService) CreateTask(
	ctx context.Context,
	params domain.NewTaskParams,
) (*domain.Task, error) {
	if m.CreateTaskFn != nil {
		return m.CreateTaskFn(ctx, params)
	}
	return &domain.Task{ID: 1, Title: params.Title}, nil
}

func (m *mockTaskService) UpdateTask(
	ctx context.Context,
	id int64,
	patch domain.TaskPatch,
) (*domain.Task, error) {
	if m.UpdateTaskFn != nil {
		return m.UpdateTaskFn(ctx, id, patch)
	}
	return &domain.Task{ID: id}, nil
}

func (m *mockTaskService) DeleteTask(ctx context.Context, id int64) error {
	if m.DeleteTaskFn != nil {
		return m.DeleteTaskFn(ctx, id)
	}
	return nil
}

func (m *mockTaskService) GetInsights(ctx context.Context) (insights.Insights, error) {
	if m.GetInsightsFn != nil {
		return m.GetInsightsFn(ctx)
	}
	return insights.Insights{}, nil
}

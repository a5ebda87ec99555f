package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/domain/insights"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRouter(svc service.TaskService) http.Handler {
	return NewRouter(RouterConfig{
		TaskService: svc,
		Logger:      slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
}

func serve(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return resp
}

func TestCreateTask_Handler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
		wantParams *domain.NewTaskParams
	}{
		{
			name:       "valid request",
			body:       `{"title":"Buy milk","priority":"High","due_date":"2026-10-20","unknown":true}`,
			wantStatus: http.StatusCreated,
			wantParams: &domain.NewTaskParams{
				Title:    "Buy milk",
				Priority: domain.PriorityHigh,
				DueDate:  strPtr("2026-10-20"),
			},
		},
		{
			name:       "null priority left for the default",
			body:       `{"title":"x","priority":null,"description":"d"}`,
			wantStatus: http.StatusCreated,
			wantParams: &domain.NewTaskParams{Title: "x", Description: strPtr("d")},
		},
		{
			name:       "malformed json",
			body:       `{"title":`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "non-string title",
			body:       `{"title":42}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "missing title",
			body:       `{"description":"no title"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Title required",
		},
		{
			name:       "blank title rejected by service",
			body:       `{"title":"   "}`,
			serviceErr: domain.NewValidationError("title", "is required", domain.ErrTaskTitleEmpty),
			wantStatus: http.StatusBadRequest,
			wantError:  "Title required",
		},
		{
			name:       "unexpected failure",
			body:       `{"title":"x"}`,
			serviceErr: errors.New("database is locked"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "Failed to create task",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got *domain.NewTaskParams
			svc := &mockTaskService{
				CreateTaskFn: func(_ context.Context, params domain.NewTaskParams) (*domain.Task, error) {
					got = &params
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return &domain.Task{ID: 5, Title: params.Title, Status: domain.StatusPending}, nil
				},
			}

			w := serve(t, newMockRouter(svc), http.MethodPost, "/tasks", tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantError != "" {
				resp := decodeError(t, w)
				assert.Equal(t, tc.wantError, resp.Error)
				assert.NotEmpty(t, resp.TraceID)
				assert.NotContains(t, w.Body.String(), "locked")
			}
			if tc.wantParams != nil {
				require.NotNil(t, got)
				assert.Equal(t, *tc.wantParams, *got)
			}
		})
	}
}

func TestUpdateTask_Handler(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		body       string
		serviceErr error
		wantStatus int
		wantError  string
		check      func(t *testing.T, id int64, patch domain.TaskPatch)
	}{
		{
			name:       "status only",
			target:     "/tasks/7",
			body:       `{"status":"Completed","id":99}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, id int64, patch domain.TaskPatch) {
				assert.Equal(t, int64(7), id)
				assert.Equal(t, domain.TaskPatch{Status: domain.SetTo("Completed")}, patch)
			},
		},
		{
			name:       "explicit null clears",
			target:     "/tasks/7",
			body:       `{"due_date":null}`,
			wantStatus: http.StatusOK,
			check: func(t *testing.T, _ int64, patch domain.TaskPatch) {
				assert.Equal(t, domain.TaskPatch{DueDate: domain.SetNull()}, patch)
			},
		},
		{
			name:       "bad id",
			target:     "/tasks/abc",
			body:       `{"status":"Completed"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid task ID",
		},
		{
			name:       "zero id",
			target:     "/tasks/0",
			body:       `{"status":"Completed"}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid task ID",
		},
		{
			name:       "not an object",
			target:     "/tasks/7",
			body:       `["status"]`,
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid request format",
		},
		{
			name:       "non-string value",
			target:     "/tasks/7",
			body:       `{"priority":3}`,
			wantStatus: http.StatusBadRequest,
			wantError:  "priority must be a string or null",
		},
		{
			name:       "nothing to update",
			target:     "/tasks/7",
			body:       `{"color":"red"}`,
			serviceErr: service.ErrNothingToUpdate,
			wantStatus: http.StatusBadRequest,
			wantError:  "Nothing to update",
		},
		{
			name:       "not found",
			target:     "/tasks/404",
			body:       `{"title":"x"}`,
			serviceErr: service.ErrTaskNotFound,
			wantStatus: http.StatusNotFound,
			wantError:  "Task not found",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			called := false
			svc := &mockTaskService{
				UpdateTaskFn: func(_ context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
					called = true
					if tc.check != nil {
						tc.check(t, id, patch)
					}
					if tc.serviceErr != nil {
						return nil, tc.serviceErr
					}
					return &domain.Task{ID: id}, nil
				},
			}

			w := serve(t, newMockRouter(svc), http.MethodPatch, tc.target, tc.body)

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantError != "" {
				assert.Equal(t, tc.wantError, decodeError(t, w).Error)
			}
			if tc.check != nil {
				assert.True(t, called)
			}
		})
	}
}

func TestDeleteTask_Handler(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		serviceErr error
		wantStatus int
		wantBody   string
	}{
		{"deleted", "/tasks/3", nil, http.StatusOK, `{"deleted":3}`},
		{"not found", "/tasks/3", service.ErrTaskNotFound, http.StatusNotFound, ""},
		{"bad id", "/tasks/-1", nil, http.StatusBadRequest, ""},
		{"failure", "/tasks/3", errors.New("io"), http.StatusInternalServerError, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockTaskService{
				DeleteTaskFn: func(context.Context, int64) error { return tc.serviceErr },
			}

			w := serve(t, newMockRouter(svc), http.MethodDelete, tc.target, "")

			assert.Equal(t, tc.wantStatus, w.Code)
			if tc.wantBody != "" {
				assert.JSONEq(t, tc.wantBody, w.Body.String())
			}
		})
	}
}

func TestListAndInsights_Failures(t *testing.T) {
	svc := &mockTaskService{
		ListTasksFn: func(context.Context) ([]*domain.Task, error) {
			return nil, fmt.Errorf("query: %w", errors.New("SELECT * FROM tasks failed"))
		},
		GetInsightsFn: func(context.Context) (insights.Insights, error) {
			return insights.Insights{}, errors.New("boom")
		},
	}
	router := newMockRouter(svc)

	w := serve(t, router, http.MethodGet, "/tasks", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to list tasks", decodeError(t, w).Error)
	assert.NotContains(t, w.Body.String(), "SELECT")

	w = serve(t, router, http.MethodGet, "/insights", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealth(t *testing.T) {
	w := serve(t, newMockRouter(&mockTaskService{}), http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestCORS(t *testing.T) {
	router := newMockRouter(&mockTaskService{})

	req := httptest.NewRequest(http.MethodOptions, "/tasks/1", nil)
	req.Header.Set("Origin", "http://localhost:5500")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPatch)

	req = httptest.NewRequest(http.MethodGet, "/tasks", nil)
	req.Header.Set("Origin", "http://example.com")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func strPtr(s string) *string {
	return &s
}

package api

import "github.com/phrazzld/taskboard-api/internal/domain"

// CreateTaskRequest defines the payload for POST /tasks.
// Unknown keys are ignored; due_date is stored as given.
type CreateTaskRequest struct {
	Title       string  `json:"title"       validate:"required"`
	Description *string `json:"description"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

// toParams converts the request into domain creation parameters.
// An absent or null priority is left empty so the domain default applies.
func (r CreateTaskRequest) toParams() domain.NewTaskParams {
	params := domain.NewTaskParams{
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
	}
	if r.Priority != nil {
		params.Priority = domain.Priority(*r.Priority)
	}
	return params
}

// DeleteTaskResponse is the body returned by DELETE /tasks/{id}.
type DeleteTaskResponse struct {
	Deleted int64 `json:"deleted"`
}

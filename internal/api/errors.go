package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/api/shared"
	"github.com/phrazzld/taskboard-api/internal/domain"
	"github.com/phrazzld/taskboard-api/internal/service"
	"github.com/phrazzld/taskboard-api/internal/store"
)

// Messages returned to clients. Internal error text never reaches a response.
const (
	msgTaskNotFound     = "Task not found"
	msgNothingToUpdate  = "Nothing to update"
	msgTitleRequired    = "Title required"
	msgStatusRequired   = "Status required"
	msgInvalidTaskID    = "Invalid task ID"
	msgInvalidRequest   = "Invalid request format"
	msgInvalidEntity    = "Invalid entity data"
	msgValidationFailed = "Validation error"
	msgUnexpected       = "An unexpected error occurred"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found errors
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, store.ErrNoFields),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return msgUnexpected
	}

	var validationErr *domain.ValidationError

	switch {
	case errors.Is(err, service.ErrTaskNotFound),
		errors.Is(err, store.ErrNotFound):
		return msgTaskNotFound

	case errors.Is(err, service.ErrNothingToUpdate),
		errors.Is(err, store.ErrNoFields):
		return msgNothingToUpdate

	case errors.Is(err, domain.ErrTaskTitleEmpty):
		return msgTitleRequired

	case errors.Is(err, domain.ErrTaskStatusNull):
		return msgStatusRequired

	case errors.Is(err, domain.ErrInvalidID):
		return msgInvalidTaskID

	// Domain validation messages are authored here, not echoed input.
	case errors.As(err, &validationErr):
		return validationErr.Error()

	case errors.Is(err, store.ErrInvalidEntity):
		return msgInvalidEntity

	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the status code and safe message for err, logging
// the full error. A non-empty fallback replaces the message of errors that
// map to 500.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallback != "" {
		message = fallback
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError removes sensitive details from validation errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	// Example format: "Key: 'CreateTaskRequest.Title' Error:Field validation for 'Title' failed on the 'required' tag"
	if strings.Contains(errMsg, "Field validation") {
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if field == "Title" && tag == "required" {
					return msgTitleRequired
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return msgValidationFailed
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "max":
		return "too long"
	case "datetime":
		return "invalid date format"
	default:
		return "validation failed"
	}
}

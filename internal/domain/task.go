package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// Priority is the urgency of a task. Values outside the known set may be
// stored through updates and are carried through unchanged.
type Priority string

// Known priority values
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// DefaultPriority is applied when a task is created without a priority.
const DefaultPriority = PriorityMedium

// Status is the completion state of a task.
type Status string

// Known status values
const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// DueDateLayout is the ISO calendar date format used for due dates.
const DueDateLayout = "2006-01-02"

// dueDateParseLayout also accepts months and days without zero padding.
const dueDateParseLayout = "2006-1-2"

// Task-specific validation errors
var (
	// ErrTaskTitleEmpty is returned when a task title is empty after trimming.
	ErrTaskTitleEmpty = errors.New("task title cannot be empty")

	// ErrTaskFieldType is returned when a patch field has a non-string JSON value.
	ErrTaskFieldType = errors.New("task field must be a string or null")

	// ErrTaskStatusNull is returned when a patch clears the status.
	ErrTaskStatusNull = errors.New("task status cannot be null")
)

// Task is a single to-do record.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Priority    Priority  `json:"priority"`
	DueDate     *string   `json:"due_date"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// ParsedDueDate returns the due date as a UTC calendar date. The second
// return value is false when the task has no due date or it does not parse.
// "2026-1-5" parses the same as "2026-01-05".
func (t *Task) ParsedDueDate() (time.Time, bool) {
	if t.DueDate == nil || *t.DueDate == "" {
		return time.Time{}, false
	}
	d, err := time.Parse(dueDateParseLayout, *t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// NewTaskParams holds the caller-supplied values for a new task.
type NewTaskParams struct {
	Title       string
	Description *string
	Priority    Priority
	DueDate     *string
}

// Normalize trims the title, applies the default priority and validates
// the result. The receiver is left untouched.
func (p NewTaskParams) Normalize() (NewTaskParams, error) {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return p, NewValidationError("title", "is required", ErrTaskTitleEmpty)
	}
	if p.Priority == "" {
		p.Priority = DefaultPriority
	}
	return p, nil
}

// Patchable task fields, in the order they are applied.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldPriority    = "priority"
	FieldDueDate     = "due_date"
	FieldStatus      = "status"
)

// PatchField is one optional field of a partial update. Set distinguishes
// "absent" from an explicit null (Set with a nil Value).
type PatchField struct {
	Set   bool
	Value *string
}

// SetTo returns a PatchField set to v.
func SetTo(v string) PatchField {
	return PatchField{Set: true, Value: &v}
}

// SetNull returns a PatchField that clears the column.
func SetNull() PatchField {
	return PatchField{Set: true}
}

// PatchColumn pairs a column name with the value to store in it.
type PatchColumn struct {
	Name  string
	Value *string
}

// TaskPatch is a partial update restricted to the patchable fields.
type TaskPatch struct {
	Title       PatchField
	Description PatchField
	Priority    PatchField
	DueDate     PatchField
	Status      PatchField
}

// NewTaskPatch builds a TaskPatch from a decoded JSON object. Keys outside
// the patchable set are ignored.
func NewTaskPatch(raw map[string]json.RawMessage) (TaskPatch, error) {
	var patch TaskPatch
	targets := map[string]*PatchField{
		FieldTitle:       &patch.Title,
		FieldDescription: &patch.Description,
		FieldPriority:    &patch.Priority,
		FieldDueDate:     &patch.DueDate,
		FieldStatus:      &patch.Status,
	}

	for key, value := range raw {
		target, ok := targets[key]
		if !ok {
			continue
		}
		var v *string
		if err := json.Unmarshal(value, &v); err != nil {
			return TaskPatch{}, NewValidationError(key, "must be a string or null", ErrTaskFieldType)
		}
		*target = PatchField{Set: true, Value: v}
	}

	return patch, nil
}

// IsEmpty reports whether no field is set.
func (p TaskPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Validate checks the set fields. A present title must be a non-blank string
// and a present status must not be null. Priority and status values are
// otherwise stored as given.
func (p TaskPatch) Validate() error {
	if p.Title.Set && (p.Title.Value == nil || strings.TrimSpace(*p.Title.Value) == "") {
		return NewValidationError("title", "cannot be empty", ErrTaskTitleEmpty)
	}
	if p.Status.Set && p.Status.Value == nil {
		return NewValidationError("status", "cannot be null", ErrTaskStatusNull)
	}
	return nil
}

// Columns returns the set fields in a fixed column order. Titles are trimmed.
func (p TaskPatch) Columns() []PatchColumn {
	var cols []PatchColumn
	if p.Title.Set {
		v := p.Title.Value
		if v != nil {
			trimmed := strings.TrimSpace(*v)
			v = &trimmed
		}
		cols = append(cols, PatchColumn{Name: FieldTitle, Value: v})
	}
	if p.Description.Set {
		cols = append(cols, PatchColumn{Name: FieldDescription, Value: p.Description.Value})
	}
	if p.Priority.Set {
		cols = append(cols, PatchColumn{Name: FieldPriority, Value: p.Priority.Value})
	}
	if p.DueDate.Set {
		cols = append(cols, PatchColumn{Name: FieldDueDate, Value: p.DueDate.Value})
	}
	if p.Status.Set {
		cols = append(cols, PatchColumn{Name: FieldStatus, Value: p.Status.Value})
	}
	return cols
}

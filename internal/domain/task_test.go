package domain

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewTaskParams_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("trims title and defaults priority", func(t *testing.T) {
		t.Parallel()
		got, err := NewTaskParams{Title: "  write report  "}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, "write report", got.Title)
		assert.Equal(t, PriorityMedium, got.Priority)
	})

	t.Run("keeps explicit priority", func(t *testing.T) {
		t.Parallel()
		got, err := NewTaskParams{Title: "x", Priority: PriorityHigh}.Normalize()
		require.NoError(t, err)
		assert.Equal(t, PriorityHigh, got.Priority)
	})

	t.Run("blank title", func(t *testing.T) {
		t.Parallel()
		_, err := NewTaskParams{Title: " \t "}.Normalize()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.True(t, errors.Is(err, ErrTaskTitleEmpty))

		var vErr *ValidationError
		require.True(t, errors.As(err, &vErr))
		assert.Equal(t, "title", vErr.Field)
	})
}

func TestTask_ParsedDueDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		dueDate *string
		wantOK  bool
		want    string
	}{
		{"absent", nil, false, ""},
		{"empty", strPtr(""), false, ""},
		{"garbage", strPtr("not-a-date"), false, ""},
		{"wrong layout", strPtr("15/10/2026"), false, ""},
		{"impossible day", strPtr("2026-02-30"), false, ""},
		{"with time", strPtr("2026-10-15T10:00:00"), false, ""},
		{"valid", strPtr("2026-10-15"), true, "2026-10-15"},
		{"unpadded", strPtr("2026-1-5"), true, "2026-01-05"},
		{"unpadded month", strPtr("2026-3-15"), true, "2026-03-15"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			task := &Task{DueDate: tc.dueDate}
			d, ok := task.ParsedDueDate()
			assert.Equal(t, tc.wantOK, ok)
			if ok {
				assert.Equal(t, tc.want, d.Format(DueDateLayout))
			}
		})
	}
}

func TestNewTaskPatch(t *testing.T) {
	t.Parallel()

	decode := func(t *testing.T, body string) map[string]json.RawMessage {
		t.Helper()
		var raw map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(body), &raw))
		return raw
	}

	t.Run("ignores unknown keys", func(t *testing.T) {
		t.Parallel()
		patch, err := NewTaskPatch(decode(t, `{"id": 7, "created_at": "x"}`))
		require.NoError(t, err)
		assert.True(t, patch.IsEmpty())
	})

	t.Run("explicit null clears a column", func(t *testing.T) {
		t.Parallel()
		patch, err := NewTaskPatch(decode(t, `{"description": null}`))
		require.NoError(t, err)
		assert.False(t, patch.IsEmpty())
		assert.Equal(t, []PatchColumn{{Name: FieldDescription, Value: nil}}, patch.Columns())
	})

	t.Run("columns in fixed order", func(t *testing.T) {
		t.Parallel()
		patch, err := NewTaskPatch(decode(t,
			`{"status": "Completed", "title": " new ", "due_date": "2026-01-02", "priority": "Urgent"}`))
		require.NoError(t, err)
		require.NoError(t, patch.Validate())

		cols := patch.Columns()
		require.Len(t, cols, 4)
		assert.Equal(t, FieldTitle, cols[0].Name)
		assert.Equal(t, "new", *cols[0].Value)
		assert.Equal(t, FieldPriority, cols[1].Name)
		assert.Equal(t, "Urgent", *cols[1].Value)
		assert.Equal(t, FieldDueDate, cols[2].Name)
		assert.Equal(t, FieldStatus, cols[3].Name)
	})

	t.Run("non-string value", func(t *testing.T) {
		t.Parallel()
		_, err := NewTaskPatch(decode(t, `{"title": 12}`))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.True(t, errors.Is(err, ErrTaskFieldType))
	})
}

func TestTaskPatch_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, TaskPatch{Status: SetTo("Completed")}.Validate())
	assert.NoError(t, TaskPatch{Title: SetTo("ok")}.Validate())

	err := TaskPatch{Title: SetTo("   ")}.Validate()
	assert.True(t, errors.Is(err, ErrTaskTitleEmpty))

	err = TaskPatch{Title: SetNull()}.Validate()
	assert.True(t, errors.Is(err, ErrValidation))

	err = TaskPatch{Status: SetNull()}.Validate()
	assert.True(t, errors.Is(err, ErrTaskStatusNull))
	assert.True(t, errors.Is(err, ErrValidation))

	assert.NoError(t, TaskPatch{Status: SetTo("Archived"), Priority: SetNull()}.Validate())
}

package store

import (
	"database/sql"
	"strings"

	"github.com/phrazzld/taskboard-api/internal/domain"
)

// TaskColumns is the column list every task query selects or returns, in
// the order ScanTask-style helpers expect.
const TaskColumns = "id, title, description, priority, due_date, status, created_at"

// Placeholder renders the nth (1-based) bind parameter for a SQL dialect.
type Placeholder func(n int) string

// SetClause builds "col = <p1>, col = <p2>" for the given patch columns and
// returns the matching arguments. Column names come from the domain's
// fixed patch field set, never from user input.
func SetClause(cols []domain.PatchColumn, placeholder Placeholder) (string, []any) {
	parts := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, col := range cols {
		parts = append(parts, col.Name+" = "+placeholder(i+1))
		args = append(args, NullString(col.Value))
	}
	return strings.Join(parts, ", "), args
}

// NullString converts an optional string to its SQL form.
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// StringPtr converts a nullable column back to an optional string.
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

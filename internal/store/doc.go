// Package store defines the persistence contract for tasks.
//
// TaskStore is implemented once per SQL dialect under internal/platform.
// Implementations translate driver errors into the sentinels declared here
// (ErrNotFound, ErrTaskNotFound, ErrDuplicate, ErrInvalidEntity, ErrNoFields)
// so callers never depend on a particular database.
package store

// Package domain holds the Task entity and the rules that govern it: the
// accepted priority and status values, creation defaults, title
// normalization, and the TaskPatch used for partial updates.
//
// Nothing in this package touches storage or transport. Validation failures
// are reported as *ValidationError values wrapping ErrValidation.
package domain

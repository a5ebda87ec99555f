// Package postgres provides the PostgreSQL implementation of store.TaskStore.
// It is used through database/sql with the pgx stdlib driver and maps
// PostgreSQL error codes onto the store package's sentinel errors.
package postgres

// Package sqlite provides the SQLite implementation of store.TaskStore on
// top of the pure Go modernc.org/sqlite driver. It is the default backend:
// a single database file, or ":memory:" for tests.
package sqlite

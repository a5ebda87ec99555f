// Package testdb provides database helpers for tests: a migrated in-memory
// SQLite database that needs no setup, and a migrated PostgreSQL database
// for integration tests that is skipped unless DATABASE_URL is set.
package testdb

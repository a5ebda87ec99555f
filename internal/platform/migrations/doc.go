// Package migrations owns the database schema. The SQL files are embedded
// per dialect and applied with goose, recording versions in the
// schema_migrations table.
package migrations

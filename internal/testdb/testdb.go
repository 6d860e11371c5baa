// Package testdb provides an in-memory SQLite database for tests that need
// a real *sql.DB, primarily transaction plumbing. Production code runs
// against PostgreSQL; nothing here is imported outside _test files.
package testdb

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// New opens a fresh in-memory SQLite database scoped to the test. The pool
// is pinned to a single connection so the in-memory database is shared by
// every statement, and the handle is closed via t.Cleanup.
func New(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	// A second connection would see an empty database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustExec runs a statement and fails the test on error. Tests use it to
// create the small fixture tables they need.
func MustExec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("failed to exec %q: %v", query, err)
	}
}

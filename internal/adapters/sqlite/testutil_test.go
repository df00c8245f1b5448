// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the single point where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema.
//
// Do not hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/shipdesk/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Each pooled connection would get its own :memory: database.
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedActivity inserts an activity entry with an explicit timestamp.
func seedActivity(t *testing.T, db *sql.DB, resource string, recordID int64, action, timestamp string) {
	t.Helper()
	_, err := db.Exec(
		"INSERT INTO activity_log (timestamp, resource, record_id, action) VALUES (?, ?, ?, ?)",
		timestamp, resource, recordID, action,
	)
	if err != nil {
		t.Fatalf("failed to seed activity: %v", err)
	}
}

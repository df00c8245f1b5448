package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

func columns(t *testing.T, conn *sql.DB, table string) map[string]bool {
	t.Helper()
	rows, err := conn.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		t.Fatalf("failed to read columns: %v", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan failed: %v", err)
		}
		out[name] = true
	}
	return out
}

func TestOpen_FreshInstall(t *testing.T) {
	conn, err := Open(filepath.Join(t.TempDir(), "state", FileName))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	var version int
	if err := conn.QueryRow("SELECT MAX(version) FROM schema_version").Scan(&version); err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != len(migrations) {
		t.Errorf("expected version %d, got %d", len(migrations), version)
	}
	if !columns(t, conn, "activity_log")["request_id"] {
		t.Error("expected request_id column")
	}
}

func TestRunMigrations_UpgradesVersionOne(t *testing.T) {
	conn, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer conn.Close()
	conn.SetMaxOpenConns(1)

	// Simulate an install that only ran the first migration.
	if _, err := conn.Exec(schemaVersionSQL); err != nil {
		t.Fatal(err)
	}
	tx, _ := conn.Begin()
	if err := migrationV1(tx); err != nil {
		t.Fatalf("migrationV1 failed: %v", err)
	}
	_, _ = tx.Exec("INSERT INTO schema_version (version) VALUES (1)")
	if err := tx.Commit(); err != nil {
		t.Fatal(err)
	}
	if columns(t, conn, "activity_log")["request_id"] {
		t.Fatal("request_id should not exist before migration 2")
	}

	if err := InitSchema(conn); err != nil {
		t.Fatalf("InitSchema failed: %v", err)
	}
	if !columns(t, conn, "activity_log")["request_id"] {
		t.Error("expected request_id after upgrade")
	}

	// Running again is a no-op.
	if err := RunMigrations(conn); err != nil {
		t.Errorf("second run failed: %v", err)
	}
}

func TestSchemaSQL_MatchesMigrations(t *testing.T) {
	fresh, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer fresh.Close()
	fresh.SetMaxOpenConns(1)
	if _, err := fresh.Exec(GetSchemaSQL()); err != nil {
		t.Fatalf("schema failed: %v", err)
	}

	migrated, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	defer migrated.Close()
	migrated.SetMaxOpenConns(1)
	if err := RunMigrations(migrated); err != nil {
		t.Fatalf("migrations failed: %v", err)
	}

	for _, table := range []string{"sessions", "activity_log"} {
		want, got := columns(t, fresh, table), columns(t, migrated, table)
		if len(want) != len(got) {
			t.Errorf("%s: schema has %d columns, migrations produce %d", table, len(want), len(got))
		}
		for name := range want {
			if !got[name] {
				t.Errorf("%s: column %s missing after migrations", table, name)
			}
		}
	}
}

func TestGetDBPath_UsesShipdeskHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SHIPDESK_HOME", dir)

	path, err := GetDBPath()
	if err != nil {
		t.Fatalf("GetDBPath failed: %v", err)
	}
	if path != filepath.Join(dir, FileName) {
		t.Errorf("unexpected path %s", path)
	}
}

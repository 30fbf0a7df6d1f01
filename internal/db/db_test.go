package db

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T, path string) *DB {
	t.Helper()
	database, err := New(path, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return database
}

func TestNew_CreatesDatabase(t *testing.T) {
	database := openTestDB(t, filepath.Join(t.TempDir(), "nested", "timeline.db"))
	defer database.Close()

	tables := []string{"takes", "shots", "session_state", "config", "_migrations"}
	for _, table := range tables {
		var name string
		err := database.Conn().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s not found: %v", table, err)
		}
	}

	var rows int
	if err := database.Conn().QueryRow("SELECT COUNT(*) FROM session_state").Scan(&rows); err != nil || rows != 1 {
		t.Errorf("session_state rows = %d, %v, want 1", rows, err)
	}
}

func TestNew_WALEnabled(t *testing.T) {
	database := openTestDB(t, filepath.Join(t.TempDir(), "test.db"))
	defer database.Close()

	var journalMode string
	if err := database.Conn().QueryRow("PRAGMA journal_mode").Scan(&journalMode); err != nil {
		t.Fatalf("PRAGMA journal_mode error = %v", err)
	}
	if journalMode != "wal" {
		t.Errorf("journal_mode = %s, want wal", journalMode)
	}
}

func TestNew_MigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	openTestDB(t, dbPath).Close()
	db2 := openTestDB(t, dbPath)
	defer db2.Close()

	var count int
	if err := db2.Conn().QueryRow("SELECT COUNT(*) FROM _migrations").Scan(&count); err != nil {
		t.Fatalf("count migrations error = %v", err)
	}
	if count != 2 {
		t.Errorf("migration count = %d, want 2", count)
	}
}

func TestNew_ShotRangeConstraint(t *testing.T) {
	database := openTestDB(t, filepath.Join(t.TempDir(), "test.db"))
	defer database.Close()

	if _, err := database.Conn().Exec("INSERT INTO takes (position, name) VALUES (0, 'Main Take')"); err != nil {
		t.Fatalf("insert take error = %v", err)
	}
	_, err := database.Conn().Exec(`
		INSERT INTO shots (id, take_position, position, name, start_frame, end_frame)
		VALUES ('s1', 0, 0, 'Sh01', 20, 10)
	`)
	if err == nil {
		t.Error("inverted shot range was accepted")
	}
}

func TestClearDanglingActiveTake(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db1 := openTestDB(t, dbPath)
	_, err := db1.Conn().Exec(`
		UPDATE session_state SET active_take_name = 'Gone', current_shot_index = 3, selected_shot_index = 2
	`)
	if err != nil {
		t.Fatalf("update state error = %v", err)
	}
	db1.Close()

	db2 := openTestDB(t, dbPath)
	defer db2.Close()

	var name string
	var current, selected int
	err = db2.Conn().QueryRow(
		"SELECT active_take_name, current_shot_index, selected_shot_index FROM session_state WHERE id = 1",
	).Scan(&name, &current, &selected)
	if err != nil {
		t.Fatalf("query state error = %v", err)
	}
	if name != "" || current != -1 || selected != -1 {
		t.Errorf("state = %q %d %d, want cleared", name, current, selected)
	}
}

func TestAppliedMigrations(t *testing.T) {
	database := openTestDB(t, filepath.Join(t.TempDir(), "test.db"))
	defer database.Close()

	applied, err := database.appliedMigrations(context.Background())
	if err != nil {
		t.Fatalf("appliedMigrations() error = %v", err)
	}
	for _, name := range []string{"001_timeline.sql", "002_config.sql"} {
		if !applied[name] {
			t.Errorf("migration %s not recorded: %v", name, applied)
		}
	}
}

func TestNew_PathIsDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "timeline.db")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if database, err := New(dir, nil); err == nil {
		database.Close()
		t.Error("New() on a directory succeeded")
	}
}

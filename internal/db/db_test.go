package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
	}{
		{
			name: "creates new database",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "tracker.db")
			},
		},
		{
			name: "creates nested directories",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "a", "b", "tracker.db")
			},
		},
		{
			name: "opens existing database",
			setup: func(t *testing.T) string {
				path := filepath.Join(t.TempDir(), "tracker.db")
				d, err := Open(path)
				if err != nil {
					t.Fatalf("setup: %v", err)
				}
				if err := d.Close(); err != nil {
					t.Fatalf("setup close: %v", err)
				}
				return path
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := tt.setup(t)
			d, err := Open(path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			defer func() {
				if err := d.Close(); err != nil {
					t.Errorf("close: %v", err)
				}
			}()

			if _, err := os.Stat(path); os.IsNotExist(err) {
				t.Error("database file was not created")
			}
		})
	}
}

func TestWALMode(t *testing.T) {
	d := openTestDB(t)

	var mode string
	if err := d.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
		t.Fatalf("query journal_mode: %v", err)
	}
	if mode != "wal" {
		t.Errorf("journal_mode = %q, want %q", mode, "wal")
	}
}

func TestForeignKeys(t *testing.T) {
	d := openTestDB(t)

	var fk int
	if err := d.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil {
		t.Fatalf("query foreign_keys: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign_keys = %d, want 1", fk)
	}
}

func TestMigrations(t *testing.T) {
	tests := []struct {
		name  string
		table string
		cols  []string
	}{
		{
			name:  "clients table exists",
			table: "clients",
			cols:  []string{"id", "name", "city", "state", "contact", "phone", "email", "segment", "status", "notes", "created_at", "updated_at"},
		},
		{
			name:  "visits table exists",
			table: "visits",
			cols:  []string{"id", "client_id", "visit_date", "touch_type", "outcome", "products", "signal", "note", "next_action", "follow_up_date", "completed", "created_at", "priority"},
		},
	}

	d := openTestDB(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols := tableColumns(t, d, tt.table)
			if len(cols) != len(tt.cols) {
				t.Fatalf("got %d columns, want %d: %v", len(cols), len(tt.cols), cols)
			}
			for i, want := range tt.cols {
				if cols[i] != want {
					t.Errorf("column %d = %q, want %q", i, cols[i], want)
				}
			}
		})
	}
}

func TestDefaults(t *testing.T) {
	d := openTestDB(t)

	res, err := d.Exec(`INSERT INTO clients (name) VALUES (?)`, "Acme")
	if err != nil {
		t.Fatalf("insert client: %v", err)
	}
	clientID, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("last insert id: %v", err)
	}

	var status string
	if err := d.QueryRow(`SELECT status FROM clients WHERE id = ?`, clientID).Scan(&status); err != nil {
		t.Fatalf("select status: %v", err)
	}
	if status != "Active" {
		t.Errorf("status = %q, want %q", status, "Active")
	}

	if _, err := d.Exec(`INSERT INTO visits (client_id, visit_date) VALUES (?, ?)`, clientID, "2026-02-08"); err != nil {
		t.Fatalf("insert visit: %v", err)
	}

	var touchType, priority string
	var completed int
	err = d.QueryRow(`SELECT touch_type, priority, completed FROM visits WHERE client_id = ?`, clientID).
		Scan(&touchType, &priority, &completed)
	if err != nil {
		t.Fatalf("select visit: %v", err)
	}
	if touchType != "Call" {
		t.Errorf("touch_type = %q, want %q", touchType, "Call")
	}
	if priority != "medium" {
		t.Errorf("priority = %q, want %q", priority, "medium")
	}
	if completed != 0 {
		t.Errorf("completed = %d, want 0", completed)
	}
}

func TestVisitRequiresClient(t *testing.T) {
	d := openTestDB(t)

	_, err := d.Exec(`INSERT INTO visits (client_id, visit_date) VALUES (?, ?)`, 9999, "2026-02-08")
	if err == nil {
		t.Fatal("expected foreign key error for missing client")
	}
}

func TestMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")

	// Open twice; migrations must not fail on second run
	for i := 0; i < 2; i++ {
		d, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		if err := d.Close(); err != nil {
			t.Fatalf("close %d: %v", i, err)
		}
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	p, err := DefaultPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(p) != "tracker.db" {
		t.Errorf("expected filename tracker.db, got %s", filepath.Base(p))
	}

	dir := filepath.Base(filepath.Dir(p))
	if dir != ".sales-tracker" {
		t.Errorf("expected directory .sales-tracker, got %s", dir)
	}
}

// openTestDB creates a temporary database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracker.db")
	d, err := Open(path)
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() {
		if err := d.Close(); err != nil {
			t.Errorf("close test db: %v", err)
		}
	})
	return d
}

// tableColumns returns column names for a table using PRAGMA table_info.
func tableColumns(t *testing.T, d *sql.DB, table string) []string {
	t.Helper()
	rows, err := d.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		t.Fatalf("pragma table_info(%s): %v", table, err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			t.Errorf("close rows: %v", err)
		}
	}()

	var cols []string
	for rows.Next() {
		var cid int
		var name, typ string
		var notnull int
		var dflt *string
		var pk int
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			t.Fatalf("scan: %v", err)
		}
		cols = append(cols, name)
	}
	return cols
}

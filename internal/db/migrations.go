package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		name       TEXT    NOT NULL,
		city       TEXT    NOT NULL DEFAULT '',
		state      TEXT    NOT NULL DEFAULT '',
		contact    TEXT    NOT NULL DEFAULT '',
		phone      TEXT    NOT NULL DEFAULT '',
		email      TEXT    NOT NULL DEFAULT '',
		segment    TEXT    NOT NULL DEFAULT '',
		status     TEXT    NOT NULL DEFAULT 'Active',
		notes      TEXT    NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS visits (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id      INTEGER NOT NULL REFERENCES clients(id),
		visit_date     TEXT    NOT NULL,
		touch_type     TEXT    NOT NULL DEFAULT 'Call',
		outcome        TEXT    NOT NULL DEFAULT '',
		products       TEXT    NOT NULL DEFAULT '',
		signal         TEXT    NOT NULL DEFAULT '',
		note           TEXT    NOT NULL DEFAULT '',
		next_action    TEXT    NOT NULL DEFAULT '',
		follow_up_date TEXT    NOT NULL DEFAULT '',
		completed      INTEGER NOT NULL DEFAULT 0,
		created_at     DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_client_id ON visits(client_id)`,
	`CREATE INDEX IF NOT EXISTS idx_visits_follow_up_date ON visits(follow_up_date)`,
}

// migrate runs all migrations in order.
func migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	// Column additions (idempotent, checks if column exists first)
	columnMigrations := []struct {
		table, column, definition string
	}{
		{"visits", "priority", "TEXT NOT NULL DEFAULT 'medium'"},
	}

	for _, cm := range columnMigrations {
		if err := addColumnIfNotExists(db, cm.table, cm.column, cm.definition); err != nil {
			return fmt.Errorf("adding %s.%s: %w", cm.table, cm.column, err)
		}
	}

	return nil
}

// addColumnIfNotExists adds a column to a table if it doesn't already exist.
func addColumnIfNotExists(db *sql.DB, table, column, definition string) (err error) {
	rows, err := db.Query(fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return fmt.Errorf("checking table info: %w", err)
	}

	exists := false
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dfltValue interface{}
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dfltValue, &pk); err != nil {
			_ = rows.Close()
			return fmt.Errorf("scanning column info: %w", err)
		}
		if name == column {
			exists = true
		}
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return fmt.Errorf("iterating columns: %w", err)
	}
	// Close before ALTER: the pool holds a single connection.
	if err := rows.Close(); err != nil {
		return fmt.Errorf("closing rows: %w", err)
	}
	if exists {
		return nil
	}

	_, err = db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, definition))
	return err
}

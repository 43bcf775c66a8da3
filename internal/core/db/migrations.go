package db

import "fmt"

// migrate applies schema migrations for existing databases
func (db *DB) migrate() error {
	// Migration 1: add mood/detection columns to moments (pre-detection
	// databases stored only capture fields)
	if err := db.migration001AddMoodColumns(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}
	return nil
}

// migration001AddMoodColumns adds mood, mood_confidence and session_id to
// moments tables created before detection and session rebuilding existed.
func (db *DB) migration001AddMoodColumns() error {
	columns := map[string]string{
		"mood":            "ALTER TABLE moments ADD COLUMN mood TEXT;",
		"mood_confidence": "ALTER TABLE moments ADD COLUMN mood_confidence INTEGER;",
		"session_id":      "ALTER TABLE moments ADD COLUMN session_id TEXT;",
	}

	for name, stmt := range columns {
		var count int
		err := db.conn.QueryRow(`
			SELECT COUNT(*) FROM pragma_table_info('moments')
			WHERE name = ?
		`, name).Scan(&count)
		if err != nil {
			return err
		}
		if count == 0 {
			if _, err := db.conn.Exec(stmt); err != nil {
				return fmt.Errorf("add %s column: %w", name, err)
			}
		}
	}
	return nil
}

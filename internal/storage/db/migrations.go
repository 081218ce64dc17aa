package db

import "fmt"

// schema lists every migration in order; a migration's version is its index + 1.
// Applied migrations are never edited, only appended to.
var schema = [][]string{
	{
		`CREATE TABLE launch_settings (
			game_id TEXT PRIMARY KEY,
			launch_parameters TEXT NOT NULL DEFAULT '',
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	{
		`CREATE TABLE launch_history (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			profile_name TEXT NOT NULL,
			mode INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			error TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX idx_launch_history_game ON launch_history(game_id, started_at)`,
	},
}

func (d *DB) schemaVersion() (int, error) {
	if _, err := d.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		return 0, fmt.Errorf("creating migrations table: %w", err)
	}

	var version int
	if err := d.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&version); err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	return version, nil
}

// migrate applies each pending migration in its own transaction
func (d *DB) migrate() error {
	version, err := d.schemaVersion()
	if err != nil {
		return err
	}

	for v := version + 1; v <= len(schema); v++ {
		tx, err := d.Begin()
		if err != nil {
			return err
		}
		for _, stmt := range schema[v-1] {
			if _, err := tx.Exec(stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migration %d: %w", v, err)
			}
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, v); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", v, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("migration %d: %w", v, err)
		}
	}
	return nil
}

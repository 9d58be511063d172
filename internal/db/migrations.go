package db

import "fmt"

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS snapshots (
		profile    TEXT PRIMARY KEY,
		version    INTEGER NOT NULL,
		data       BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_snapshots_updated ON snapshots(updated_at)`,
}

// migrate brings the schema up to date.
func (s *SQLite) migrate() error {
	var applied int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&applied); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	for i := applied; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", i+1, err)
		}
	}
	return nil
}

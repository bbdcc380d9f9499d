package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - stores named controller tunings
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			grace_ms INTEGER NOT NULL DEFAULT 200,
			filter_reset_ms INTEGER NOT NULL DEFAULT 500,
			scale_responsiveness REAL NOT NULL DEFAULT 0.12,
			scale_dead_zone REAL NOT NULL DEFAULT 0.02,
			rotation_responsiveness REAL NOT NULL DEFAULT 0.1,
			rotation_dead_zone REAL NOT NULL DEFAULT 0.01,
			pinch_alpha REAL NOT NULL DEFAULT 0.35,
			tilt_alpha REAL NOT NULL DEFAULT 0.3,
			pair_alpha REAL NOT NULL DEFAULT 0.3,
			auto_rotate_speed REAL NOT NULL DEFAULT 0.004,
			wobble_amplitude REAL NOT NULL DEFAULT 0.25,
			wobble_frequency REAL NOT NULL DEFAULT 0.1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Sessions table - one row per pipeline run
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL CHECK(mode IN ('scale', 'rotate', 'both')),
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			frames INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

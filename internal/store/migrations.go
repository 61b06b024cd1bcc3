package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Songs table - stores note chart metadata for the recital mode
		`CREATE TABLE IF NOT EXISTS songs (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL UNIQUE,
			bpm REAL NOT NULL,
			lead_time_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Song notes table - stores the timed notes of each chart
		`CREATE TABLE IF NOT EXISTS song_notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			seq INTEGER NOT NULL,
			time_ms INTEGER NOT NULL,
			string_slot INTEGER NOT NULL
		)`,

		// Performances table - stores the outcome of each judged recital run
		`CREATE TABLE IF NOT EXISTS performances (
			id TEXT PRIMARY KEY,
			song_id TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
			perfect INTEGER NOT NULL DEFAULT 0,
			good INTEGER NOT NULL DEFAULT 0,
			miss INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			max_combo INTEGER NOT NULL DEFAULT 0,
			played_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - stores application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_song_notes_song_id ON song_notes(song_id)`,
		`CREATE INDEX IF NOT EXISTS idx_performances_song_id ON performances(song_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}

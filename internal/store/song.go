package store

import (
	"database/sql"
	"errors"

	"github.com/ayusman/veena/internal/rhythm"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// SongRepository provides CRUD operations for the song library.
type SongRepository struct {
	db *sql.DB
}

// Songs returns the song repository for this store.
func (s *Store) Songs() *SongRepository {
	return &SongRepository{db: s.db}
}

// Create inserts a song and its note chart in a single transaction.
func (r *SongRepository) Create(song *rhythm.Song) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO songs (id, title, bpm, lead_time_ms, duration_ms)
		 VALUES (?, ?, ?, ?, ?)`,
		song.ID, song.Title, song.BPM, song.LeadTime, song.Duration,
	)
	if err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO song_notes (song_id, seq, time_ms, string_slot) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, n := range song.Notes {
		if _, err := stmt.Exec(song.ID, i, n.Time, n.String); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByID retrieves a song with its full note chart by its ID.
func (r *SongRepository) GetByID(id string) (*rhythm.Song, error) {
	song := &rhythm.Song{}

	err := r.db.QueryRow(
		`SELECT id, title, bpm, lead_time_ms, duration_ms
		 FROM songs WHERE id = ?`,
		id,
	).Scan(&song.ID, &song.Title, &song.BPM, &song.LeadTime, &song.Duration)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rows, err := r.db.Query(
		`SELECT time_ms, string_slot FROM song_notes
		 WHERE song_id = ?
		 ORDER BY seq`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var n rhythm.SongNote
		if err := rows.Scan(&n.Time, &n.String); err != nil {
			return nil, err
		}
		song.Notes = append(song.Notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return song, nil
}

// List retrieves all songs without their note charts, newest first.
func (r *SongRepository) List() ([]*rhythm.Song, error) {
	rows, err := r.db.Query(
		`SELECT id, title, bpm, lead_time_ms, duration_ms
		 FROM songs ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var songs []*rhythm.Song
	for rows.Next() {
		song := &rhythm.Song{}
		err := rows.Scan(&song.ID, &song.Title, &song.BPM, &song.LeadTime, &song.Duration)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return songs, nil
}

// Delete removes a song and, through the foreign key cascade, its notes and
// performances.
func (r *SongRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

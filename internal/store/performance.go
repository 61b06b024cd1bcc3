package store

import (
	"database/sql"
	"time"
)

// Performance records the outcome of one judged recital run.
type Performance struct {
	ID       string    `json:"id"`
	SongID   string    `json:"song_id"`
	Perfect  int       `json:"perfect"`
	Good     int       `json:"good"`
	Miss     int       `json:"miss"`
	Score    int       `json:"score"`
	MaxCombo int       `json:"max_combo"`
	PlayedAt time.Time `json:"played_at"`
}

// PerformanceRepository provides storage for recital results.
type PerformanceRepository struct {
	db *sql.DB
}

// Performances returns the performance repository for this store.
func (s *Store) Performances() *PerformanceRepository {
	return &PerformanceRepository{db: s.db}
}

// Create inserts a performance record. PlayedAt defaults to the current time
// when unset.
func (r *PerformanceRepository) Create(p *Performance) error {
	if p.PlayedAt.IsZero() {
		p.PlayedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO performances (id, song_id, perfect, good, miss, score, max_combo, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SongID, p.Perfect, p.Good, p.Miss, p.Score, p.MaxCombo, p.PlayedAt,
	)
	return err
}

// List retrieves all performances, most recent first.
func (r *PerformanceRepository) List() ([]*Performance, error) {
	return r.query(
		`SELECT id, song_id, perfect, good, miss, score, max_combo, played_at
		 FROM performances ORDER BY played_at DESC`,
	)
}

// ListBySong retrieves the performances for one song, most recent first.
func (r *PerformanceRepository) ListBySong(songID string) ([]*Performance, error) {
	return r.query(
		`SELECT id, song_id, perfect, good, miss, score, max_combo, played_at
		 FROM performances WHERE song_id = ? ORDER BY played_at DESC`,
		songID,
	)
}

func (r *PerformanceRepository) query(q string, args ...interface{}) ([]*Performance, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var perfs []*Performance
	for rows.Next() {
		p := &Performance{}
		err := rows.Scan(&p.ID, &p.SongID, &p.Perfect, &p.Good, &p.Miss, &p.Score, &p.MaxCombo, &p.PlayedAt)
		if err != nil {
			return nil, err
		}
		perfs = append(perfs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return perfs, nil
}

package store

import (
	"database/sql"
	"errors"
	"time"
)

// Session records one pipeline run: when it started and ended, which gesture
// mode it ran in, and how many frames and ticks it processed.
type Session struct {
	ID        string
	Mode      string
	StartedAt time.Time
	EndedAt   *time.Time
	Frames    uint64
	Ticks     uint64
}

// SessionRepository provides operations for session records.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Create inserts a new session record with a start time of now.
func (r *SessionRepository) Create(sess *Session) error {
	sess.StartedAt = time.Now()

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, mode, started_at, frames, ticks)
		 VALUES (?, ?, ?, ?, ?)`,
		sess.ID, sess.Mode, sess.StartedAt, sess.Frames, sess.Ticks,
	)
	return err
}

// Finish stamps the session's end time and records its final counters.
func (r *SessionRepository) Finish(id string, frames, ticks uint64) error {
	now := time.Now()
	res, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, frames = ?, ticks = ? WHERE id = ?`,
		now, frames, ticks, id,
	)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns sessions most recent first, up to the given limit.
func (r *SessionRepository) List(limit int) ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, mode, started_at, ended_at, frames, ticks
		 FROM sessions ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		sess := &Session{}
		var endedAt sql.NullTime
		if err := rows.Scan(&sess.ID, &sess.Mode, &sess.StartedAt, &endedAt, &sess.Frames, &sess.Ticks); err != nil {
			return nil, err
		}
		if endedAt.Valid {
			sess.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// Setting reads a settings value by key.
func (s *Store) Setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", err
	}
	return value, nil
}

// SetSetting writes a settings value, replacing any previous one.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}

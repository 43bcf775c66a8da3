package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// SessionsByDate returns the stored sessions for one UTC calendar date,
// ordered by start time ascending.
func (db *DB) SessionsByDate(dateKey string) ([]models.Session, error) {
	return db.querySessions(`WHERE date_key = ?`, dateKey)
}

// AllSessions returns every stored session, ordered by start time.
func (db *DB) AllSessions() ([]models.Session, error) {
	return db.querySessions(``)
}

func (db *DB) querySessions(where string, args ...interface{}) ([]models.Session, error) {
	rows, err := db.Query(`
		SELECT id, type, start_time, end_time,
		       moment_ids, key_photo_ids, behavior_flags,
		       place_label, created_at, updated_at
		FROM sessions
		`+where+`
		ORDER BY start_time ASC, id ASC
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var (
			s                    models.Session
			typ                  string
			startTime, endTime   string
			momentIDs            string
			keyPhotoIDs          string
			behaviorFlags        string
			placeLabel           *string
			createdAt, updatedAt *string
		)
		err := rows.Scan(
			&s.ID, &typ, &startTime, &endTime,
			&momentIDs, &keyPhotoIDs, &behaviorFlags,
			&placeLabel, &createdAt, &updatedAt,
		)
		if err != nil {
			return nil, err
		}

		s.Type = models.SessionType(typ)
		s.StartTime = parseTime(startTime)
		s.EndTime = parseTime(endTime)
		if err := json.Unmarshal([]byte(momentIDs), &s.MomentIDs); err != nil {
			return nil, fmt.Errorf("failed to decode moment ids for %s: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(keyPhotoIDs), &s.KeyPhotoIDs); err != nil {
			return nil, fmt.Errorf("failed to decode key photo ids for %s: %w", s.ID, err)
		}
		if err := json.Unmarshal([]byte(behaviorFlags), &s.BehaviorFlags); err != nil {
			return nil, fmt.Errorf("failed to decode behavior flags for %s: %w", s.ID, err)
		}
		if placeLabel != nil {
			s.PlaceLabel = *placeLabel
		}
		if createdAt != nil {
			s.CreatedAt = parseTime(*createdAt)
		}
		if updatedAt != nil {
			s.UpdatedAt = parseTime(*updatedAt)
		}

		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// ReplaceSessionsForDate atomically swaps the date's sessions for a freshly
// derived set: old sessions are deleted, the new ones inserted, and every
// member moment's session_id is rewritten, all in one transaction. Returns
// the number of sessions removed.
func (db *DB) ReplaceSessionsForDate(dateKey string, sessions []models.Session) (int, error) {
	for i := range sessions {
		if err := sessions[i].Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	var removed int
	err = tx.QueryRow(`SELECT COUNT(*) FROM sessions WHERE date_key = ?`, dateKey).Scan(&removed)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`DELETE FROM sessions WHERE date_key = ?`, dateKey); err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`UPDATE moments SET session_id = NULL WHERE date_key = ?`, dateKey); err != nil {
		return 0, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	for i := range sessions {
		s := &sessions[i]

		momentIDs, err := json.Marshal(s.MomentIDs)
		if err != nil {
			return 0, err
		}
		keyPhotoIDs, err := json.Marshal(s.KeyPhotoIDs)
		if err != nil {
			return 0, err
		}
		flags := s.BehaviorFlags
		if flags == nil {
			flags = []models.BehaviorFlag{}
		}
		behaviorFlags, err := json.Marshal(flags)
		if err != nil {
			return 0, err
		}

		_, err = tx.Exec(`
			INSERT INTO sessions (
				id, date_key, type, start_time, end_time,
				moment_ids, key_photo_ids, behavior_flags,
				place_label, created_at, updated_at
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			s.ID, dateKey, string(s.Type),
			s.StartTime.UTC().Format(time.RFC3339),
			s.EndTime.UTC().Format(time.RFC3339),
			string(momentIDs), string(keyPhotoIDs), string(behaviorFlags),
			nullString(s.PlaceLabel), now, now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert session %s: %w", s.ID, err)
		}

		for _, momentID := range s.MomentIDs {
			if _, err := tx.Exec(`UPDATE moments SET session_id = ? WHERE id = ?`, s.ID, momentID); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return removed, nil
}

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// SaveMoment inserts a new moment along with its entity links.
func (db *DB) SaveMoment(m *models.Moment) error {
	if err := m.Validate(); err != nil {
		return err
	}

	tags, err := json.Marshal(m.Tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}

	var lat, lon, accuracy interface{}
	var placeLabel interface{}
	if m.GPS != nil {
		lat = m.GPS.Latitude
		lon = m.GPS.Longitude
		accuracy = m.GPS.Accuracy
		if m.GPS.PlaceLabel != "" {
			placeLabel = m.GPS.PlaceLabel
		}
	}

	createdAt := m.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO moments (
			id, photo_path, timestamp, date_key, timestamp_local, created_at,
			latitude, longitude, accuracy, place_label,
			tags, notes, mood, mood_confidence, session_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		m.ID, m.PhotoPath,
		m.Timestamp.UTC().Format(time.RFC3339), m.DateKey(), m.TimestampLocal,
		createdAt.Format(time.RFC3339),
		lat, lon, accuracy, placeLabel,
		string(tags), m.Notes,
		nullString(string(m.Mood)), m.MoodConfidence, nullString(m.SessionID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert moment: %w", err)
	}

	for i, entityID := range m.EntityIDs {
		_, err = tx.Exec(`
			INSERT OR IGNORE INTO moment_entities (moment_id, entity_id, position)
			VALUES (?, ?, ?)
		`, m.ID, entityID, i)
		if err != nil {
			return fmt.Errorf("failed to link entity: %w", err)
		}
	}

	return tx.Commit()
}

// MomentByID returns one moment, or nil if it does not exist.
func (db *DB) MomentByID(id string) (*models.Moment, error) {
	rows, err := db.Query(momentSelect+` WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	moments, err := db.scanMoments(rows)
	if err != nil {
		return nil, err
	}
	if len(moments) == 0 {
		return nil, nil
	}
	return &moments[0], nil
}

// MomentsByDate returns all moments for one UTC calendar date, ordered by
// timestamp ascending. This is the clustering and summary input.
func (db *DB) MomentsByDate(dateKey string) ([]models.Moment, error) {
	rows, err := db.Query(momentSelect+`
		WHERE date_key = ?
		ORDER BY timestamp ASC, id ASC
	`, dateKey)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return db.scanMoments(rows)
}

// AllMoments returns every moment in the journal, ordered by timestamp.
func (db *DB) AllMoments() ([]models.Moment, error) {
	rows, err := db.Query(momentSelect + ` ORDER BY timestamp ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return db.scanMoments(rows)
}

// MomentsWithoutMood returns moments that detection has not yet filled in,
// oldest first.
func (db *DB) MomentsWithoutMood() ([]models.Moment, error) {
	rows, err := db.Query(momentSelect+`
		WHERE mood IS NULL
		ORDER BY timestamp ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return db.scanMoments(rows)
}

// UpdateMomentMood sets the moment's mood. A user override passes
// confidence 100; detection passes its inferred confidence.
func (db *DB) UpdateMomentMood(id string, mood models.MomentMood, confidence int) error {
	if _, err := models.ParseMomentMood(string(mood)); err != nil {
		return err
	}
	res, err := db.Exec(`
		UPDATE moments SET mood = ?, mood_confidence = ? WHERE id = ?
	`, string(mood), confidence, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("moment %s not found", id)
	}
	return nil
}

// AddMomentEntities appends entity references to a moment, preserving
// attach order. Already-linked entities are skipped.
func (db *DB) AddMomentEntities(momentID string, entityIDs []string) error {
	if len(entityIDs) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	err = tx.QueryRow(`
		SELECT COALESCE(MAX(position) + 1, 0) FROM moment_entities WHERE moment_id = ?
	`, momentID).Scan(&next)
	if err != nil {
		return err
	}

	for _, entityID := range entityIDs {
		res, err := tx.Exec(`
			INSERT OR IGNORE INTO moment_entities (moment_id, entity_id, position)
			VALUES (?, ?, ?)
		`, momentID, entityID, next)
		if err != nil {
			return err
		}
		if n, _ := res.RowsAffected(); n > 0 {
			next++
		}
	}

	return tx.Commit()
}

const momentSelect = `
	SELECT id, photo_path, timestamp, date_key, timestamp_local, created_at,
	       latitude, longitude, accuracy, place_label,
	       tags, notes, mood, mood_confidence, session_id
	FROM moments
`

func (db *DB) scanMoments(rows *sql.Rows) ([]models.Moment, error) {
	var moments []models.Moment
	for rows.Next() {
		var (
			m                  models.Moment
			timestamp          string
			dateKey            string
			timestampLocal     sql.NullString
			createdAt          sql.NullString
			lat, lon, accuracy sql.NullFloat64
			placeLabel         sql.NullString
			tags               string
			mood               sql.NullString
			moodConfidence     sql.NullInt64
			sessionID          sql.NullString
		)
		err := rows.Scan(
			&m.ID, &m.PhotoPath, &timestamp, &dateKey, &timestampLocal, &createdAt,
			&lat, &lon, &accuracy, &placeLabel,
			&tags, &m.Notes, &mood, &moodConfidence, &sessionID,
		)
		if err != nil {
			return nil, err
		}

		m.Timestamp = parseTime(timestamp)
		m.TimestampLocal = timestampLocal.String
		if createdAt.Valid {
			m.CreatedAt = parseTime(createdAt.String)
		}
		if lat.Valid && lon.Valid {
			m.GPS = &models.GPSLocation{
				Latitude:   lat.Float64,
				Longitude:  lon.Float64,
				Accuracy:   accuracy.Float64,
				PlaceLabel: placeLabel.String,
			}
		}
		if err := json.Unmarshal([]byte(tags), &m.Tags); err != nil {
			return nil, fmt.Errorf("failed to decode tags for %s: %w", m.ID, err)
		}
		m.Mood = models.MomentMood(mood.String)
		if moodConfidence.Valid {
			c := int(moodConfidence.Int64)
			m.MoodConfidence = &c
		}
		m.SessionID = sessionID.String

		moments = append(moments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// The pool holds a single connection, so the entity links load in a
	// second pass after the moment rows are fully drained. A query issued
	// while rows is still open would starve the pool and deadlock.
	rows.Close()

	for i := range moments {
		entityIDs, err := db.momentEntityIDs(moments[i].ID)
		if err != nil {
			return nil, err
		}
		moments[i].EntityIDs = entityIDs
	}
	return moments, nil
}

func (db *DB) momentEntityIDs(momentID string) ([]string, error) {
	rows, err := db.Query(`
		SELECT entity_id FROM moment_entities
		WHERE moment_id = ?
		ORDER BY position ASC
	`, momentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

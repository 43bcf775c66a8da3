package db

import (
	"database/sql"
	"encoding/json"
	"time"
)

// DetectionStatus tracks where a moment is in the detection pipeline.
type DetectionStatus string

const (
	DetectionPending    DetectionStatus = "pending"
	DetectionProcessing DetectionStatus = "processing"
	DetectionCompleted  DetectionStatus = "completed"
	DetectionFailed     DetectionStatus = "failed"
)

// Detection is the per-moment record of a detection attempt. Entities holds
// the raw detection payload; resolved entity links live on the moment itself.
type Detection struct {
	MomentID       string
	Status         DetectionStatus
	Entities       json.RawMessage
	Mood           string
	MoodConfidence *int
	ErrorMessage   string
	RetryCount     int
	ProcessedAt    time.Time
}

// SaveDetection inserts or updates the detection record for a moment.
func (db *DB) SaveDetection(d *Detection) error {
	var entities interface{}
	if len(d.Entities) > 0 {
		entities = string(d.Entities)
	}
	var processedAt interface{}
	if !d.ProcessedAt.IsZero() {
		processedAt = d.ProcessedAt.UTC().Format(time.RFC3339)
	}

	_, err := db.Exec(`
		INSERT INTO detections (moment_id, status, entities, mood, mood_confidence, error_message, retry_count, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(moment_id) DO UPDATE SET
			status = excluded.status,
			entities = excluded.entities,
			mood = excluded.mood,
			mood_confidence = excluded.mood_confidence,
			error_message = excluded.error_message,
			retry_count = excluded.retry_count,
			processed_at = excluded.processed_at
	`,
		d.MomentID, string(d.Status), entities,
		nullString(d.Mood), d.MoodConfidence,
		nullString(d.ErrorMessage), d.RetryCount, processedAt,
	)
	return err
}

// DetectionByMomentID returns the detection record for a moment, or nil if
// detection has never run for it.
func (db *DB) DetectionByMomentID(momentID string) (*Detection, error) {
	var (
		d              Detection
		status         string
		entities       sql.NullString
		mood           sql.NullString
		moodConfidence sql.NullInt64
		errorMessage   sql.NullString
		processedAt    sql.NullString
	)
	err := db.QueryRow(`
		SELECT moment_id, status, entities, mood, mood_confidence, error_message, retry_count, processed_at
		FROM detections
		WHERE moment_id = ?
	`, momentID).Scan(
		&d.MomentID, &status, &entities, &mood, &moodConfidence,
		&errorMessage, &d.RetryCount, &processedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	d.Status = DetectionStatus(status)
	if entities.Valid {
		d.Entities = json.RawMessage(entities.String)
	}
	d.Mood = mood.String
	if moodConfidence.Valid {
		c := int(moodConfidence.Int64)
		d.MoodConfidence = &c
	}
	d.ErrorMessage = errorMessage.String
	if processedAt.Valid {
		d.ProcessedAt = parseTime(processedAt.String)
	}

	return &d, nil
}

// PendingDetectionCount reports how many detections have not finished.
func (db *DB) PendingDetectionCount() (int, error) {
	var count int
	err := db.QueryRow(`
		SELECT COUNT(*) FROM detections WHERE status IN ('pending', 'processing')
	`).Scan(&count)
	return count, err
}

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// Profile returns the dog profile, or nil when none has been saved yet.
func (db *DB) Profile() (*models.DogProfile, error) {
	var (
		p                    models.DogProfile
		age                  sql.NullString
		temperament          string
		triggers             string
		goals                string
		createdAt, updatedAt sql.NullString
	)
	err := db.QueryRow(`
		SELECT id, name, age, temperament, triggers, goals, created_at, updated_at
		FROM profile
		LIMIT 1
	`).Scan(&p.ID, &p.Name, &age, &temperament, &triggers, &goals, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	p.Age = age.String
	if err := json.Unmarshal([]byte(temperament), &p.Temperament); err != nil {
		return nil, fmt.Errorf("failed to decode temperament: %w", err)
	}
	if err := json.Unmarshal([]byte(triggers), &p.Triggers); err != nil {
		return nil, fmt.Errorf("failed to decode triggers: %w", err)
	}
	if err := json.Unmarshal([]byte(goals), &p.Goals); err != nil {
		return nil, fmt.Errorf("failed to decode goals: %w", err)
	}
	if createdAt.Valid {
		p.CreatedAt = parseTime(createdAt.String)
	}
	if updatedAt.Valid {
		p.UpdatedAt = parseTime(updatedAt.String)
	}

	return &p, nil
}

// SaveProfile writes the singleton profile, replacing any existing one.
func (db *DB) SaveProfile(p *models.DogProfile) error {
	if err := p.Validate(); err != nil {
		return err
	}

	temperament, err := json.Marshal(p.Temperament)
	if err != nil {
		return err
	}
	triggers, err := json.Marshal(p.Triggers)
	if err != nil {
		return err
	}
	goals, err := json.Marshal(p.Goals)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Singleton: one profile per journal
	if _, err := tx.Exec(`DELETE FROM profile`); err != nil {
		return err
	}
	_, err = tx.Exec(`
		INSERT INTO profile (id, name, age, temperament, triggers, goals, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`,
		p.ID, p.Name, nullString(p.Age),
		string(temperament), string(triggers), string(goals),
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

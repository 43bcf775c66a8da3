package db

import (
	"database/sql"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// SaveEntity inserts or updates an entity record.
func (db *DB) SaveEntity(e *models.Entity) error {
	if err := e.Validate(); err != nil {
		return err
	}

	var breed, sex, size, relationship interface{}
	isPrimary := false
	switch e.Type {
	case models.EntityDog:
		breed = nullString(e.Dog.Breed)
		sex = string(e.Dog.Sex)
		size = string(e.Dog.Size)
		relationship = string(e.Dog.Relationship)
		isPrimary = e.Dog.IsPrimary
	case models.EntityHuman:
		relationship = string(e.Human.Relationship)
	}

	now := time.Now().UTC()
	createdAt := e.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := db.Exec(`
		INSERT INTO entities (id, type, name, notes, breed, sex, size, relationship, is_primary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			notes = excluded.notes,
			breed = excluded.breed,
			sex = excluded.sex,
			size = excluded.size,
			relationship = excluded.relationship,
			is_primary = excluded.is_primary,
			updated_at = excluded.updated_at
	`,
		e.ID, string(e.Type), nullString(e.Name), e.Notes,
		breed, sex, size, relationship, isPrimary,
		createdAt.Format(time.RFC3339), now.Format(time.RFC3339),
	)
	return err
}

// EntityByID returns one entity, or nil if it does not exist. Dangling
// references on moments resolve to nil and are skipped downstream.
func (db *DB) EntityByID(id string) (*models.Entity, error) {
	row := db.QueryRow(entitySelect+` WHERE id = ?`, id)
	e, err := scanEntity(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return e, err
}

// ListEntities returns all entities of the given type, or all entities when
// entityType is empty, newest first.
func (db *DB) ListEntities(entityType models.EntityType) ([]models.Entity, error) {
	query := entitySelect
	args := []interface{}{}
	if entityType != "" {
		query += ` WHERE type = ?`
		args = append(args, string(entityType))
	}
	query += ` ORDER BY created_at DESC, id ASC`

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entities []models.Entity
	for rows.Next() {
		e, err := scanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, *e)
	}
	return entities, rows.Err()
}

const entitySelect = `
	SELECT id, type, name, notes, breed, sex, size, relationship, is_primary, created_at, updated_at
	FROM entities
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEntity(row rowScanner) (*models.Entity, error) {
	var (
		e                    models.Entity
		typ                  string
		name                 sql.NullString
		breed, sex, size     sql.NullString
		relationship         sql.NullString
		isPrimary            sql.NullBool
		createdAt, updatedAt sql.NullString
	)
	err := row.Scan(
		&e.ID, &typ, &name, &e.Notes,
		&breed, &sex, &size, &relationship, &isPrimary,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Type = models.EntityType(typ)
	e.Name = name.String
	if createdAt.Valid {
		e.CreatedAt = parseTime(createdAt.String)
	}
	if updatedAt.Valid {
		e.UpdatedAt = parseTime(updatedAt.String)
	}

	switch e.Type {
	case models.EntityDog:
		e.Dog = &models.DogMetadata{
			Breed:        breed.String,
			Sex:          models.DogSex(sex.String),
			Size:         models.DogSize(size.String),
			Relationship: models.DogRelationship(relationship.String),
			IsPrimary:    isPrimary.Bool,
		}
	case models.EntityHuman:
		e.Human = &models.HumanMetadata{
			Relationship: models.HumanRelationship(relationship.String),
		}
	}

	return &e, nil
}

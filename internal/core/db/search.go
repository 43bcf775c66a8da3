package db

import (
	"github.com/dogtracer/dogtracer/internal/core/models"
)

// SearchMoments runs a full-text query over moment notes and returns
// matching moments ranked by relevance.
func (db *DB) SearchMoments(query string, limit int) ([]models.Moment, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.Query(momentSelect+`
		WHERE rowid IN (
			SELECT rowid FROM moments_fts
			WHERE moments_fts MATCH ?
			ORDER BY rank
			LIMIT ?
		)
		ORDER BY timestamp DESC
	`, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return db.scanMoments(rows)
}

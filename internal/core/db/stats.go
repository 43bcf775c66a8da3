package db

import (
	"database/sql"
	"time"
)

// Stats represents journal-wide statistics
type Stats struct {
	TotalMoments          int
	TotalSessions         int
	TotalEntities         int
	OldestMoment          time.Time
	NewestMoment          time.Time
	MostVisitedPlace      string
	MostVisitedPlaceCount int
	MoodCounts            map[string]int
	TagCounts             map[string]int
}

// GetStats returns comprehensive journal statistics
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{
		MoodCounts: make(map[string]int),
		TagCounts:  make(map[string]int),
	}

	err := db.QueryRow("SELECT COUNT(*) FROM moments").Scan(&stats.TotalMoments)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&stats.TotalSessions)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM entities").Scan(&stats.TotalEntities)
	if err != nil {
		return nil, err
	}

	if stats.TotalMoments > 0 {
		var minTimestamp, maxTimestamp sql.NullString
		err = db.QueryRow("SELECT MIN(timestamp), MAX(timestamp) FROM moments").Scan(&minTimestamp, &maxTimestamp)
		if err != nil {
			return nil, err
		}
		if minTimestamp.Valid {
			stats.OldestMoment = parseTime(minTimestamp.String)
		}
		if maxTimestamp.Valid {
			stats.NewestMoment = parseTime(maxTimestamp.String)
		}

		var mostVisited sql.NullString
		err = db.QueryRow(`
			SELECT place_label, COUNT(*) as count
			FROM moments
			WHERE place_label IS NOT NULL AND place_label != ''
			GROUP BY place_label
			ORDER BY count DESC
			LIMIT 1
		`).Scan(&mostVisited, &stats.MostVisitedPlaceCount)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if mostVisited.Valid {
			stats.MostVisitedPlace = mostVisited.String
		}

		rows, err := db.Query(`
			SELECT mood, COUNT(*) FROM moments
			WHERE mood IS NOT NULL
			GROUP BY mood
		`)
		if err != nil {
			return nil, err
		}
		defer rows.Close()
		for rows.Next() {
			var mood string
			var count int
			if err := rows.Scan(&mood, &count); err != nil {
				return nil, err
			}
			stats.MoodCounts[mood] = count
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}

		// Tags are stored as JSON arrays; unpack with json_each
		tagRows, err := db.Query(`
			SELECT value, COUNT(*) FROM moments, json_each(moments.tags)
			GROUP BY value
		`)
		if err != nil {
			return nil, err
		}
		defer tagRows.Close()
		for tagRows.Next() {
			var tag string
			var count int
			if err := tagRows.Scan(&tag, &count); err != nil {
				return nil, err
			}
			stats.TagCounts[tag] = count
		}
		if err := tagRows.Err(); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

package cluster

import (
	"fmt"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// MomentSource supplies the moments for one calendar date.
type MomentSource interface {
	MomentsByDate(date string) ([]models.Moment, error)
}

// SessionStore persists derived sessions. ReplaceSessionsForDate removes all
// sessions for the date, inserts the new set, and rewrites each member
// moment's session id, as one atomic operation. It returns the number of
// sessions removed.
type SessionStore interface {
	ReplaceSessionsForDate(date string, sessions []models.Session) (int, error)
}

// RebuildResult reports the outcome of a rebuild-for-date.
type RebuildResult struct {
	Sessions []models.Session
	Removed  int
}

// RebuildForDate recomputes and persists the sessions for one calendar date
// (UTC "2006-01-02"). A date with no moments is a no-op: nothing is deleted
// and nothing is written.
func RebuildForDate(moments MomentSource, store SessionStore, date string) (*RebuildResult, error) {
	day, err := moments.MomentsByDate(date)
	if err != nil {
		return nil, fmt.Errorf("load moments for %s: %w", date, err)
	}
	if len(day) == 0 {
		return &RebuildResult{}, nil
	}

	sessions := BuildSessions(day)
	removed, err := store.ReplaceSessionsForDate(date, sessions)
	if err != nil {
		return nil, fmt.Errorf("replace sessions for %s: %w", date, err)
	}

	return &RebuildResult{Sessions: sessions, Removed: removed}, nil
}

// Package summary synthesizes the tone-adjusted daily report from a day's
// moments, derived sessions, and the dog profile.
//
// Generation is a pure function over in-memory snapshots. Callers must check
// that the date has at least one moment before invoking it; a day without
// moments would produce a degenerate summary, not an error.
package summary

import (
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
	"github.com/dogtracer/dogtracer/internal/core/narrative"
	"github.com/dogtracer/dogtracer/internal/core/tone"
)

// EntityStore resolves entity references found on moments. A missing entity
// returns (nil, nil); dangling references are tolerated, not fatal.
type EntityStore interface {
	EntityByID(id string) (*models.Entity, error)
}

// Input carries the snapshots the synthesizer reads.
type Input struct {
	Date     string // UTC calendar date, "2006-01-02"
	Moments  []models.Moment
	Sessions []models.Session
	Profile  *models.DogProfile // nil when no profile exists
}

// Generate builds the daily summary for one calendar date.
func Generate(in Input, entities EntityStore, bank *narrative.Bank) *models.DailySummary {
	dogName := "Your Dog"
	if in.Profile != nil && in.Profile.Name != "" {
		dogName = in.Profile.Name
	}
	t := tone.ForProfile(in.Profile)

	overview := buildOverview(in.Moments, in.Sessions)
	insights := buildInsights(in.Moments, in.Sessions, in.Profile, t)

	return &models.DailySummary{
		Date:               in.Date,
		DogName:            dogName,
		Tone:               t,
		Overview:           overview,
		TimelineHighlights: buildHighlights(in.Sessions, in.Moments, entities, bank, t, dogName),
		SocialMap:          buildSocialMap(in.Moments, entities),
		BehaviorInsights:   insights,
		Recommendations:    buildRecommendations(overview, insights, in.Profile, t),
		GeneratedAt:        time.Now().UTC(),
	}
}

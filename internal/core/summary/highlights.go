package summary

import (
	"github.com/dogtracer/dogtracer/internal/core/models"
	"github.com/dogtracer/dogtracer/internal/core/narrative"
)

// flagTags is the display table for behavior flags.
var flagTags = map[models.BehaviorFlag]models.FlagTag{
	models.FlagWin:      {Emoji: "✅", Label: "win"},
	models.FlagTrigger:  {Emoji: "⚠️", Label: "trigger"},
	models.FlagSocial:   {Emoji: "🐾", Label: "social"},
	models.FlagTraining: {Emoji: "🧠", Label: "training"},
	models.FlagFood:     {Emoji: "🥣", Label: "food"},
	models.FlagRest:     {Emoji: "💤", Label: "rest"},
}

// buildHighlights produces one narrative entry per session, in session order.
func buildHighlights(
	sessions []models.Session,
	moments []models.Moment,
	entities EntityStore,
	bank *narrative.Bank,
	t models.SummaryTone,
	dogName string,
) []models.TimelineHighlight {
	byID := make(map[string]*models.Moment, len(moments))
	for i := range moments {
		byID[moments[i].ID] = &moments[i]
	}

	highlights := make([]models.TimelineHighlight, 0, len(sessions))
	for _, s := range sessions {
		var sessionMoments []*models.Moment
		for _, id := range s.MomentIDs {
			if m, ok := byID[id]; ok {
				sessionMoments = append(sessionMoments, m)
			}
		}

		// Named entities the session's moments involve, first-seen order.
		// Dangling or unnamed references are skipped.
		var interactions []string
		seen := make(map[string]bool)
		for _, m := range sessionMoments {
			for _, entityID := range m.EntityIDs {
				e, err := entities.EntityByID(entityID)
				if err != nil || e == nil || e.Name == "" || seen[e.Name] {
					continue
				}
				seen[e.Name] = true
				interactions = append(interactions, e.Name)
			}
		}

		tags := make([]models.FlagTag, 0, len(s.BehaviorFlags))
		for _, flag := range s.BehaviorFlags {
			tags = append(tags, flagTags[flag])
		}

		highlights = append(highlights, models.TimelineHighlight{
			SessionID:    s.ID,
			SessionType:  s.Type,
			TimeRange:    clock(s.StartTime) + " - " + clock(s.EndTime),
			PlaceLabel:   s.PlaceLabel,
			KeyPhotoIDs:  s.KeyPhotoIDs,
			Description:  bank.Describe(t, s.Type, dogName, s.PlaceLabel, len(sessionMoments)),
			Interactions: interactions,
			Tags:         tags,
		})
	}
	return highlights
}

package summary

import (
	"sort"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// buildSocialMap aggregates per-entity encounter counts across the day's
// moments. Entities that no longer exist are skipped; ordering is by
// descending encounter count with ties in first-encounter order.
func buildSocialMap(moments []models.Moment, entities EntityStore) []models.SocialMapEntry {
	type encounter struct {
		count     int
		momentIDs []string
	}
	encounters := make(map[string]*encounter)
	var order []string

	for _, m := range moments {
		for _, entityID := range m.EntityIDs {
			e, ok := encounters[entityID]
			if !ok {
				e = &encounter{}
				encounters[entityID] = e
				order = append(order, entityID)
			}
			e.count++
			e.momentIDs = append(e.momentIDs, m.ID)
		}
	}

	entries := make([]models.SocialMapEntry, 0, len(order))
	for _, entityID := range order {
		entity, err := entities.EntityByID(entityID)
		if err != nil || entity == nil {
			continue
		}
		enc := encounters[entityID]
		entries = append(entries, models.SocialMapEntry{
			EntityID:       entityID,
			Name:           entity.DisplayName(),
			Type:           entity.Type,
			EncounterCount: enc.count,
			Outcome:        entity.Relationship(),
			MomentIDs:      enc.momentIDs,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].EncounterCount > entries[j].EncounterCount
	})
	return entries
}

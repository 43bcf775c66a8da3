package narrative

import "github.com/dogtracer/dogtracer/internal/core/models"

// defaultTemplates is the built-in tone x session-type template table.
// Kept as pure data so new tones or types are an entry, not a branch.
var defaultTemplates = map[models.SummaryTone]map[models.SessionType]string{
	models.ToneUpbeat: {
		models.SessionWalk:     "{{dogName}} had an amazing walk at {{placeLabel}}! {{momentCount}} exciting moment{{plural}} captured.",
		models.SessionPlay:     "Super fun playtime for {{dogName}}! Lots of energy and joy at {{placeLabel}}.",
		models.SessionTraining: "{{dogName}} worked hard on training today! Great focus and effort shown.",
		models.SessionRest:     "{{dogName}} took a well-deserved rest at {{placeLabel}}. Recharging those batteries!",
		models.SessionSocial:   "{{dogName}} made some friends today! Social time at {{placeLabel}} was a hit.",
	},
	models.ToneCalm: {
		models.SessionWalk:     "{{dogName}} had a peaceful walk at {{placeLabel}}. {{momentCount}} calm moment{{plural}} captured.",
		models.SessionPlay:     "Gentle play session for {{dogName}}. A nice, controlled energy level throughout.",
		models.SessionTraining: "{{dogName}} practiced skills with patience. Every small step is progress.",
		models.SessionRest:     "{{dogName}} found a comfortable spot at {{placeLabel}} for some quiet time.",
		models.SessionSocial:   "{{dogName}} had some social interactions at {{placeLabel}}. Taking it at their own pace.",
	},
	models.ToneProtective: {
		models.SessionWalk:     "{{dogName}} surveyed the territory at {{placeLabel}}. {{momentCount}} moment{{plural}} on watch.",
		models.SessionPlay:     "{{dogName}} engaged in play while staying aware of surroundings at {{placeLabel}}.",
		models.SessionTraining: "{{dogName}} practiced boundary awareness and control. Good guardian instincts.",
		models.SessionRest:     "{{dogName}} kept watch from their rest spot at {{placeLabel}}. Always alert.",
		models.SessionSocial:   "{{dogName}} carefully assessed new friends at {{placeLabel}}. Trust is earned!",
	},
}

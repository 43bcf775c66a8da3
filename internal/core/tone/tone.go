// Package tone maps a dog's temperament profile to a narrative tone.
package tone

import "github.com/dogtracer/dogtracer/internal/core/models"

// FromTemperament picks the narrative tone for a temperament tag set.
// Anxious or reactive dogs get the calm voice, protective dogs the
// protective voice; everything else is upbeat.
func FromTemperament(temperament []models.Temperament) models.SummaryTone {
	has := make(map[models.Temperament]bool, len(temperament))
	for _, t := range temperament {
		has[t] = true
	}

	switch {
	case has[models.TemperamentAnxious] || has[models.TemperamentReactive]:
		return models.ToneCalm
	case has[models.TemperamentProtective]:
		return models.ToneProtective
	default:
		return models.ToneUpbeat
	}
}

// ForProfile resolves the tone for a possibly missing profile.
func ForProfile(profile *models.DogProfile) models.SummaryTone {
	if profile == nil {
		return models.ToneUpbeat
	}
	return FromTemperament(profile.Temperament)
}

// Description returns the human-readable label for a tone.
func Description(t models.SummaryTone) string {
	switch t {
	case models.ToneCalm:
		return "Calm & Supportive"
	case models.ToneProtective:
		return "Focused & Aware"
	default:
		return "Upbeat & Playful"
	}
}

// Emoji returns the display emoji for a tone.
func Emoji(t models.SummaryTone) string {
	switch t {
	case models.ToneCalm:
		return "🌿"
	case models.ToneProtective:
		return "🛡️"
	default:
		return "🎉"
	}
}

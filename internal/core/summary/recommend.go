package summary

import (
	"fmt"
	"strings"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// maxRecommendations caps the recommendation list.
const maxRecommendations = 7

// buildRecommendations evaluates the fixed rule list in order and truncates
// to the first maxRecommendations.
func buildRecommendations(
	overview models.OverviewSection,
	insights []models.BehaviorInsight,
	profile *models.DogProfile,
	t models.SummaryTone,
) []models.Recommendation {
	name := "your dog"
	if profile != nil && profile.Name != "" {
		name = profile.Name
	}

	var recs []models.Recommendation

	if overview.SessionCounts[models.SessionWalk] == 0 {
		desc := fmt.Sprintf("%s didn't walk today! A morning walk would be great.", name)
		if t == models.ToneCalm {
			desc = fmt.Sprintf("A calm, short walk could help %s decompress.", name)
		}
		recs = append(recs, models.Recommendation{
			Title:       "Add a Walk Tomorrow",
			Description: desc,
			Priority:    models.PriorityHigh,
		})
	}

	hasStressTrigger := false
	hasTrainingWin := false
	for _, i := range insights {
		if i.Type == models.InsightTrigger {
			hasStressTrigger = true
		}
		if i.Type == models.InsightWin && strings.Contains(i.Title, "Training") {
			hasTrainingWin = true
		}
	}

	if hasStressTrigger && profile != nil && len(profile.Triggers) > 0 {
		cited := profile.Triggers
		if len(cited) > 2 {
			cited = cited[:2]
		}
		recs = append(recs, models.Recommendation{
			Title:       "Work on Trigger Management",
			Description: fmt.Sprintf("Practice \"look at me\" or distance management near known triggers: %s.", strings.Join(cited, ", ")),
			Priority:    models.PriorityHigh,
		})
	}

	if overview.SessionCounts[models.SessionTraining] == 0 && profile != nil && len(profile.Goals) > 0 {
		recs = append(recs, models.Recommendation{
			Title:       "Training Time",
			Description: fmt.Sprintf("Try a short training session for: %s.", profile.Goals[0]),
			Priority:    models.PriorityMedium,
		})
	}

	if overview.RestMinutes > overview.ActiveMinutes*2 {
		recs = append(recs, models.Recommendation{
			Title:       "Increase Activity",
			Description: fmt.Sprintf("%s had more rest than activity today. A play session or longer walk could help.", name),
			Priority:    models.PriorityMedium,
		})
	}

	if overview.SessionCounts[models.SessionSocial] == 0 {
		desc := "Consider a playdate or park visit for some social time!"
		if t == models.ToneProtective {
			desc = "A controlled meet-up with a familiar dog could be beneficial."
		}
		recs = append(recs, models.Recommendation{
			Title:       "Social Opportunity",
			Description: desc,
			Priority:    models.PriorityLow,
		})
	}

	if hasTrainingWin {
		recs = append(recs, models.Recommendation{
			Title:       "Build on Training Success",
			Description: "Great training today! Continue with short, positive sessions.",
			Priority:    models.PriorityLow,
		})
	}

	if overview.TopMood == models.MoodPlayful {
		recs = append(recs, models.Recommendation{
			Title:       "Channel That Energy",
			Description: fmt.Sprintf("%s was playful today! Use that energy for training or enrichment activities.", name),
			Priority:    models.PriorityLow,
		})
	}

	if len(recs) > maxRecommendations {
		recs = recs[:maxRecommendations]
	}
	return recs
}

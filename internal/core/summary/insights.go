package summary

import (
	"fmt"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// buildInsights derives the day's behavior insights. Emission order is
// fixed: stress trigger, training win, calm-over-anxious pattern,
// rest-heavy pattern.
func buildInsights(
	moments []models.Moment,
	sessions []models.Session,
	profile *models.DogProfile,
	t models.SummaryTone,
) []models.BehaviorInsight {
	name := "Your dog"
	if profile != nil && profile.Name != "" {
		name = profile.Name
	}

	var insights []models.BehaviorInsight

	var stressIDs []string
	for _, m := range moments {
		if m.HasTag(models.TagStress) {
			stressIDs = append(stressIDs, m.ID)
		}
	}
	if len(stressIDs) > 0 {
		desc := fmt.Sprintf("Found %d moment%s with stress indicators. Worth monitoring.",
			len(stressIDs), pluralSuffix(len(stressIDs)))
		if t == models.ToneCalm {
			desc = fmt.Sprintf("%s showed some stress signals today. Let's work on building confidence.", name)
		}
		insights = append(insights, models.BehaviorInsight{
			Type:        models.InsightTrigger,
			Title:       "Stress Moments Detected",
			Description: desc,
			MomentIDs:   stressIDs,
		})
	}

	var trainingIDs []string
	for _, m := range moments {
		if m.HasTag(models.TagTraining) {
			trainingIDs = append(trainingIDs, m.ID)
		}
	}
	if len(trainingIDs) > 0 {
		desc := fmt.Sprintf("%d training moment%s logged. Consistent practice is key.",
			len(trainingIDs), pluralSuffix(len(trainingIDs)))
		if t == models.ToneUpbeat {
			desc = fmt.Sprintf("Amazing! %d training moment%s today. Keep up the great work!",
				len(trainingIDs), pluralSuffix(len(trainingIDs)))
		}
		insights = append(insights, models.BehaviorInsight{
			Type:        models.InsightWin,
			Title:       "Training Progress",
			Description: desc,
			MomentIDs:   trainingIDs,
		})
	}

	var calmIDs []string
	anxiousCount := 0
	for _, m := range moments {
		switch m.Mood {
		case models.MoodCalm:
			calmIDs = append(calmIDs, m.ID)
		case models.MoodAnxious:
			anxiousCount++
		}
	}
	if anxiousCount > 0 && len(calmIDs) > anxiousCount {
		insights = append(insights, models.BehaviorInsight{
			Type:        models.InsightPattern,
			Title:       "More Calm Than Anxious",
			Description: fmt.Sprintf("%s showed more calm moments than anxious ones today. Progress!", name),
			MomentIDs:   calmIDs,
		})
	}

	restCount, walkCount := 0, 0
	for _, s := range sessions {
		switch s.Type {
		case models.SessionRest:
			restCount++
		case models.SessionWalk:
			walkCount++
		}
	}
	if restCount > walkCount*2 {
		insights = append(insights, models.BehaviorInsight{
			Type:        models.InsightPattern,
			Title:       "Rest-Heavy Day",
			Description: "Today had more rest than activity. Consider a more active day tomorrow if energy allows.",
			MomentIDs:   []string{},
		})
	}

	return insights
}

func pluralSuffix(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}

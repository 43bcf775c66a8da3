package summary

import (
	"sort"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// buildOverview computes the day's headline statistics from its moments
// and derived sessions.
func buildOverview(moments []models.Moment, sessions []models.Session) models.OverviewSection {
	counts := make(map[models.SessionType]int, len(models.SessionTypes))
	for _, st := range models.SessionTypes {
		counts[st] = 0
	}

	var activeMinutes, restMinutes int
	for i := range sessions {
		s := &sessions[i]
		counts[s.Type]++
		if s.Type == models.SessionRest {
			restMinutes += s.DurationMinutes()
		} else {
			activeMinutes += s.DurationMinutes()
		}
	}

	sorted := sortByTime(moments)

	// Mood counts walk moments chronologically; ties on the top mood keep
	// the mood seen first.
	moodCounts := make(map[models.MomentMood]int)
	var moodOrder []models.MomentMood
	for _, m := range sorted {
		if m.Mood == "" {
			continue
		}
		if _, seen := moodCounts[m.Mood]; !seen {
			moodOrder = append(moodOrder, m.Mood)
		}
		moodCounts[m.Mood]++
	}

	var topMood models.MomentMood
	topMoodCount := 0
	for _, mood := range moodOrder {
		if moodCounts[mood] > topMoodCount {
			topMood = mood
			topMoodCount = moodCounts[mood]
		}
	}

	var shifts []models.MoodShift
	for i := 1; i < len(sorted); i++ {
		prev, curr := sorted[i-1], sorted[i]
		if prev.Mood != "" && curr.Mood != "" && prev.Mood != curr.Mood {
			shifts = append(shifts, models.MoodShift{
				From: prev.Mood,
				To:   curr.Mood,
				Time: clock(curr.Timestamp),
			})
		}
	}

	return models.OverviewSection{
		TotalMoments:  len(moments),
		SessionCounts: counts,
		ActiveMinutes: activeMinutes,
		RestMinutes:   restMinutes,
		TopMood:       topMood,
		TopMoodCount:  topMoodCount,
		MoodShifts:    shifts,
	}
}

func sortByTime(moments []models.Moment) []models.Moment {
	sorted := make([]models.Moment, len(moments))
	copy(sorted, moments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})
	return sorted
}

// clock formats a timestamp as HH:MM in the timestamp's own location.
// Callers that want wall-clock local time convert before synthesis.
func clock(t time.Time) string {
	return t.Format("15:04")
}

package models

import "time"

// SummaryTone is the narrative voice of a daily summary.
type SummaryTone string

const (
	ToneUpbeat     SummaryTone = "upbeat"
	ToneCalm       SummaryTone = "calm"
	ToneProtective SummaryTone = "protective"
)

// MoodShift records a change of mood between two consecutive moments.
type MoodShift struct {
	From MomentMood `json:"from"`
	To   MomentMood `json:"to"`
	// Time is the HH:MM clock time of the later moment.
	Time string `json:"time"`
}

// OverviewSection holds the day's headline statistics.
type OverviewSection struct {
	TotalMoments  int                 `json:"totalMoments"`
	SessionCounts map[SessionType]int `json:"sessionCounts"`
	ActiveMinutes int                 `json:"activeMinutes"`
	RestMinutes   int                 `json:"restMinutes"`
	TopMood       MomentMood          `json:"topMood,omitempty"`
	TopMoodCount  int                 `json:"topMoodCount"`
	MoodShifts    []MoodShift         `json:"moodShifts"`
}

// FlagTag is the display form of a behavior flag.
type FlagTag struct {
	Emoji string `json:"emoji"`
	Label string `json:"label"`
}

// TimelineHighlight is the narrative entry for one session.
type TimelineHighlight struct {
	SessionID    string      `json:"sessionId"`
	SessionType  SessionType `json:"sessionType"`
	TimeRange    string      `json:"timeRange"`
	PlaceLabel   string      `json:"placeLabel,omitempty"`
	KeyPhotoIDs  []string    `json:"keyPhotoIds"`
	Description  string      `json:"description"`
	Interactions []string    `json:"interactions"`
	Tags         []FlagTag   `json:"tags"`
}

// SocialMapEntry aggregates the day's encounters with one entity.
type SocialMapEntry struct {
	EntityID       string     `json:"entityId"`
	Name           string     `json:"name"`
	Type           EntityType `json:"type"`
	EncounterCount int        `json:"encounterCount"`
	Outcome        string     `json:"outcome"`
	MomentIDs      []string   `json:"momentIds"`
}

// InsightType classifies a behavior insight.
type InsightType string

const (
	InsightPattern InsightType = "pattern"
	InsightTrigger InsightType = "trigger"
	InsightWin     InsightType = "win"
)

// BehaviorInsight is one derived observation about the day.
type BehaviorInsight struct {
	Type        InsightType `json:"type"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	MomentIDs   []string    `json:"momentIds"`
}

// Priority ranks a recommendation.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Recommendation is one suggested action for tomorrow.
type Recommendation struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Priority    Priority `json:"priority"`
}

// DailySummary is the full synthesis output for one calendar date. It is a
// pure value object, recomputed on demand and never persisted by the core.
type DailySummary struct {
	Date               string              `json:"date"`
	DogName            string              `json:"dogName"`
	Tone               SummaryTone         `json:"tone"`
	Overview           OverviewSection     `json:"overview"`
	TimelineHighlights []TimelineHighlight `json:"timelineHighlights"`
	SocialMap          []SocialMapEntry    `json:"socialMap"`
	BehaviorInsights   []BehaviorInsight   `json:"behaviorInsights"`
	Recommendations    []Recommendation    `json:"recommendations"`
	GeneratedAt        time.Time           `json:"generatedAt"`
}

package models

import (
	"errors"
	"fmt"
	"time"
)

// MomentTag is a user-applied activity label on a captured moment.
type MomentTag string

const (
	TagWalk     MomentTag = "walk"
	TagPlay     MomentTag = "play"
	TagTraining MomentTag = "training"
	TagRest     MomentTag = "rest"
	TagFeeding  MomentTag = "feeding"
	TagSocial   MomentTag = "social"
	TagStress   MomentTag = "stress"
	TagVet      MomentTag = "vet"
	TagBath     MomentTag = "bath"
)

// MomentTags lists all valid tags.
var MomentTags = []MomentTag{
	TagWalk, TagPlay, TagTraining, TagRest, TagFeeding,
	TagSocial, TagStress, TagVet, TagBath,
}

// ParseMomentTag validates a tag string.
func ParseMomentTag(s string) (MomentTag, error) {
	for _, t := range MomentTags {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tag %q", s)
}

// MomentMood is an inferred or user-assigned mood. Empty means unset.
type MomentMood string

const (
	MoodCalm    MomentMood = "calm"
	MoodExcited MomentMood = "excited"
	MoodAlert   MomentMood = "alert"
	MoodAnxious MomentMood = "anxious"
	MoodTired   MomentMood = "tired"
	MoodPlayful MomentMood = "playful"
)

// MomentMoods lists all valid moods.
var MomentMoods = []MomentMood{
	MoodCalm, MoodExcited, MoodAlert, MoodAnxious, MoodTired, MoodPlayful,
}

// ParseMomentMood validates a mood string.
func ParseMomentMood(s string) (MomentMood, error) {
	for _, m := range MomentMoods {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown mood %q", s)
}

// GPSLocation is an optional capture location.
type GPSLocation struct {
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
	Accuracy   float64 `json:"accuracy,omitempty"`
	PlaceLabel string  `json:"placeLabel,omitempty"`
}

// Moment is one captured photo-plus-context entry in the journal.
// Moments are created at capture time with no mood and no session; detection
// processing fills in mood and entity references, and session rebuilding
// assigns SessionID. The core never deletes moments.
type Moment struct {
	ID             string       `json:"id"`
	PhotoPath      string       `json:"photoPath,omitempty"`
	Timestamp      time.Time    `json:"timestamp"`
	TimestampLocal string       `json:"timestampLocal,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	GPS            *GPSLocation `json:"gps,omitempty"`
	Tags           []MomentTag  `json:"tags"`
	Notes          string       `json:"notes"`
	Mood           MomentMood   `json:"mood,omitempty"`
	MoodConfidence *int         `json:"moodConfidence,omitempty"`
	EntityIDs      []string     `json:"entityIds,omitempty"`
	SessionID      string       `json:"sessionId,omitempty"`
}

// Validate checks invariants that must hold for any persisted moment.
func (m *Moment) Validate() error {
	if m.ID == "" {
		return errors.New("moment id is required")
	}
	if m.Timestamp.IsZero() {
		return errors.New("moment timestamp is required")
	}
	for _, t := range m.Tags {
		if _, err := ParseMomentTag(string(t)); err != nil {
			return err
		}
	}
	if m.Mood != "" {
		if _, err := ParseMomentMood(string(m.Mood)); err != nil {
			return err
		}
	}
	if m.MoodConfidence != nil && (*m.MoodConfidence < 0 || *m.MoodConfidence > 100) {
		return fmt.Errorf("mood confidence %d out of range [0, 100]", *m.MoodConfidence)
	}
	return nil
}

// HasTag reports whether the moment carries the given tag.
func (m *Moment) HasTag(tag MomentTag) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// DateKey returns the moment's UTC calendar date, the key used for session
// clustering and daily summaries.
func (m *Moment) DateKey() string {
	return m.Timestamp.UTC().Format("2006-01-02")
}

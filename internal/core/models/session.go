package models

import (
	"errors"
	"fmt"
	"time"
)

// SessionType classifies the activity of a derived session.
type SessionType string

const (
	SessionWalk     SessionType = "walk"
	SessionPlay     SessionType = "play"
	SessionTraining SessionType = "training"
	SessionRest     SessionType = "rest"
	SessionSocial   SessionType = "social"
)

// SessionTypes lists all session types in display order.
var SessionTypes = []SessionType{
	SessionWalk, SessionPlay, SessionTraining, SessionRest, SessionSocial,
}

// BehaviorFlag is a derived marker summarizing notable session content.
type BehaviorFlag string

const (
	FlagWin      BehaviorFlag = "win"
	FlagTrigger  BehaviorFlag = "trigger"
	FlagSocial   BehaviorFlag = "social"
	FlagTraining BehaviorFlag = "training"
	FlagFood     BehaviorFlag = "food"
	FlagRest     BehaviorFlag = "rest"
)

// BehaviorFlags lists all flags in canonical order. Derived flag sets are
// emitted in this order so output is deterministic.
var BehaviorFlags = []BehaviorFlag{
	FlagWin, FlagTrigger, FlagSocial, FlagTraining, FlagFood, FlagRest,
}

// Session is a derived temporal/spatial cluster of moments representing one
// activity episode. Sessions are fully recomputable from the day's moments.
type Session struct {
	ID            string         `json:"id"`
	Type          SessionType    `json:"type"`
	StartTime     time.Time      `json:"startTime"`
	EndTime       time.Time      `json:"endTime"`
	MomentIDs     []string       `json:"momentIds"`
	KeyPhotoIDs   []string       `json:"keyPhotoIds"`
	BehaviorFlags []BehaviorFlag `json:"behaviorFlags"`
	PlaceLabel    string         `json:"placeLabel,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Validate checks invariants that must hold for any persisted session.
func (s *Session) Validate() error {
	if s.ID == "" {
		return errors.New("session id is required")
	}
	if len(s.MomentIDs) == 0 {
		return errors.New("session must contain at least one moment")
	}
	if len(s.KeyPhotoIDs) > 3 {
		return fmt.Errorf("session has %d key photos, max is 3", len(s.KeyPhotoIDs))
	}
	if s.EndTime.Before(s.StartTime) {
		return errors.New("session end time precedes start time")
	}
	return nil
}

// DurationMinutes returns the session length in whole minutes, never less
// than one so zero-length sessions still count toward daily totals.
func (s *Session) DurationMinutes() int {
	mins := int(s.EndTime.Sub(s.StartTime).Round(time.Minute) / time.Minute)
	if mins < 1 {
		return 1
	}
	return mins
}

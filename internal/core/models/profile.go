package models

import (
	"errors"
	"fmt"
	"time"
)

// Temperament is one tag from the fixed temperament vocabulary.
type Temperament string

const (
	TemperamentConfident   Temperament = "confident"
	TemperamentShy         Temperament = "shy"
	TemperamentCurious     Temperament = "curious"
	TemperamentProtective  Temperament = "protective"
	TemperamentSocial      Temperament = "social"
	TemperamentIndependent Temperament = "independent"
	TemperamentHighEnergy  Temperament = "high-energy"
	TemperamentCalm        Temperament = "calm"
	TemperamentAnxious     Temperament = "anxious"
	TemperamentReactive    Temperament = "reactive"
)

// Temperaments lists the full vocabulary.
var Temperaments = []Temperament{
	TemperamentConfident, TemperamentShy, TemperamentCurious,
	TemperamentProtective, TemperamentSocial, TemperamentIndependent,
	TemperamentHighEnergy, TemperamentCalm, TemperamentAnxious,
	TemperamentReactive,
}

// ParseTemperament validates a raw temperament string.
func ParseTemperament(s string) (Temperament, error) {
	for _, t := range Temperaments {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown temperament %q", s)
}

// DogProfile is the singleton record for the tracked dog. It supplies the
// narrative subject name and the temperament tags that pick the tone.
type DogProfile struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Age         string        `json:"age,omitempty"`
	Temperament []Temperament `json:"temperament"`
	Triggers    []string      `json:"triggers"`
	Goals       []string      `json:"goals"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// Validate checks required fields and the temperament vocabulary.
func (p *DogProfile) Validate() error {
	if p.ID == "" {
		return errors.New("profile id is required")
	}
	if p.Name == "" {
		return errors.New("profile name is required")
	}
	for _, t := range p.Temperament {
		if _, err := ParseTemperament(string(t)); err != nil {
			return err
		}
	}
	return nil
}

package models

import (
	"errors"
	"fmt"
	"time"
)

// EntityType distinguishes the two kinds of named encounter records.
type EntityType string

const (
	EntityDog   EntityType = "dog"
	EntityHuman EntityType = "human"
)

// DogRelationship describes how the primary dog relates to another dog.
type DogRelationship string

const (
	DogFriend   DogRelationship = "friend"
	DogNeutral  DogRelationship = "neutral"
	DogConflict DogRelationship = "conflict"
	DogUnknown  DogRelationship = "unknown"
)

// HumanRelationship describes how a human relates to the primary dog.
type HumanRelationship string

const (
	HumanOwner    HumanRelationship = "owner"
	HumanFriend   HumanRelationship = "friend"
	HumanStranger HumanRelationship = "stranger"
	HumanNeighbor HumanRelationship = "neighbor"
	HumanVet      HumanRelationship = "vet"
	HumanTrainer  HumanRelationship = "trainer"
)

// DogSize buckets a dog entity's size.
type DogSize string

const (
	SizeSmall   DogSize = "small"
	SizeMedium  DogSize = "medium"
	SizeLarge   DogSize = "large"
	SizeUnknown DogSize = "unknown"
)

// DogSex is the recorded sex of a dog entity.
type DogSex string

const (
	SexMale    DogSex = "male"
	SexFemale  DogSex = "female"
	SexUnknown DogSex = "unknown"
)

// DogMetadata is the dog-specific payload of an entity.
type DogMetadata struct {
	Breed        string          `json:"breed,omitempty"`
	Sex          DogSex          `json:"sex"`
	Size         DogSize         `json:"size"`
	Relationship DogRelationship `json:"relationship"`
	IsPrimary    bool            `json:"isPrimary"`
}

// HumanMetadata is the human-specific payload of an entity.
type HumanMetadata struct {
	Relationship HumanRelationship `json:"relationship"`
}

// Entity is a named dog or human the primary dog has encountered. It is a
// tagged variant: exactly one of Dog or Human is set, matching Type.
type Entity struct {
	ID        string         `json:"id"`
	Type      EntityType     `json:"type"`
	Name      string         `json:"name,omitempty"`
	Notes     string         `json:"notes"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Dog       *DogMetadata   `json:"dogMetadata,omitempty"`
	Human     *HumanMetadata `json:"humanMetadata,omitempty"`
}

// Validate checks the variant payload matches the declared type.
func (e *Entity) Validate() error {
	if e.ID == "" {
		return errors.New("entity id is required")
	}
	switch e.Type {
	case EntityDog:
		if e.Dog == nil || e.Human != nil {
			return errors.New("dog entity requires dog metadata only")
		}
	case EntityHuman:
		if e.Human == nil || e.Dog != nil {
			return errors.New("human entity requires human metadata only")
		}
	default:
		return fmt.Errorf("unknown entity type %q", e.Type)
	}
	return nil
}

// DisplayName returns the entity's name, or a placeholder for unnamed ones.
func (e *Entity) DisplayName() string {
	if e.Name != "" {
		return e.Name
	}
	if e.Type == EntityDog {
		return "Unknown Dog"
	}
	return "Unknown Person"
}

// Relationship returns the variant's relationship value as a plain string,
// used as the encounter outcome in the social map.
func (e *Entity) Relationship() string {
	switch {
	case e.Dog != nil:
		return string(e.Dog.Relationship)
	case e.Human != nil:
		return string(e.Human.Relationship)
	default:
		return "neutral"
	}
}

package detect

import (
	"regexp"
	"strconv"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

var (
	otherDogPattern = regexp.MustCompile(`^\[OTHER_DOG_(\d+)\]$`)
	personPattern   = regexp.MustCompile(`^\[PERSON_(\d+)\]$`)
)

// LabeledEntity is a detection resolved against the journal's known
// entities. EntityID is empty when the placeholder has no match.
type LabeledEntity struct {
	DetectedEntity
	DisplayLabel string `json:"displayLabel"`
	EntityID     string `json:"entityId,omitempty"`
}

// LabelEntities resolves placeholder labels against the profile and the
// known dogs and humans. Placeholders are positional: [OTHER_DOG_n] maps to
// the n-th non-primary dog, [PERSON_n] to the n-th human. Unresolvable
// placeholders keep their raw label and carry no entity id.
func LabelEntities(entities []DetectedEntity, profile *models.DogProfile, dogs, humans []models.Entity) []LabeledEntity {
	labeled := make([]LabeledEntity, 0, len(entities))
	for _, e := range entities {
		le := LabeledEntity{DetectedEntity: e, DisplayLabel: e.Label}
		switch e.Type {
		case DetectedDog:
			le.DisplayLabel, le.EntityID = resolveDogLabel(e.Label, profile, dogs)
		case DetectedHuman:
			le.DisplayLabel, le.EntityID = resolveHumanLabel(e.Label, humans)
		}
		labeled = append(labeled, le)
	}
	return labeled
}

func resolveDogLabel(label string, profile *models.DogProfile, dogs []models.Entity) (string, string) {
	if label == PrimaryDogLabel {
		primary := primaryDog(dogs)
		if profile != nil && profile.Name != "" {
			id := ""
			if primary != nil {
				id = primary.ID
			}
			return profile.Name, id
		}
		if primary != nil && primary.Name != "" {
			return primary.Name, primary.ID
		}
		return label, ""
	}

	if m := otherDogPattern.FindStringSubmatch(label); m != nil {
		index, _ := strconv.Atoi(m[1])
		others := otherDogs(dogs)
		if index >= 1 && index <= len(others) {
			dog := others[index-1]
			if dog.Name != "" {
				return dog.Name, dog.ID
			}
		}
	}

	return label, ""
}

func resolveHumanLabel(label string, humans []models.Entity) (string, string) {
	if m := personPattern.FindStringSubmatch(label); m != nil {
		index, _ := strconv.Atoi(m[1])
		if index >= 1 && index <= len(humans) {
			human := humans[index-1]
			if human.Name != "" {
				return human.Name, human.ID
			}
		}
	}
	return label, ""
}

func primaryDog(dogs []models.Entity) *models.Entity {
	for i := range dogs {
		if dogs[i].Dog != nil && dogs[i].Dog.IsPrimary {
			return &dogs[i]
		}
	}
	return nil
}

func otherDogs(dogs []models.Entity) []models.Entity {
	var others []models.Entity
	for _, d := range dogs {
		if d.Dog != nil && !d.Dog.IsPrimary {
			others = append(others, d)
		}
	}
	return others
}

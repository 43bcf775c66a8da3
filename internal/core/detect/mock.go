package detect

import (
	"fmt"
	"math/rand"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// PrimaryDogLabel is the placeholder label for the tracked dog.
const PrimaryDogLabel = "[PRIMARY_DOG]"

var mockMoods = []models.MomentMood{
	models.MoodCalm, models.MoodExcited, models.MoodAlert,
	models.MoodAnxious, models.MoodTired, models.MoodPlayful,
}

// Generator fabricates detection results. The rand source is injected so
// tests can seed it.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a generator backed by the given source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// MoodInference picks a random mood with confidence in [50, 100).
func (g *Generator) MoodInference() MoodInference {
	return MoodInference{
		Mood:       mockMoods[g.rng.Intn(len(mockMoods))],
		Confidence: 50 + g.rng.Intn(50),
	}
}

// BoundingBox fabricates a plausible normalized box.
func (g *Generator) BoundingBox() BoundingBox {
	return BoundingBox{
		X:      g.rng.Float64() * 0.5,
		Y:      g.rng.Float64() * 0.3,
		Width:  0.2 + g.rng.Float64()*0.3,
		Height: 0.3 + g.rng.Float64()*0.4,
	}
}

// Detections fabricates 0-2 dogs and 0-2 humans. The first dog is always
// the primary dog placeholder; the rest are numbered.
func (g *Generator) Detections() []DetectedEntity {
	var entities []DetectedEntity

	numDogs := g.rng.Intn(3)
	for i := 0; i < numDogs; i++ {
		label := PrimaryDogLabel
		if i > 0 {
			label = fmt.Sprintf("[OTHER_DOG_%d]", i)
		}
		entities = append(entities, DetectedEntity{
			Type:        DetectedDog,
			BoundingBox: g.BoundingBox(),
			Confidence:  70 + g.rng.Float64()*30,
			Label:       label,
		})
	}

	numHumans := g.rng.Intn(3)
	for i := 0; i < numHumans; i++ {
		entities = append(entities, DetectedEntity{
			Type:        DetectedHuman,
			BoundingBox: g.BoundingBox(),
			Confidence:  70 + g.rng.Float64()*30,
			Label:       fmt.Sprintf("[PERSON_%d]", i+1),
		})
	}

	return entities
}

// Package detect implements the mock photo-detection boundary: a stand-in
// HTTP service that fabricates entity detections and mood inference, the
// client that calls it with retries, and the processor that writes results
// back onto moments.
package detect

import "github.com/dogtracer/dogtracer/internal/core/models"

// DetectedEntityType distinguishes detected subjects.
type DetectedEntityType string

const (
	DetectedDog   DetectedEntityType = "dog"
	DetectedHuman DetectedEntityType = "human"
)

// BoundingBox locates a detection within the photo, all values normalized
// to [0, 1].
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DetectedEntity is one subject found in a photo. Labels are positional
// placeholders ([PRIMARY_DOG], [OTHER_DOG_n], [PERSON_n]) resolved to real
// entities downstream.
type DetectedEntity struct {
	Type        DetectedEntityType `json:"type"`
	BoundingBox BoundingBox        `json:"boundingBox"`
	Confidence  float64            `json:"confidence"`
	Label       string             `json:"label"`
}

// MoodInference is the detector's mood guess for the photographed dog.
type MoodInference struct {
	Mood       models.MomentMood `json:"mood"`
	Confidence int               `json:"confidence"`
}

// Request is the detection API request body.
type Request struct {
	PhotoDataURL string `json:"photoDataUrl"`
}

// Response is the detection API response body.
type Response struct {
	Success       bool             `json:"success"`
	Entities      []DetectedEntity `json:"entities,omitempty"`
	MoodInference *MoodInference   `json:"moodInference,omitempty"`
	ProcessedAt   int64            `json:"processedAt,omitempty"`
	Error         string           `json:"error,omitempty"`
}

// Package export writes full-journal snapshots as JSON for backup or
// transfer to another device.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

// Version identifies the export format.
const Version = "1.0.0"

// Data is the full-journal export document.
type Data struct {
	Version    string             `json:"version"`
	ExportedAt string             `json:"exportedAt"`
	Profile    *models.DogProfile `json:"profile"`
	Moments    []models.Moment    `json:"moments"`
	Sessions   []models.Session   `json:"sessions"`
	Entities   []models.Entity    `json:"entities"`
}

// Summary counts what an export would contain.
type Summary struct {
	Moments    int  `json:"moments"`
	Sessions   int  `json:"sessions"`
	Entities   int  `json:"entities"`
	HasProfile bool `json:"hasProfile"`
}

// Generate collects the whole journal into an export document.
func Generate(database *db.DB) (*Data, error) {
	profile, err := database.Profile()
	if err != nil {
		return nil, err
	}
	moments, err := database.AllMoments()
	if err != nil {
		return nil, err
	}
	sessions, err := database.AllSessions()
	if err != nil {
		return nil, err
	}
	entities, err := database.ListEntities("")
	if err != nil {
		return nil, err
	}

	if moments == nil {
		moments = []models.Moment{}
	}
	if sessions == nil {
		sessions = []models.Session{}
	}
	if entities == nil {
		entities = []models.Entity{}
	}

	return &Data{
		Version:    Version,
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Profile:    profile,
		Moments:    moments,
		Sessions:   sessions,
		Entities:   entities,
	}, nil
}

// GetSummary counts the journal's contents without building the document.
func GetSummary(database *db.DB) (*Summary, error) {
	stats, err := database.GetStats()
	if err != nil {
		return nil, err
	}
	profile, err := database.Profile()
	if err != nil {
		return nil, err
	}
	return &Summary{
		Moments:    stats.TotalMoments,
		Sessions:   stats.TotalSessions,
		Entities:   stats.TotalEntities,
		HasProfile: profile != nil,
	}, nil
}

// Filename builds the export filename: <Dog_Name>_export_<date>.json with
// spaces in the name replaced by underscores.
func Filename(profile *models.DogProfile, now time.Time) string {
	dogName := "DogTracer"
	if profile != nil && profile.Name != "" {
		dogName = profile.Name
	}
	dogName = strings.Join(strings.Fields(dogName), "_")
	return fmt.Sprintf("%s_export_%s.json", dogName, now.UTC().Format("2006-01-02"))
}

// WriteFile generates the export and writes it to path. An empty path
// writes the default filename in the current directory. Returns the path
// written.
func WriteFile(database *db.DB, path string) (string, error) {
	data, err := Generate(database)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = Filename(data.Profile, time.Now())
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, out, 0644); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}
	return path, nil
}

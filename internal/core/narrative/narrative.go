// Package narrative renders the per-session summary sentences from a
// tone x session-type template table.
package narrative

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cbroglie/mustache"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

// DefaultPlace is interpolated when a session has no place label.
const DefaultPlace = "an adventure spot"

// Bank holds one template per tone and session type.
type Bank struct {
	templates map[models.SummaryTone]map[models.SessionType]string
}

// DefaultBank returns the built-in template table.
func DefaultBank() *Bank {
	return &Bank{templates: defaultTemplates}
}

// LoadBank returns the built-in table with any user overrides applied.
// An override lives at <dir>/<tone>_<type>.mustache and replaces that one
// cell; a missing or empty dir just yields the defaults.
func LoadBank(dir string) *Bank {
	if dir == "" {
		return DefaultBank()
	}

	templates := make(map[models.SummaryTone]map[models.SessionType]string, len(defaultTemplates))
	for t, row := range defaultTemplates {
		templates[t] = make(map[models.SessionType]string, len(row))
		for st, tmpl := range row {
			path := filepath.Join(dir, fmt.Sprintf("%s_%s.mustache", t, st))
			if data, err := os.ReadFile(path); err == nil {
				templates[t][st] = string(data)
			} else {
				templates[t][st] = tmpl
			}
		}
	}
	return &Bank{templates: templates}
}

// Describe renders the narrative sentence for one session. If the template
// cannot be rendered it falls back to a plain description rather than
// failing the whole summary.
func (b *Bank) Describe(t models.SummaryTone, st models.SessionType, dogName, placeLabel string, momentCount int) string {
	place := placeLabel
	if place == "" {
		place = DefaultPlace
	}
	plural := "s"
	if momentCount == 1 {
		plural = ""
	}

	tmpl, ok := b.templates[t][st]
	if !ok {
		return fmt.Sprintf("%s had a %s session at %s.", dogName, st, place)
	}

	out, err := mustache.Render(tmpl, map[string]interface{}{
		"dogName":     dogName,
		"placeLabel":  place,
		"momentCount": momentCount,
		"plural":      plural,
	})
	if err != nil {
		return fmt.Sprintf("%s had a %s session at %s.", dogName, st, place)
	}
	return out
}

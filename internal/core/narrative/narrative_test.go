package narrative

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

func TestDescribe_UpbeatWalk(t *testing.T) {
	bank := DefaultBank()
	got := bank.Describe(models.ToneUpbeat, models.SessionWalk, "Biscuit", "Riverside Park", 3)
	want := "Biscuit had an amazing walk at Riverside Park! 3 exciting moments captured."
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribe_SingularMoment(t *testing.T) {
	bank := DefaultBank()
	got := bank.Describe(models.ToneCalm, models.SessionWalk, "Biscuit", "the yard", 1)
	want := "Biscuit had a peaceful walk at the yard. 1 calm moment captured."
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestDescribe_DefaultPlace(t *testing.T) {
	bank := DefaultBank()
	got := bank.Describe(models.ToneUpbeat, models.SessionRest, "Biscuit", "", 2)
	if !strings.Contains(got, DefaultPlace) {
		t.Errorf("Expected default place in %q", got)
	}
}

func TestDescribe_AllCellsRender(t *testing.T) {
	bank := DefaultBank()
	tones := []models.SummaryTone{models.ToneUpbeat, models.ToneCalm, models.ToneProtective}
	for _, tn := range tones {
		for _, st := range models.SessionTypes {
			got := bank.Describe(tn, st, "Biscuit", "the park", 2)
			if got == "" {
				t.Errorf("Empty description for %s/%s", tn, st)
			}
			if strings.Contains(got, "{{") {
				t.Errorf("Unrendered template for %s/%s: %q", tn, st, got)
			}
		}
	}
}

func TestDescribe_ProtectiveSocial(t *testing.T) {
	bank := DefaultBank()
	got := bank.Describe(models.ToneProtective, models.SessionSocial, "Rex", "the dog run", 4)
	want := "Rex carefully assessed new friends at the dog run. Trust is earned!"
	if got != want {
		t.Errorf("Describe() = %q, want %q", got, want)
	}
}

func TestLoadBank_Override(t *testing.T) {
	dir := t.TempDir()
	override := "Custom: {{dogName}} at {{placeLabel}}."
	path := filepath.Join(dir, "upbeat_walk.mustache")
	if err := os.WriteFile(path, []byte(override), 0644); err != nil {
		t.Fatal(err)
	}

	bank := LoadBank(dir)
	got := bank.Describe(models.ToneUpbeat, models.SessionWalk, "Biscuit", "the beach", 2)
	if got != "Custom: Biscuit at the beach." {
		t.Errorf("Override not applied, got %q", got)
	}

	// Other cells keep the defaults.
	rest := bank.Describe(models.ToneUpbeat, models.SessionRest, "Biscuit", "", 1)
	if !strings.Contains(rest, "well-deserved rest") {
		t.Errorf("Default template lost: %q", rest)
	}
}

func TestLoadBank_MissingDir(t *testing.T) {
	bank := LoadBank("/nonexistent/dir")
	got := bank.Describe(models.ToneUpbeat, models.SessionWalk, "Biscuit", "the park", 2)
	if !strings.Contains(got, "amazing walk") {
		t.Errorf("Expected defaults for missing dir, got %q", got)
	}
}

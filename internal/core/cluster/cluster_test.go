package cluster

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
)

func moment(id string, ts time.Time, tags ...models.MomentTag) models.Moment {
	return models.Moment{
		ID:        id,
		Timestamp: ts,
		Tags:      tags,
	}
}

func withGPS(m models.Moment, lat, lon float64, place string) models.Moment {
	m.GPS = &models.GPSLocation{Latitude: lat, Longitude: lon, Accuracy: 10, PlaceLabel: place}
	return m
}

var day = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

func TestBuildSessions_Empty(t *testing.T) {
	if got := BuildSessions(nil); got != nil {
		t.Errorf("Expected nil for empty input, got %v", got)
	}
}

func TestBuildSessions_SingleMoment(t *testing.T) {
	sessions := BuildSessions([]models.Moment{moment("m1", day, models.TagRest)})
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Type != models.SessionRest {
		t.Errorf("Expected rest session, got %s", s.Type)
	}
	if len(s.MomentIDs) != 1 || s.MomentIDs[0] != "m1" {
		t.Errorf("Expected momentIds [m1], got %v", s.MomentIDs)
	}
	if !s.StartTime.Equal(day) || !s.EndTime.Equal(day) {
		t.Errorf("Expected start==end==%v, got %v..%v", day, s.StartTime, s.EndTime)
	}
	if len(s.KeyPhotoIDs) != 1 || s.KeyPhotoIDs[0] != "m1" {
		t.Errorf("Expected key photos [m1], got %v", s.KeyPhotoIDs)
	}
}

// Scenario: three walk moments within 5 minutes and ~20m form one session
// whose key photos are all three members.
func TestBuildSessions_SingleWalkCluster(t *testing.T) {
	moments := []models.Moment{
		withGPS(moment("m1", day, models.TagWalk), 40.7128, -74.0060, "Riverside Park"),
		withGPS(moment("m2", day.Add(2*time.Minute), models.TagWalk), 40.71285, -74.00605, ""),
		withGPS(moment("m3", day.Add(5*time.Minute), models.TagWalk), 40.7129, -74.0061, ""),
	}

	sessions := BuildSessions(moments)
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Type != models.SessionWalk {
		t.Errorf("Expected walk session, got %s", s.Type)
	}
	if len(s.MomentIDs) != 3 {
		t.Errorf("Expected 3 moments, got %d", len(s.MomentIDs))
	}
	if !reflect.DeepEqual(s.KeyPhotoIDs, []string{"m1", "m2", "m3"}) {
		t.Errorf("Expected key photos [m1 m2 m3], got %v", s.KeyPhotoIDs)
	}
	if s.PlaceLabel != "Riverside Park" {
		t.Errorf("Expected place label from first labeled moment, got %q", s.PlaceLabel)
	}
}

// Scenario: two rest moments 40 minutes apart with no GPS split into two
// one-member sessions.
func TestBuildSessions_TemporalSplit(t *testing.T) {
	moments := []models.Moment{
		moment("m1", day, models.TagRest),
		moment("m2", day.Add(40*time.Minute), models.TagRest),
	}

	sessions := BuildSessions(moments)
	if len(sessions) != 2 {
		t.Fatalf("Expected 2 sessions, got %d", len(sessions))
	}
	for i, s := range sessions {
		if s.Type != models.SessionRest {
			t.Errorf("Session %d: expected rest, got %s", i, s.Type)
		}
		if len(s.MomentIDs) != 1 {
			t.Errorf("Session %d: expected 1 moment, got %d", i, len(s.MomentIDs))
		}
	}
}

func TestBuildSessions_GapBoundary(t *testing.T) {
	// Exactly 30 minutes still clusters; a second more does not.
	at := BuildSessions([]models.Moment{
		moment("m1", day),
		moment("m2", day.Add(30*time.Minute)),
	})
	if len(at) != 1 {
		t.Errorf("Expected 30min gap to cluster, got %d sessions", len(at))
	}

	over := BuildSessions([]models.Moment{
		moment("m1", day),
		moment("m2", day.Add(30*time.Minute+time.Second)),
	})
	if len(over) != 2 {
		t.Errorf("Expected >30min gap to split, got %d sessions", len(over))
	}
}

func TestBuildSessions_DistanceGate(t *testing.T) {
	// Identical timestamps, ~157m apart: never cluster.
	far := BuildSessions([]models.Moment{
		withGPS(moment("m1", day), 0, 0, ""),
		withGPS(moment("m2", day), 0.00141, 0, ""),
	})
	if len(far) != 2 {
		t.Errorf("Expected >100m points to split, got %d sessions", len(far))
	}

	// Same two points but one side missing GPS: time rule alone applies.
	mixed := BuildSessions([]models.Moment{
		withGPS(moment("m1", day), 0, 0, ""),
		moment("m2", day),
	})
	if len(mixed) != 1 {
		t.Errorf("Expected missing GPS to fall back to time rule, got %d sessions", len(mixed))
	}
}

// The chain rule compares against the immediately preceding moment, so a
// slow drift can carry a session far beyond 100m from its start.
func TestBuildSessions_ChainRule(t *testing.T) {
	moments := []models.Moment{
		withGPS(moment("m1", day), 0, 0, ""),
		withGPS(moment("m2", day.Add(5*time.Minute)), 0.0008, 0, ""), // ~89m from m1
		withGPS(moment("m3", day.Add(10*time.Minute)), 0.0016, 0, ""), // ~89m from m2, ~178m from m1
	}

	sessions := BuildSessions(moments)
	if len(sessions) != 1 {
		t.Errorf("Expected chained drift to stay one session, got %d", len(sessions))
	}
}

func TestBuildSessions_Coverage(t *testing.T) {
	var moments []models.Moment
	for i := 0; i < 10; i++ {
		// Alternating 10 and 45 minute gaps produce several clusters.
		gap := time.Duration(i) * 10 * time.Minute
		if i%3 == 0 {
			gap += 45 * time.Minute
		}
		moments = append(moments, moment(fmt.Sprintf("m%d", i), day.Add(gap)))
	}

	sessions := BuildSessions(moments)
	seen := make(map[string]int)
	for _, s := range sessions {
		for _, id := range s.MomentIDs {
			seen[id]++
		}
		if len(s.KeyPhotoIDs) > 3 {
			t.Errorf("Session %s has %d key photos", s.ID, len(s.KeyPhotoIDs))
		}
		if len(s.KeyPhotoIDs) > len(s.MomentIDs) {
			t.Errorf("Session %s has more key photos than moments", s.ID)
		}
	}
	for _, m := range moments {
		if seen[m.ID] != 1 {
			t.Errorf("Moment %s appears in %d sessions, want exactly 1", m.ID, seen[m.ID])
		}
	}
}

func TestBuildSessions_TypePriority(t *testing.T) {
	tests := []struct {
		name string
		tags [][]models.MomentTag
		want models.SessionType
	}{
		{"walk beats play", [][]models.MomentTag{{models.TagPlay}, {models.TagWalk}}, models.SessionWalk},
		{"play beats training", [][]models.MomentTag{{models.TagTraining, models.TagPlay}}, models.SessionPlay},
		{"training beats social", [][]models.MomentTag{{models.TagSocial}, {models.TagTraining}}, models.SessionTraining},
		{"social beats rest", [][]models.MomentTag{{models.TagRest}, {models.TagSocial}}, models.SessionSocial},
		{"untyped defaults to rest", [][]models.MomentTag{{models.TagVet}, {models.TagBath}}, models.SessionRest},
		{"no tags defaults to rest", [][]models.MomentTag{nil}, models.SessionRest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var moments []models.Moment
			for i, tags := range tt.tags {
				moments = append(moments, moment(fmt.Sprintf("m%d", i), day.Add(time.Duration(i)*time.Minute), tags...))
			}
			sessions := BuildSessions(moments)
			if len(sessions) != 1 {
				t.Fatalf("Expected 1 session, got %d", len(sessions))
			}
			if sessions[0].Type != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, sessions[0].Type)
			}
		})
	}
}

func TestBuildSessions_BehaviorFlags(t *testing.T) {
	moments := []models.Moment{
		moment("m1", day, models.TagStress, models.TagWalk),
		moment("m2", day.Add(time.Minute), models.TagPlay, models.TagFeeding),
		moment("m3", day.Add(2*time.Minute), models.TagSocial, models.TagVet),
	}

	sessions := BuildSessions(moments)
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	// play and social both map to the social flag; walk and vet map to
	// nothing. Output follows canonical flag order.
	want := []models.BehaviorFlag{models.FlagTrigger, models.FlagSocial, models.FlagFood}
	if !reflect.DeepEqual(sessions[0].BehaviorFlags, want) {
		t.Errorf("Expected flags %v, got %v", want, sessions[0].BehaviorFlags)
	}
}

func TestBuildSessions_KeyPhotoSelection(t *testing.T) {
	var moments []models.Moment
	for i := 0; i < 5; i++ {
		moments = append(moments, moment(fmt.Sprintf("m%d", i), day.Add(time.Duration(i)*time.Minute)))
	}

	sessions := BuildSessions(moments)
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	want := []string{"m0", "m2", "m4"}
	if !reflect.DeepEqual(sessions[0].KeyPhotoIDs, want) {
		t.Errorf("Expected key photos %v, got %v", want, sessions[0].KeyPhotoIDs)
	}
}

func TestBuildSessions_TwoMomentKeyPhotos(t *testing.T) {
	sessions := BuildSessions([]models.Moment{
		moment("m1", day),
		moment("m2", day.Add(time.Minute)),
	})
	want := []string{"m1", "m2"}
	if !reflect.DeepEqual(sessions[0].KeyPhotoIDs, want) {
		t.Errorf("Expected key photos %v, got %v", want, sessions[0].KeyPhotoIDs)
	}
}

func TestBuildSessions_Deterministic(t *testing.T) {
	moments := []models.Moment{
		withGPS(moment("m1", day, models.TagWalk), 40.0, -74.0, "Park"),
		moment("m2", day.Add(10*time.Minute), models.TagPlay),
		moment("m3", day.Add(50*time.Minute), models.TagRest),
	}

	a := BuildSessions(moments)
	b := BuildSessions(moments)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("BuildSessions is not deterministic:\n%v\n%v", a, b)
	}
}

func TestBuildSessions_UnsortedInput(t *testing.T) {
	// Input arrives newest-first (storage order); clustering must sort.
	moments := []models.Moment{
		moment("m3", day.Add(10*time.Minute), models.TagWalk),
		moment("m1", day),
		moment("m2", day.Add(5*time.Minute)),
	}

	sessions := BuildSessions(moments)
	if len(sessions) != 1 {
		t.Fatalf("Expected 1 session, got %d", len(sessions))
	}
	s := sessions[0]
	if !s.StartTime.Equal(day) || !s.EndTime.Equal(day.Add(10*time.Minute)) {
		t.Errorf("Wrong bounds: %v..%v", s.StartTime, s.EndTime)
	}
	if s.KeyPhotoIDs[0] != "m1" {
		t.Errorf("Expected first key photo m1, got %v", s.KeyPhotoIDs)
	}
}

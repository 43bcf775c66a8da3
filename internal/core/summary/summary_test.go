package summary

import (
	"reflect"
	"testing"
	"time"

	"github.com/dogtracer/dogtracer/internal/core/models"
	"github.com/dogtracer/dogtracer/internal/core/narrative"
)

type fakeEntities map[string]*models.Entity

func (f fakeEntities) EntityByID(id string) (*models.Entity, error) {
	return f[id], nil
}

var day = time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC)

func moment(id string, ts time.Time, tags ...models.MomentTag) models.Moment {
	return models.Moment{ID: id, Timestamp: ts, Tags: tags}
}

func withMood(m models.Moment, mood models.MomentMood) models.Moment {
	m.Mood = mood
	return m
}

func withEntities(m models.Moment, ids ...string) models.Moment {
	m.EntityIDs = ids
	return m
}

func session(id string, typ models.SessionType, start, end time.Time, momentIDs ...string) models.Session {
	return models.Session{
		ID:        id,
		Type:      typ,
		StartTime: start,
		EndTime:   end,
		MomentIDs: momentIDs,
	}
}

func dogEntity(id, name string, rel models.DogRelationship) *models.Entity {
	return &models.Entity{
		ID:   id,
		Type: models.EntityDog,
		Name: name,
		Dog:  &models.DogMetadata{Sex: models.SexUnknown, Size: models.SizeUnknown, Relationship: rel},
	}
}

func profile(name string, temperament ...models.Temperament) *models.DogProfile {
	return &models.DogProfile{ID: "p1", Name: name, Temperament: temperament}
}

func TestBuildOverview_Totals(t *testing.T) {
	moments := []models.Moment{
		moment("m1", day),
		moment("m2", day.Add(5*time.Minute)),
		moment("m3", day.Add(2*time.Hour)),
	}
	sessions := []models.Session{
		session("s1", models.SessionWalk, day, day.Add(20*time.Minute), "m1", "m2"),
		session("s2", models.SessionRest, day.Add(2*time.Hour), day.Add(2*time.Hour+10*time.Minute), "m3"),
	}

	o := buildOverview(moments, sessions)
	if o.TotalMoments != 3 {
		t.Errorf("TotalMoments = %d, want 3", o.TotalMoments)
	}
	sum := 0
	for _, st := range models.SessionTypes {
		sum += o.SessionCounts[st]
	}
	if sum != len(sessions) {
		t.Errorf("Session counts sum to %d, want %d", sum, len(sessions))
	}
	if o.ActiveMinutes != 20 {
		t.Errorf("ActiveMinutes = %d, want 20", o.ActiveMinutes)
	}
	if o.RestMinutes != 10 {
		t.Errorf("RestMinutes = %d, want 10", o.RestMinutes)
	}
}

func TestBuildOverview_ZeroLengthSessionCountsOneMinute(t *testing.T) {
	sessions := []models.Session{
		session("s1", models.SessionPlay, day, day, "m1"),
	}
	o := buildOverview(nil, sessions)
	if o.ActiveMinutes != 1 {
		t.Errorf("ActiveMinutes = %d, want 1 for zero-length session", o.ActiveMinutes)
	}
}

// Scenario: calm at 09:00, excited at 09:10 and 09:20 gives exactly one
// mood shift at 09:10.
func TestBuildOverview_MoodShifts(t *testing.T) {
	moments := []models.Moment{
		withMood(moment("m1", day), models.MoodCalm),
		withMood(moment("m2", day.Add(10*time.Minute)), models.MoodExcited),
		withMood(moment("m3", day.Add(20*time.Minute)), models.MoodExcited),
	}

	o := buildOverview(moments, nil)
	want := []models.MoodShift{{From: models.MoodCalm, To: models.MoodExcited, Time: "09:10"}}
	if !reflect.DeepEqual(o.MoodShifts, want) {
		t.Errorf("MoodShifts = %+v, want %+v", o.MoodShifts, want)
	}
}

func TestBuildOverview_MoodShiftSkipsUnsetMoods(t *testing.T) {
	moments := []models.Moment{
		withMood(moment("m1", day), models.MoodCalm),
		moment("m2", day.Add(5*time.Minute)),
		withMood(moment("m3", day.Add(10*time.Minute)), models.MoodCalm),
	}
	o := buildOverview(moments, nil)
	if len(o.MoodShifts) != 0 {
		t.Errorf("Expected no shifts across unset moods, got %+v", o.MoodShifts)
	}
}

func TestBuildOverview_TopMoodTieBreak(t *testing.T) {
	// tired and playful both appear twice; tired is seen first
	// chronologically and wins the tie.
	moments := []models.Moment{
		withMood(moment("m1", day), models.MoodTired),
		withMood(moment("m2", day.Add(time.Minute)), models.MoodPlayful),
		withMood(moment("m3", day.Add(2*time.Minute)), models.MoodTired),
		withMood(moment("m4", day.Add(3*time.Minute)), models.MoodPlayful),
	}

	o := buildOverview(moments, nil)
	if o.TopMood != models.MoodTired || o.TopMoodCount != 2 {
		t.Errorf("TopMood = %s (%d), want tired (2)", o.TopMood, o.TopMoodCount)
	}
}

func TestBuildOverview_NoMoods(t *testing.T) {
	o := buildOverview([]models.Moment{moment("m1", day)}, nil)
	if o.TopMood != "" || o.TopMoodCount != 0 {
		t.Errorf("Expected no top mood, got %s (%d)", o.TopMood, o.TopMoodCount)
	}
}

func TestBuildHighlights(t *testing.T) {
	entities := fakeEntities{
		"e1": dogEntity("e1", "Luna", models.DogFriend),
		"e2": {ID: "e2", Type: models.EntityHuman, Name: "Sam", Human: &models.HumanMetadata{Relationship: models.HumanNeighbor}},
	}
	moments := []models.Moment{
		withEntities(moment("m1", day, models.TagWalk), "e1"),
		withEntities(moment("m2", day.Add(5*time.Minute)), "e1", "e2", "gone"),
	}
	s := session("s1", models.SessionWalk, day, day.Add(5*time.Minute), "m1", "m2")
	s.BehaviorFlags = []models.BehaviorFlag{models.FlagSocial}
	s.PlaceLabel = "Oak Street"

	got := buildHighlights([]models.Session{s}, moments, entities, narrative.DefaultBank(), models.ToneUpbeat, "Biscuit")
	if len(got) != 1 {
		t.Fatalf("Expected 1 highlight, got %d", len(got))
	}
	h := got[0]
	if h.TimeRange != "09:00 - 09:05" {
		t.Errorf("TimeRange = %q", h.TimeRange)
	}
	if !reflect.DeepEqual(h.Interactions, []string{"Luna", "Sam"}) {
		t.Errorf("Interactions = %v, want [Luna Sam]", h.Interactions)
	}
	if len(h.Tags) != 1 || h.Tags[0].Emoji != "🐾" || h.Tags[0].Label != "social" {
		t.Errorf("Tags = %+v", h.Tags)
	}
	want := "Biscuit had an amazing walk at Oak Street! 2 exciting moments captured."
	if h.Description != want {
		t.Errorf("Description = %q, want %q", h.Description, want)
	}
}

func TestBuildSocialMap(t *testing.T) {
	entities := fakeEntities{
		"e1": dogEntity("e1", "Luna", models.DogFriend),
		"e2": dogEntity("e2", "", models.DogUnknown),
	}
	moments := []models.Moment{
		withEntities(moment("m1", day), "e1"),
		withEntities(moment("m2", day.Add(time.Minute)), "e1", "e2"),
		withEntities(moment("m3", day.Add(2*time.Minute)), "e1", "missing"),
	}

	entries := buildSocialMap(moments, entities)
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries (dangling ref skipped), got %d", len(entries))
	}
	if entries[0].EntityID != "e1" || entries[0].EncounterCount != 3 {
		t.Errorf("Top entry = %+v, want e1 with 3 encounters", entries[0])
	}
	if entries[0].Outcome != "friend" {
		t.Errorf("Outcome = %q, want friend", entries[0].Outcome)
	}
	if !reflect.DeepEqual(entries[0].MomentIDs, []string{"m1", "m2", "m3"}) {
		t.Errorf("MomentIDs = %v", entries[0].MomentIDs)
	}
	if entries[1].Name != "Unknown Dog" {
		t.Errorf("Unnamed entity name = %q, want Unknown Dog", entries[1].Name)
	}
}

func TestBuildInsights_StressAndTraining(t *testing.T) {
	moments := []models.Moment{
		moment("m1", day, models.TagStress),
		moment("m2", day.Add(time.Minute), models.TagTraining),
		moment("m3", day.Add(2*time.Minute), models.TagTraining),
	}

	insights := buildInsights(moments, nil, profile("Biscuit"), models.ToneUpbeat)
	if len(insights) != 2 {
		t.Fatalf("Expected 2 insights, got %d", len(insights))
	}
	if insights[0].Type != models.InsightTrigger || insights[0].Title != "Stress Moments Detected" {
		t.Errorf("First insight = %+v", insights[0])
	}
	if !reflect.DeepEqual(insights[0].MomentIDs, []string{"m1"}) {
		t.Errorf("Trigger moment ids = %v", insights[0].MomentIDs)
	}
	if insights[1].Type != models.InsightWin || insights[1].Title != "Training Progress" {
		t.Errorf("Second insight = %+v", insights[1])
	}
	if insights[1].Description != "Amazing! 2 training moments today. Keep up the great work!" {
		t.Errorf("Win description = %q", insights[1].Description)
	}
}

func TestBuildInsights_CalmToneStressWording(t *testing.T) {
	moments := []models.Moment{moment("m1", day, models.TagStress)}
	insights := buildInsights(moments, nil, profile("Biscuit", models.TemperamentAnxious), models.ToneCalm)
	if len(insights) != 1 {
		t.Fatalf("Expected 1 insight, got %d", len(insights))
	}
	want := "Biscuit showed some stress signals today. Let's work on building confidence."
	if insights[0].Description != want {
		t.Errorf("Description = %q, want %q", insights[0].Description, want)
	}
}

func TestBuildInsights_CalmOverAnxious(t *testing.T) {
	moments := []models.Moment{
		withMood(moment("m1", day), models.MoodCalm),
		withMood(moment("m2", day.Add(time.Minute)), models.MoodCalm),
		withMood(moment("m3", day.Add(2*time.Minute)), models.MoodAnxious),
	}

	insights := buildInsights(moments, nil, nil, models.ToneUpbeat)
	if len(insights) != 1 || insights[0].Title != "More Calm Than Anxious" {
		t.Fatalf("Expected calm-over-anxious insight, got %+v", insights)
	}
	if !reflect.DeepEqual(insights[0].MomentIDs, []string{"m1", "m2"}) {
		t.Errorf("MomentIDs = %v, want calm moment ids", insights[0].MomentIDs)
	}

	// No anxious moments at all: no insight.
	noAnxious := buildInsights(moments[:2], nil, nil, models.ToneUpbeat)
	if len(noAnxious) != 0 {
		t.Errorf("Expected no insight without anxious moments, got %+v", noAnxious)
	}
}

func TestBuildInsights_RestHeavyDay(t *testing.T) {
	sessions := []models.Session{
		session("s1", models.SessionRest, day, day.Add(time.Hour), "m1"),
		session("s2", models.SessionRest, day.Add(2*time.Hour), day.Add(3*time.Hour), "m2"),
		session("s3", models.SessionRest, day.Add(4*time.Hour), day.Add(5*time.Hour), "m3"),
		session("s4", models.SessionWalk, day.Add(6*time.Hour), day.Add(7*time.Hour), "m4"),
	}

	insights := buildInsights(nil, sessions, nil, models.ToneUpbeat)
	found := false
	for _, i := range insights {
		if i.Title == "Rest-Heavy Day" {
			found = true
			if len(i.MomentIDs) != 0 {
				t.Errorf("Rest-heavy insight should carry no moment ids, got %v", i.MomentIDs)
			}
		}
	}
	if !found {
		t.Errorf("Expected Rest-Heavy Day insight: 3 rest > 2*1 walk")
	}
}

// Scenario: a day with only rest and play sessions recommends a walk at
// high priority.
func TestBuildRecommendations_NoWalk(t *testing.T) {
	overview := buildOverview(nil, []models.Session{
		session("s1", models.SessionRest, day, day.Add(time.Hour), "m1"),
		session("s2", models.SessionPlay, day.Add(2*time.Hour), day.Add(3*time.Hour), "m2"),
	})

	recs := buildRecommendations(overview, nil, profile("Biscuit"), models.ToneUpbeat)
	if len(recs) == 0 {
		t.Fatal("Expected recommendations")
	}
	if recs[0].Title != "Add a Walk Tomorrow" || recs[0].Priority != models.PriorityHigh {
		t.Errorf("First rec = %+v", recs[0])
	}
}

func TestBuildRecommendations_TriggerManagement(t *testing.T) {
	p := profile("Biscuit")
	p.Triggers = []string{"skateboards", "doorbells", "vacuums"}
	insights := []models.BehaviorInsight{{Type: models.InsightTrigger, Title: "Stress Moments Detected"}}
	overview := buildOverview(nil, []models.Session{
		session("s1", models.SessionWalk, day, day.Add(time.Hour), "m1"),
	})

	recs := buildRecommendations(overview, insights, p, models.ToneUpbeat)
	var found *models.Recommendation
	for i := range recs {
		if recs[i].Title == "Work on Trigger Management" {
			found = &recs[i]
		}
	}
	if found == nil {
		t.Fatal("Expected trigger management recommendation")
	}
	want := "Practice \"look at me\" or distance management near known triggers: skateboards, doorbells."
	if found.Description != want {
		t.Errorf("Description = %q, want %q (first two triggers only)", found.Description, want)
	}
}

func TestBuildRecommendations_OrderAndCap(t *testing.T) {
	// Construct a day that fires every rule.
	p := profile("Biscuit")
	p.Triggers = []string{"skateboards"}
	p.Goals = []string{"loose-leash walking"}
	insights := []models.BehaviorInsight{
		{Type: models.InsightTrigger, Title: "Stress Moments Detected"},
		{Type: models.InsightWin, Title: "Training Progress"},
	}
	overview := models.OverviewSection{
		SessionCounts: map[models.SessionType]int{
			models.SessionWalk: 0, models.SessionPlay: 0, models.SessionTraining: 0,
			models.SessionRest: 3, models.SessionSocial: 0,
		},
		ActiveMinutes: 10,
		RestMinutes:   60,
		TopMood:       models.MoodPlayful,
	}

	recs := buildRecommendations(overview, insights, p, models.ToneUpbeat)
	if len(recs) != 7 {
		t.Fatalf("Expected all 7 rules to fire, got %d", len(recs))
	}
	wantTitles := []string{
		"Add a Walk Tomorrow",
		"Work on Trigger Management",
		"Training Time",
		"Increase Activity",
		"Social Opportunity",
		"Build on Training Success",
		"Channel That Energy",
	}
	for i, want := range wantTitles {
		if recs[i].Title != want {
			t.Errorf("recs[%d].Title = %q, want %q", i, recs[i].Title, want)
		}
	}
}

func TestGenerate(t *testing.T) {
	entities := fakeEntities{"e1": dogEntity("e1", "Luna", models.DogFriend)}
	moments := []models.Moment{
		withEntities(withMood(moment("m1", day, models.TagWalk), models.MoodExcited), "e1"),
		withMood(moment("m2", day.Add(10*time.Minute), models.TagWalk), models.MoodExcited),
	}
	sessions := []models.Session{
		session("s1", models.SessionWalk, day, day.Add(10*time.Minute), "m1", "m2"),
	}

	got := Generate(Input{
		Date:     "2026-08-30",
		Moments:  moments,
		Sessions: sessions,
		Profile:  profile("Biscuit", models.TemperamentSocial),
	}, entities, narrative.DefaultBank())

	if got.Date != "2026-08-30" || got.DogName != "Biscuit" || got.Tone != models.ToneUpbeat {
		t.Errorf("Header fields = %s %s %s", got.Date, got.DogName, got.Tone)
	}
	if got.Overview.TotalMoments != 2 {
		t.Errorf("TotalMoments = %d", got.Overview.TotalMoments)
	}
	if len(got.TimelineHighlights) != 1 {
		t.Errorf("Expected 1 highlight, got %d", len(got.TimelineHighlights))
	}
	if len(got.SocialMap) != 1 || got.SocialMap[0].Name != "Luna" {
		t.Errorf("SocialMap = %+v", got.SocialMap)
	}
	if got.GeneratedAt.IsZero() {
		t.Error("GeneratedAt not set")
	}
}

func TestGenerate_NoProfile(t *testing.T) {
	got := Generate(Input{
		Date:    "2026-08-30",
		Moments: []models.Moment{moment("m1", day, models.TagRest)},
		Sessions: []models.Session{
			session("s1", models.SessionRest, day, day, "m1"),
		},
	}, fakeEntities{}, narrative.DefaultBank())

	if got.DogName != "Your Dog" {
		t.Errorf("DogName = %q, want Your Dog", got.DogName)
	}
	if got.Tone != models.ToneUpbeat {
		t.Errorf("Tone = %s, want upbeat", got.Tone)
	}
}

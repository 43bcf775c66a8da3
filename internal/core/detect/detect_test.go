package detect

import (
	"context"
	"encoding/base64"
	"math/rand"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/dogtracer/dogtracer/internal/core/db"
	"github.com/dogtracer/dogtracer/internal/core/models"
)

func TestGenerator_Bounds(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(42)))

	for i := 0; i < 200; i++ {
		entities := gen.Detections()

		var dogs, humans int
		for _, e := range entities {
			switch e.Type {
			case DetectedDog:
				dogs++
			case DetectedHuman:
				humans++
			}
			if e.Confidence < 70 || e.Confidence > 100 {
				t.Errorf("confidence %f out of [70, 100]", e.Confidence)
			}
			box := e.BoundingBox
			if box.X < 0 || box.Y < 0 || box.Width < 0.2 || box.Height < 0.3 {
				t.Errorf("implausible bounding box %+v", box)
			}
		}
		if dogs > 2 || humans > 2 {
			t.Errorf("got %d dogs and %d humans, max is 2 each", dogs, humans)
		}

		mood := gen.MoodInference()
		if mood.Confidence < 50 || mood.Confidence >= 100 {
			t.Errorf("mood confidence %d out of [50, 100)", mood.Confidence)
		}
		if _, err := models.ParseMomentMood(string(mood.Mood)); err != nil {
			t.Errorf("invalid mood %q", mood.Mood)
		}
	}
}

func TestGenerator_FirstDogIsPrimary(t *testing.T) {
	gen := NewGenerator(rand.New(rand.NewSource(7)))

	for i := 0; i < 100; i++ {
		entities := gen.Detections()
		dogIndex := 0
		for _, e := range entities {
			if e.Type != DetectedDog {
				continue
			}
			if dogIndex == 0 && e.Label != PrimaryDogLabel {
				t.Fatalf("first dog label = %q, want %s", e.Label, PrimaryDogLabel)
			}
			if dogIndex > 0 && e.Label == PrimaryDogLabel {
				t.Fatalf("non-first dog labeled primary")
			}
			dogIndex++
		}
	}
}

func TestLabelEntities(t *testing.T) {
	profile := &models.DogProfile{ID: "p1", Name: "Biscuit"}
	dogs := []models.Entity{
		{ID: "d1", Type: models.EntityDog, Name: "Biscuit", Dog: &models.DogMetadata{IsPrimary: true}},
		{ID: "d2", Type: models.EntityDog, Name: "Luna", Dog: &models.DogMetadata{Relationship: models.DogFriend}},
		{ID: "d3", Type: models.EntityDog, Dog: &models.DogMetadata{}}, // unnamed
	}
	humans := []models.Entity{
		{ID: "h1", Type: models.EntityHuman, Name: "Sam", Human: &models.HumanMetadata{Relationship: models.HumanNeighbor}},
	}

	detected := []DetectedEntity{
		{Type: DetectedDog, Label: "[PRIMARY_DOG]"},
		{Type: DetectedDog, Label: "[OTHER_DOG_1]"},
		{Type: DetectedDog, Label: "[OTHER_DOG_2]"}, // unnamed dog, no resolution
		{Type: DetectedHuman, Label: "[PERSON_1]"},
		{Type: DetectedHuman, Label: "[PERSON_2]"}, // no such human
	}

	labeled := LabelEntities(detected, profile, dogs, humans)
	if len(labeled) != 5 {
		t.Fatalf("got %d labeled entities", len(labeled))
	}

	if labeled[0].DisplayLabel != "Biscuit" || labeled[0].EntityID != "d1" {
		t.Errorf("primary dog = %q/%q", labeled[0].DisplayLabel, labeled[0].EntityID)
	}
	if labeled[1].DisplayLabel != "Luna" || labeled[1].EntityID != "d2" {
		t.Errorf("other dog 1 = %q/%q", labeled[1].DisplayLabel, labeled[1].EntityID)
	}
	if labeled[2].DisplayLabel != "[OTHER_DOG_2]" || labeled[2].EntityID != "" {
		t.Errorf("unnamed dog = %q/%q, want raw label", labeled[2].DisplayLabel, labeled[2].EntityID)
	}
	if labeled[3].DisplayLabel != "Sam" || labeled[3].EntityID != "h1" {
		t.Errorf("person 1 = %q/%q", labeled[3].DisplayLabel, labeled[3].EntityID)
	}
	if labeled[4].DisplayLabel != "[PERSON_2]" || labeled[4].EntityID != "" {
		t.Errorf("person 2 = %q/%q, want raw label", labeled[4].DisplayLabel, labeled[4].EntityID)
	}
}

func TestLabelEntities_NoProfileFallsBackToPrimaryDogName(t *testing.T) {
	dogs := []models.Entity{
		{ID: "d1", Type: models.EntityDog, Name: "Rex", Dog: &models.DogMetadata{IsPrimary: true}},
	}

	labeled := LabelEntities([]DetectedEntity{
		{Type: DetectedDog, Label: "[PRIMARY_DOG]"},
	}, nil, dogs, nil)

	if labeled[0].DisplayLabel != "Rex" || labeled[0].EntityID != "d1" {
		t.Errorf("primary dog = %q/%q, want Rex/d1", labeled[0].DisplayLabel, labeled[0].EntityID)
	}
}

func testServer(t *testing.T, failureRate float64) *httptest.Server {
	t.Helper()
	cfg := &ServerConfig{MinLatencyMs: 0, MaxLatencyMs: 0, FailureRate: failureRate}
	srv := NewServer(cfg, rand.New(rand.NewSource(1)), zerolog.Nop())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_RejectsBadRequests(t *testing.T) {
	ts := testServer(t, 0)
	client := NewClient(ts.URL)
	ctx := context.Background()

	if _, err := client.Detect(ctx, ""); err == nil {
		t.Error("empty photo data URL should be rejected")
	}
	if _, err := client.Detect(ctx, "not-a-data-url"); err == nil {
		t.Error("non-image data URL should be rejected")
	}
}

func TestServer_DetectSuccess(t *testing.T) {
	ts := testServer(t, 0)
	client := NewClient(ts.URL)

	resp, err := client.Detect(context.Background(), "data:image/jpeg;base64,AAAA")
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if !resp.Success {
		t.Error("Success = false")
	}
	if resp.MoodInference == nil {
		t.Fatal("MoodInference missing")
	}
	if resp.ProcessedAt == 0 {
		t.Error("ProcessedAt not set")
	}
}

func TestServer_SimulatedFailure(t *testing.T) {
	ts := testServer(t, 1.0)
	client := NewClient(ts.URL)

	_, err := client.Detect(context.Background(), "data:image/jpeg;base64,AAAA")
	if err == nil {
		t.Fatal("expected 503 failure")
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error = %v, want 503 status", err)
	}
}

func testProcessorDB(t *testing.T) *db.DB {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := db.New(tmpfile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func writeTestPhoto(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "photo.jpg")
	if err := os.WriteFile(path, []byte("fake jpeg bytes"), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestProcessMoment_Success(t *testing.T) {
	database := testProcessorDB(t)
	ts := testServer(t, 0)

	photo := writeTestPhoto(t)
	m := &models.Moment{
		ID:        "m1",
		PhotoPath: photo,
		Timestamp: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
	if err := database.SaveMoment(m); err != nil {
		t.Fatal(err)
	}

	proc := NewProcessor(database, NewClient(ts.URL), zerolog.Nop())
	res, err := proc.ProcessMoment(context.Background(), "m1")
	if err != nil {
		t.Fatalf("ProcessMoment() error = %v", err)
	}
	if res.Status != db.DetectionCompleted {
		t.Errorf("Status = %s", res.Status)
	}

	// Mood written back onto the moment
	got, err := database.MomentByID("m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mood == "" || got.MoodConfidence == nil {
		t.Errorf("mood not written back: %q/%v", got.Mood, got.MoodConfidence)
	}

	detection, err := database.DetectionByMomentID("m1")
	if err != nil {
		t.Fatal(err)
	}
	if detection == nil || detection.Status != db.DetectionCompleted {
		t.Fatalf("detection record = %+v", detection)
	}
}

func TestProcessMoment_FailsAfterMaxRetries(t *testing.T) {
	database := testProcessorDB(t)
	ts := testServer(t, 1.0)

	photo := writeTestPhoto(t)
	m := &models.Moment{
		ID:        "m1",
		PhotoPath: photo,
		Timestamp: time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
	}
	if err := database.SaveMoment(m); err != nil {
		t.Fatal(err)
	}

	proc := NewProcessor(database, NewClient(ts.URL), zerolog.Nop())
	proc.retryDelay = time.Millisecond

	res, err := proc.ProcessMoment(context.Background(), "m1")
	if err == nil {
		t.Fatal("expected failure after retries")
	}
	if res == nil || res.Status != db.DetectionFailed {
		t.Fatalf("result = %+v", res)
	}
	if res.Attempts != MaxRetries {
		t.Errorf("Attempts = %d, want %d", res.Attempts, MaxRetries)
	}

	detection, err := database.DetectionByMomentID("m1")
	if err != nil {
		t.Fatal(err)
	}
	if detection.Status != db.DetectionFailed || detection.ErrorMessage == "" {
		t.Errorf("detection = %+v", detection)
	}

	// Moment mood untouched on failure
	got, err := database.MomentByID("m1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Mood != "" {
		t.Errorf("mood = %q, want unset", got.Mood)
	}
}

func TestPhotoDataURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.png")
	content := []byte{0x89, 0x50, 0x4e, 0x47}
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatal(err)
	}

	url, err := PhotoDataURL(path)
	if err != nil {
		t.Fatalf("PhotoDataURL() error = %v", err)
	}
	want := "data:image/png;base64," + base64.StdEncoding.EncodeToString(content)
	if url != want {
		t.Errorf("PhotoDataURL() = %q, want %q", url, want)
	}

	if _, err := PhotoDataURL(filepath.Join(dir, "missing.jpg")); err == nil {
		t.Error("missing file should error")
	}
}

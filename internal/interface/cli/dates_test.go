package cli

import (
	"testing"
	"time"
)

func TestResolveDate(t *testing.T) {
	got, err := resolveDate("2026-08-29")
	if err != nil {
		t.Fatalf("resolveDate() error = %v", err)
	}
	if got != "2026-08-29" {
		t.Errorf("resolveDate(2026-08-29) = %q", got)
	}

	got, err = resolveDate("")
	if err != nil {
		t.Fatal(err)
	}
	if got != time.Now().UTC().Format("2006-01-02") {
		t.Errorf("resolveDate(\"\") = %q, want today", got)
	}

	got, err = resolveDate("2026/08/29")
	if err != nil {
		t.Fatal(err)
	}
	if got != "2026-08-29" {
		t.Errorf("resolveDate(2026/08/29) = %q", got)
	}

	if _, err := resolveDate("definitely not a date zzz"); err == nil {
		t.Error("gibberish should not parse")
	}
}

func TestResolveDate_NaturalLanguage(t *testing.T) {
	got, err := resolveDate("yesterday")
	if err != nil {
		t.Fatalf("resolveDate(yesterday) error = %v", err)
	}
	want := time.Now().AddDate(0, 0, -1).UTC().Format("2006-01-02")
	today := time.Now().UTC().Format("2006-01-02")
	// Local-to-UTC conversion can land on either side of midnight
	if got != want && got != today {
		t.Errorf("resolveDate(yesterday) = %q, want %q", got, want)
	}
}

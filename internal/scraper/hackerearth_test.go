package scraper

import (
	"os"
	"testing"
	"time"
)

func TestParseHackerEarth(t *testing.T) {
	f, err := os.Open("testdata/hackerearth.html")
	if err != nil {
		t.Fatalf("loading fixture: %v", err)
	}
	defer f.Close()

	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)
	events, err := parseHackerEarthAt(f, now)
	if err != nil {
		t.Fatalf("parseHackerEarthAt failed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events (nameless ad dropped), got %d", len(events))
	}

	first := events[0]
	if first.Title != "Build With AI 2026" {
		t.Errorf("title = %q", first.Title)
	}
	if first.Link != "https://www.hackerearth.com/challenges/hackathon/build-with-ai/" {
		t.Errorf("relative link not absolutized: %q", first.Link)
	}
	if first.ImageURL != "https://he-s3.s3.amazonaws.com/media/cache/images/build-with-ai.png" {
		t.Errorf("image not pulled from inline style: %q", first.ImageURL)
	}
	// 2 days 10 hours 30 minutes from the reference instant.
	if first.Date != "2026-01-17" {
		t.Errorf("countdown date = %q, want 2026-01-17", first.Date)
	}

	second := events[1]
	if second.Date != "" {
		t.Errorf("card without countdown should have no date, got %q", second.Date)
	}
	if second.Link != "https://www.hackerearth.com/challenges/hackathon/open-data-jam/" {
		t.Errorf("absolute link mangled: %q", second.Link)
	}
}

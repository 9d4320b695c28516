package scraper

import (
	"testing"
	"time"
)

const devpostFixture = `{
  "hackathons": [
    {
      "title": "SomeHack 2026",
      "url": "https://somehack.devpost.com/",
      "thumbnail_url": "//cdn.devpost.com/somehack.png",
      "submission_period_dates": "Apr 11 - 18, 2026",
      "displayed_location": {"location": "Online"},
      "organization_name": "SomeOrg"
    },
    {
      "title": "Winter Jam",
      "url": "https://winterjam.devpost.com/",
      "thumbnail_url": "https://cdn.devpost.com/winterjam.png",
      "submission_period_dates": "Dec 01, 2025 - Jan 07, 2026",
      "displayed_location": {"location": "Chennai, India"}
    },
    {
      "title": "",
      "url": "https://nameless.devpost.com/"
    },
    {
      "title": "No Dates Yet",
      "url": "https://nodates.devpost.com/",
      "submission_period_dates": ""
    }
  ]
}`

func TestParseDevpost(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	events, err := parseDevpostAt([]byte(devpostFixture), now)
	if err != nil {
		t.Fatalf("parseDevpostAt failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 events (nameless dropped), got %d", len(events))
	}

	first := events[0]
	if first.Date != "2026-04-18" {
		t.Errorf("range end not resolved, got %q", first.Date)
	}
	if first.ImageURL != "https://cdn.devpost.com/somehack.png" {
		t.Errorf("protocol-relative thumbnail not fixed, got %q", first.ImageURL)
	}
	if first.Organizer != "SomeOrg" {
		t.Errorf("organizer not carried, got %q", first.Organizer)
	}
	if first.Source != "Devpost" {
		t.Errorf("source = %q", first.Source)
	}

	if events[1].Date != "2026-01-07" {
		t.Errorf("cross-year range end = %q, want 2026-01-07", events[1].Date)
	}

	if events[2].Date != "" {
		t.Errorf("missing period should leave date empty, got %q", events[2].Date)
	}
}

func TestParseDevpostBadJSON(t *testing.T) {
	if _, err := parseDevpostAt([]byte("not json"), time.Now()); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestAbsoluteImageURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"//cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"https://cdn.example.com/a.png", "https://cdn.example.com/a.png"},
		{"http://cdn.example.com/a.png", "http://cdn.example.com/a.png"},
		{"", ""},
		{"data:image/png;base64,xyz", ""},
	}
	for _, tt := range tests {
		if got := absoluteImageURL(tt.in); got != tt.want {
			t.Errorf("absoluteImageURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

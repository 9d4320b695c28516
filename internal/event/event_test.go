package event

import (
	"testing"
	"time"
)

func TestDedupHash(t *testing.T) {
	a := New("SomeHack 2026", "https://example.com/a", "Devpost")
	a.Date = "2026-04-18"
	b := New("  somehack 2026  ", "https://example.com/b", "Unstop")
	b.Date = "2026-04-18"

	if a.DedupHash() != b.DedupHash() {
		t.Error("same title and date should hash identically regardless of case and source")
	}

	c := New("SomeHack 2026", "https://example.com/a", "Devpost")
	c.Date = "2026-04-19"
	if a.DedupHash() == c.DedupHash() {
		t.Error("different dates should hash differently")
	}
}

func TestMode(t *testing.T) {
	e := New("x", "https://example.com", "Devpost")
	if e.Mode() != "Online" {
		t.Errorf("expected Online, got %s", e.Mode())
	}
	e.Offline = true
	if e.Mode() != "Offline" {
		t.Errorf("expected Offline, got %s", e.Mode())
	}
}

func TestIsExpiredAt(t *testing.T) {
	today := time.Date(2026, time.January, 15, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		date string
		want bool
	}{
		{name: "past date", date: "2026-01-14", want: true},
		{name: "today is not expired", date: "2026-01-15", want: false},
		{name: "future date", date: "2026-04-18", want: false},
		{name: "no date", date: "", want: false},
		{name: "malformed date", date: "someday", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New("x", "https://example.com", "Devpost")
			e.Date = tt.date
			if got := e.IsExpiredAt(today); got != tt.want {
				t.Errorf("IsExpiredAt(%q) = %v, want %v", tt.date, got, tt.want)
			}
		})
	}
}

func TestDeduper(t *testing.T) {
	a := New("SomeHack", "https://example.com/a", "Devpost")
	a.Date = "2026-04-18"
	dup := New("somehack", "https://example.com/b", "Unstop")
	dup.Date = "2026-04-18"
	other := New("OtherHack", "https://example.com/c", "Devpost")
	other.Date = "2026-05-01"

	d := NewDeduper()
	unique := d.Deduplicate([]*Event{a, dup, other})
	if len(unique) != 2 {
		t.Fatalf("expected 2 unique events, got %d", len(unique))
	}
	if unique[0].Source != "Devpost" {
		t.Errorf("first seen should win, got source %s", unique[0].Source)
	}

	// The set persists across calls.
	again := d.Deduplicate([]*Event{a})
	if len(again) != 0 {
		t.Errorf("expected previously seen event to be dropped, got %d", len(again))
	}

	d.Reset()
	if got := d.Deduplicate([]*Event{a}); len(got) != 1 {
		t.Errorf("expected event to pass after reset, got %d", len(got))
	}
}

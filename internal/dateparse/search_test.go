package dateparse

import (
	"testing"
	"time"
)

func TestSearchDatesAt(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "single month name date",
			text: "join us on Apr 18, 2026 at the venue",
			want: []string{"2026-04-18"},
		},
		{
			name: "two dates in text order",
			text: "Early deadline: Jan 5, 2026. Final deadline: Feb 20, 2026.",
			want: []string{"2026-01-05", "2026-02-20"},
		},
		{
			name: "day before month",
			text: "submissions accepted until 18th April 2026",
			want: []string{"2026-04-18"},
		},
		{
			name: "iso date",
			text: "closes 2026-04-18 sharp",
			want: []string{"2026-04-18"},
		},
		{
			name: "numeric slash date",
			text: "ends 02/15/2026",
			want: []string{"2026-02-15"},
		},
		{
			name: "dotted two digit year",
			text: "final round 4.4.26",
			want: []string{"2026-04-04"},
		},
		{
			name: "yearless date in the future stays this year",
			text: "apply by Apr 18",
			want: []string{"2026-04-18"},
		},
		{
			name: "no dates",
			text: "the quick brown fox",
			want: nil,
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := searchDatesAt(tt.text, now)
			if len(got) != len(tt.want) {
				t.Fatalf("searchDatesAt(%q) returned %d dates, want %d", tt.text, len(got), len(tt.want))
			}
			for i, w := range tt.want {
				if f := formatCanonical(got[i]); f != w {
					t.Errorf("date %d = %s, want %s", i, f, w)
				}
			}
		})
	}
}

func TestSearchDatesPrefersFuture(t *testing.T) {
	// "March 3" seen in November resolves to next year's March 3, not the
	// one already passed.
	now := time.Date(2025, time.November, 10, 9, 0, 0, 0, time.UTC)
	dates := searchDatesAt("last date to register: March 3", now)
	if len(dates) != 1 {
		t.Fatalf("expected 1 date, got %d", len(dates))
	}
	if got := formatCanonical(dates[0]); got != "2026-03-03" {
		t.Errorf("expected 2026-03-03, got %s", got)
	}
}

func TestParseFlexibleAt(t *testing.T) {
	now := time.Date(2026, time.January, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		text string
		want string
		ok   bool
	}{
		{name: "month day year", text: "Apr 18, 2026", want: "2026-04-18", ok: true},
		{name: "lowercased", text: "apr 18, 2026", want: "2026-04-18", ok: true},
		{name: "ordinal suffix", text: "April 18th, 2026", want: "2026-04-18", ok: true},
		{name: "day first", text: "18 Apr 2026", want: "2026-04-18", ok: true},
		{name: "iso", text: "2026-04-18", want: "2026-04-18", ok: true},
		{name: "sept abbreviation", text: "Sept 5, 2026", want: "2026-09-05", ok: true},
		{name: "day first numeric rescue", text: "18/04/2026", want: "2026-04-18", ok: true},
		{name: "yearless future", text: "Apr 18", want: "2026-04-18", ok: true},
		{name: "garbage", text: "not a date", ok: false},
		{name: "empty", text: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFlexibleAt(tt.text, now)
			if ok != tt.ok {
				t.Fatalf("parseFlexibleAt(%q) ok = %v, want %v", tt.text, ok, tt.ok)
			}
			if ok && formatCanonical(got) != tt.want {
				t.Errorf("parseFlexibleAt(%q) = %s, want %s", tt.text, formatCanonical(got), tt.want)
			}
		})
	}
}

func TestPreferFuture(t *testing.T) {
	now := time.Date(2025, time.November, 10, 9, 0, 0, 0, time.UTC)

	past := time.Date(0, time.March, 3, 0, 0, 0, 0, time.UTC)
	if got := preferFuture(past, now); got.Year() != 2026 {
		t.Errorf("March 3 seen in November should resolve to 2026, got %d", got.Year())
	}

	future := time.Date(0, time.December, 25, 0, 0, 0, 0, time.UTC)
	if got := preferFuture(future, now); got.Year() != 2025 {
		t.Errorf("December 25 seen in November should stay 2025, got %d", got.Year())
	}

	// Today is kept, not pushed a year out.
	today := time.Date(0, time.November, 10, 0, 0, 0, 0, time.UTC)
	if got := preferFuture(today, now); got.Year() != 2025 {
		t.Errorf("today should stay in the current year, got %d", got.Year())
	}
}

package dateparse

import (
	"strings"
	"time"
)

// Listing sites often show a registration window as a range ("Apr 11 - 18,
// 2026" or "Dec 01, 2025 - Jan 07, 2026"). Only the close date matters, so
// the end of the range is always the selected date. When the end segment
// carries no month of its own, the month is borrowed from the start segment.

// ResolveRangeEnd extracts the end date of a date range. Returns "" when
// text holds no recognizable range.
func ResolveRangeEnd(text string) string {
	return ResolveRangeEndAt(text, time.Now())
}

// ResolveRangeEndAt is ResolveRangeEnd with an explicit reference instant.
func ResolveRangeEndAt(text string, now time.Time) string {
	normalized := normalizeWhitespace(text)
	if !strings.Contains(normalized, "-") {
		return ""
	}

	// Prefer a spaced separator so ISO dates inside the range survive the
	// split.
	sep := " - "
	if !strings.Contains(normalized, sep) {
		sep = "-"
	}
	parts := strings.SplitN(normalized, sep, 2)
	start := strings.TrimSpace(parts[0])
	end := strings.TrimSpace(parts[1])
	if end == "" {
		return ""
	}

	// "Apr 11 - 18, 2026": the end segment has no month name, so it borrows
	// the leading alphabetic token of the start segment.
	if !alphaRun.MatchString(end) {
		if month := alphaRun.FindString(start); month != "" {
			end = month + " " + end
		}
	}

	if t, ok := parseFlexibleAt(end, now); ok {
		return formatCanonical(t)
	}
	return ""
}

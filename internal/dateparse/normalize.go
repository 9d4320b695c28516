package dateparse

import (
	"strings"
	"time"
)

// Normalize standardizes an already-collected date value to canonical
// YYYY-MM-DD form. It accepts structured time values or raw strings, and is
// the second, independent validation gate run on every value before it is
// persisted: anything it cannot turn into a real calendar date comes back as
// "" and the record carrying it is dropped.
//
// Normalize is idempotent: a canonical date passes through unchanged.
func Normalize(value interface{}) string {
	return NormalizeAt(value, time.Now())
}

// NormalizeAt is Normalize with an explicit reference instant.
func NormalizeAt(value interface{}, now time.Time) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return formatCanonical(v)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return formatCanonical(*v)
	case string:
		return normalizeStringAt(v, now)
	default:
		return ""
	}
}

func normalizeStringAt(s string, now time.Time) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if IsCanonical(s) {
		return s
	}

	// Timestamps like "2026-04-18T23:59:00Z" reduce to their date part.
	if idx := strings.IndexByte(s, 'T'); idx > 0 && IsCanonical(s[:idx]) {
		return s[:idx]
	}

	if dates := searchDatesAt(s, now); len(dates) > 0 {
		return formatCanonical(dates[len(dates)-1])
	}
	if t, ok := parseFlexibleAt(s, now); ok {
		return formatCanonical(t)
	}
	return ""
}

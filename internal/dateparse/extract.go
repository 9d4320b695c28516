package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// strongDeadlinePatterns match explicitly labeled deadlines, most specific
// first. They run against lowercased, whitespace-collapsed text.
var strongDeadlinePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?:registration|application|submission)s?\s*(?:ends?|closes?|deadline)\s*(?:on|is|at)?\s*[:\-]?\s*([a-z]{3,9}\s+\d{1,2},?\s*\d{4})`),
	regexp.MustCompile(`(?:registration|application|submission)s?\s*(?:ends?|closes?|deadline)\s*(?:on|is|at)?\s*[:\-]?\s*(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})`),
	regexp.MustCompile(`deadline\s*[:\-]?\s*([a-z]{3,9}\s+\d{1,2},?\s*\d{4})`),
}

// deadlineKeywords, in priority order, anchor the snippet windows of the
// contextual scan.
var deadlineKeywords = []string{
	"registration ends",
	"registration end",
	"registration closes",
	"closes on",
	"closes in",
	"deadline",
	"submission deadline",
	"last date",
	"apply by",
	"applications close",
	"ends on",
}

const (
	// snippetWindow is how much text after a keyword is scanned for a date.
	snippetWindow = 150
	// wholeTextLimit gates the generic whole-text scan. Long pages are full
	// of navigation and footer dates, so the unanchored scan only runs on
	// short texts.
	wholeTextLimit = 1000
)

// ExtractDeadline runs the in-page extraction cascade over free text:
// countdown, labeled deadline patterns, keyword-windowed snippet scan, and a
// whole-text scan for short texts. Returns a canonical date or "".
func ExtractDeadline(text string) string {
	return ExtractDeadlineAt(text, time.Now())
}

// ExtractDeadlineAt is ExtractDeadline with an explicit reference instant.
func ExtractDeadlineAt(text string, now time.Time) string {
	lowered := strings.ToLower(normalizeWhitespace(text))
	if lowered == "" {
		return ""
	}

	if d := parseLabeledCountdownAt(lowered, now); d != "" {
		return d
	}

	for _, p := range strongDeadlinePatterns {
		m := p.FindStringSubmatch(lowered)
		if m == nil {
			continue
		}
		if t, ok := parseFlexibleAt(m[1], now); ok {
			return formatCanonical(t)
		}
	}

	for _, key := range deadlineKeywords {
		idx := strings.Index(lowered, key)
		if idx < 0 {
			continue
		}
		end := idx + snippetWindow
		if end > len(lowered) {
			end = len(lowered)
		}
		if dates := searchDatesAt(lowered[idx:end], now); len(dates) > 0 {
			return formatCanonical(dates[len(dates)-1])
		}
	}

	if len(lowered) < wholeTextLimit {
		if dates := searchDatesAt(lowered, now); len(dates) > 0 {
			return formatCanonical(dates[len(dates)-1])
		}
	}

	return ""
}

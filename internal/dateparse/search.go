package dateparse

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

// The functions here stand in for a natural-language date interpreter: they
// locate date-like expressions in free text, parse them, and resolve
// year-ambiguous expressions to the nearest future occurrence.

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)`

var candidatePatterns = []*regexp.Regexp{
	// "Apr 18, 2026", "April 18" (year optional)
	regexp.MustCompile(`(?i)\b` + monthPattern + `\.?\s+\d{1,2}(?:st|nd|rd|th)?(?:,?\s*\d{4})?\b`),
	// "18 April 2026", "18th Apr" (year optional)
	regexp.MustCompile(`(?i)\b\d{1,2}(?:st|nd|rd|th)?\s+` + monthPattern + `\.?(?:,?\s*\d{4})?\b`),
	// "2026-04-18"
	regexp.MustCompile(`\b\d{4}-\d{2}-\d{2}\b`),
	// "4/18/2026", "4.4.26", "18-04-2026"
	regexp.MustCompile(`\b\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}\b`),
}

var (
	ordinalSuffix  = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)\b`)
	fourDigitYear  = regexp.MustCompile(`\d{4}`)
	alphaRun       = regexp.MustCompile(`[a-zA-Z]+`)
	septAbbrev     = regexp.MustCompile(`(?i)\bsept\b\.?`)
	numericDateExp = regexp.MustCompile(`^\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4}$`)
)

// layouts tried for expressions that carry a year. Month-first numeric forms
// come before day-first ones, matching how the listing sites write dates;
// day-first is a rescue for unambiguous cases like "18-04-2026".
var datedLayouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"2 Jan, 2006",
	"2006-01-02",
	"1/2/2006",
	"1/2/06",
	"1-2-2006",
	"1.2.2006",
	"1.2.06",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
}

// layouts for month-day expressions with no year; the year is inferred
// future-preferring.
var yearlessLayouts = []string{
	"January 2",
	"Jan 2",
	"2 January",
	"2 Jan",
}

type candidate struct {
	start int
	end   int
	text  string
}

// searchDatesAt scans text for date expressions and returns the parsed dates
// in order of appearance. Callers that need a single date take the last one.
func searchDatesAt(text string, now time.Time) []time.Time {
	normalized := normalizeWhitespace(text)
	if normalized == "" {
		return nil
	}

	var cands []candidate
	for _, p := range candidatePatterns {
		for _, loc := range p.FindAllStringIndex(normalized, -1) {
			cands = append(cands, candidate{loc[0], loc[1], normalized[loc[0]:loc[1]]})
		}
	}
	if len(cands) == 0 {
		return nil
	}

	// Text order; when two patterns hit the same spot, keep the longer match.
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].start != cands[j].start {
			return cands[i].start < cands[j].start
		}
		return cands[i].end > cands[j].end
	})

	var dates []time.Time
	lastEnd := -1
	for _, c := range cands {
		if c.start < lastEnd {
			continue
		}
		if t, ok := parseCandidateAt(c.text, now); ok {
			dates = append(dates, t)
			lastEnd = c.end
		}
	}
	return dates
}

// parseCandidateAt parses a single date expression located by the candidate
// patterns.
func parseCandidateAt(s string, now time.Time) (time.Time, bool) {
	s = cleanDateExpr(s)
	if s == "" {
		return time.Time{}, false
	}

	if fourDigitYear.MatchString(s) || numericDateExp.MatchString(s) {
		for _, layout := range datedLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return preferFuture(t, now), true
		}
	}
	return time.Time{}, false
}

// parseFlexibleAt attempts a direct single-date parse of an arbitrary string:
// known layouts first, then a natural-language parse biased to the future.
func parseFlexibleAt(s string, now time.Time) (time.Time, bool) {
	s = normalizeWhitespace(s)
	if s == "" {
		return time.Time{}, false
	}

	cleaned := cleanDateExpr(s)
	for _, layout := range datedLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	for _, layout := range yearlessLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return preferFuture(t, now), true
		}
	}

	return parseNatural(s, now)
}

// parseNatural defers to the natural-language parser for expressions like
// "next friday" or "december 25th". The parser is regex-driven and has
// panicked on unusual inputs, so failures of any kind degrade to no-date.
func parseNatural(s string, now time.Time) (t time.Time, ok bool) {
	defer func() {
		if recover() != nil {
			t, ok = time.Time{}, false
		}
	}()

	parsed, err := naturaldate.Parse(s, now, naturaldate.WithDirection(naturaldate.Future))
	if err != nil {
		return time.Time{}, false
	}
	// The parser falls back to the reference time when it finds no date
	// expression at all; treat that as a miss.
	if parsed.Equal(now) {
		return time.Time{}, false
	}
	return parsed, true
}

// preferFuture resolves a year-ambiguous date to its nearest future
// occurrence: a parsed month-day already behind today moves to next year.
func preferFuture(t time.Time, now time.Time) time.Time {
	resolved := time.Date(now.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if resolved.Before(today) {
		resolved = resolved.AddDate(1, 0, 0)
	}
	return resolved
}

// cleanDateExpr prepares a date expression for layout parsing: ordinal
// suffixes go, "Sept" becomes the layout-friendly "Sep", abbreviation dots
// are stripped (but dotted numeric dates like "4.4.26" are kept intact), and
// alphabetic tokens are capitalized so lowercased text still matches month
// layouts.
func cleanDateExpr(s string) string {
	s = ordinalSuffix.ReplaceAllString(s, "$1")
	s = septAbbrev.ReplaceAllString(s, "Sep")
	if !numericDateExp.MatchString(strings.TrimSpace(s)) {
		s = strings.ReplaceAll(s, ".", " ")
	}
	return capitalizeWords(normalizeWhitespace(s))
}

// capitalizeWords uppercases the first letter of each alphabetic token so
// that lowercased text still matches time.Parse month layouts.
func capitalizeWords(s string) string {
	return alphaRun.ReplaceAllStringFunc(s, func(w string) string {
		return strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	})
}

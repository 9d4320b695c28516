package dateparse

import (
	"regexp"
	"strings"
	"time"
)

// canonicalLayout is the only date representation ever persisted or compared.
const canonicalLayout = "2006-01-02"

var canonicalPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsCanonical reports whether s is a valid YYYY-MM-DD calendar date.
func IsCanonical(s string) bool {
	if !canonicalPattern.MatchString(s) {
		return false
	}
	_, err := time.Parse(canonicalLayout, s)
	return err == nil
}

// formatCanonical renders t as a canonical date string, discarding
// time-of-day and timezone.
func formatCanonical(t time.Time) string {
	return t.Format(canonicalLayout)
}

// normalizeWhitespace collapses all whitespace runs to single spaces and
// unifies dash variants, so countdown widgets and multi-line HTML text can be
// matched with simple patterns.
func normalizeWhitespace(text string) string {
	text = strings.NewReplacer("–", "-", "—", "-").Replace(text)
	return strings.Join(strings.Fields(text), " ")
}

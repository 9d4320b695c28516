// Package filter narrows collected listings by location keywords. The
// default region covers the Chennai metropolitan area, where the aggregated
// dataset is served; the keyword list is configurable so other deployments
// can retarget it.
package filter

import (
	"regexp"
	"strings"

	"github.com/rsrinivasan/hackradar/internal/event"
)

// DefaultRegionKeywords are localities that identify a Chennai-area venue.
var DefaultRegionKeywords = []string{
	"chennai", "thandalam", "kattankulathur", "omr", "guindy",
	"vadapalani", "tambaram", "chromepet", "avadi", "porur",
	"sholinganallur", "velachery", "adyar", "nungambakkam",
	"thiruvanmiyur", "sriperumbudur", "chengalpattu", "kelambakkam",
}

// Region matches event locations against a whole-word keyword list,
// case-insensitively.
type Region struct {
	pattern *regexp.Regexp
}

// NewRegion builds a Region from keywords. An empty list falls back to the
// default Chennai-area set.
func NewRegion(keywords []string) *Region {
	if len(keywords) == 0 {
		keywords = DefaultRegionKeywords
	}
	escaped := make([]string, len(keywords))
	for i, k := range keywords {
		escaped[i] = regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(k)))
	}
	p := regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
	return &Region{pattern: p}
}

// Matches reports whether a location string names the region.
func (r *Region) Matches(location string) bool {
	if location == "" {
		return false
	}
	return r.pattern.MatchString(location)
}

// Apply keeps only events whose location matches the region.
func (r *Region) Apply(events []*event.Event) []*event.Event {
	kept := make([]*event.Event, 0, len(events))
	for _, e := range events {
		if r.Matches(e.Location) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Count returns how many events fall inside the region, without filtering.
func (r *Region) Count(events []*event.Event) int {
	n := 0
	for _, e := range events {
		if r.Matches(e.Location) {
			n++
		}
	}
	return n
}

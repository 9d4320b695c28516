package cli

import (
	"sort"
	"strings"

	"github.com/rsrinivasan/hackradar/internal/event"
)

// SortOrder represents the available sorting options.
type SortOrder string

const (
	SortByDate   SortOrder = "date"
	SortByTitle  SortOrder = "title"
	SortBySource SortOrder = "source"
)

// sortEvents sorts a slice of events based on the specified sort order.
// Unknown orders leave the slice as-is.
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.Slice(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.Slice(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			return compareByDate(events[i], events[j])
		})
	case SortBySource:
		sort.Slice(events, func(i, j int) bool {
			if events[i].Source != events[j].Source {
				return events[i].Source < events[j].Source
			}
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate orders by the canonical date string, which sorts
// chronologically. Dateless events sink to the end.
func compareByDate(i, j *event.Event) bool {
	if i.Date != j.Date {
		if i.Date == "" {
			return false
		}
		if j.Date == "" {
			return true
		}
		return i.Date < j.Date
	}
	return strings.ToLower(i.Title) < strings.ToLower(j.Title)
}

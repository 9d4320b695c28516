package event

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"
)

// Event represents one hackathon listing collected from a source platform.
// Date, when set, is always a canonical YYYY-MM-DD registration-end date;
// empty means no date has been resolved yet.
type Event struct {
	Title     string `json:"title"`
	Organizer string `json:"organizer,omitempty"`
	Date      string `json:"reg_end_date,omitempty"`
	Location  string `json:"location,omitempty"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Offline   bool   `json:"is_offline"`
	ImageURL  string `json:"image_url,omitempty"`
	Themes    string `json:"themes,omitempty"`
}

// New creates an Event with the required identity fields.
func New(title, link, source string) *Event {
	return &Event{
		Title:  strings.TrimSpace(title),
		Link:   link,
		Source: source,
	}
}

// DedupHash returns a deterministic identity for cross-source deduplication,
// derived from the normalized title and the resolved date. Two sources
// listing the same hackathon with the same close date collapse to one record.
func (e *Event) DedupHash() string {
	raw := strings.ToLower(strings.TrimSpace(e.Title)) + "|" + e.Date
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// Mode renders the offline flag the way the datastore stores it.
func (e *Event) Mode() string {
	if e.Offline {
		return "Offline"
	}
	return "Online"
}

// HasDate reports whether a registration-end date has been resolved.
func (e *Event) HasDate() bool {
	return e.Date != ""
}

// IsExpiredAt reports whether the registration-end date is strictly before
// the given day. Events without a parseable date are not considered expired;
// the no-date drop happens elsewhere.
func (e *Event) IsExpiredAt(today time.Time) bool {
	if e.Date == "" {
		return false
	}
	d, err := time.Parse("2006-01-02", e.Date)
	if err != nil {
		return false
	}
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	return d.Before(midnight)
}

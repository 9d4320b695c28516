package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rsrinivasan/hackradar/internal/dateparse"
	"github.com/rsrinivasan/hackradar/internal/event"
)

// DevpostURL lists upcoming online hackathons as JSON.
const DevpostURL = "https://devpost.com/api/hackathons?challenge_type[]=online&status[]=upcoming"

// DevpostSource reads Devpost's hackathon API. Submission periods arrive as
// date ranges ("Apr 11 - 18, 2026"); the close date is the range end.
type DevpostSource struct {
	fetcher *Fetcher
	url     string
}

// NewDevpostSource creates the Devpost source.
func NewDevpostSource(f *Fetcher) *DevpostSource {
	return &DevpostSource{fetcher: f, url: DevpostURL}
}

// Name implements Source.
func (s *DevpostSource) Name() string { return "Devpost" }

// Fetch implements Source.
func (s *DevpostSource) Fetch(ctx context.Context) ([]*event.Event, error) {
	body, err := s.fetcher.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching devpost api: %w", err)
	}
	return parseDevpostAt(body, time.Now())
}

type devpostPayload struct {
	Hackathons []struct {
		Title             string `json:"title"`
		URL               string `json:"url"`
		ThumbnailURL      string `json:"thumbnail_url"`
		SubmissionPeriod  string `json:"submission_period_dates"`
		DisplayedLocation struct {
			Location string `json:"location"`
		} `json:"displayed_location"`
		OrganizationName string `json:"organization_name"`
	} `json:"hackathons"`
}

func parseDevpostAt(data []byte, now time.Time) ([]*event.Event, error) {
	var payload devpostPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding devpost api: %w", err)
	}

	events := make([]*event.Event, 0, len(payload.Hackathons))
	for _, h := range payload.Hackathons {
		title := strings.TrimSpace(h.Title)
		if title == "" || h.URL == "" {
			continue
		}

		e := event.New(title, h.URL, "Devpost")
		e.Organizer = h.OrganizationName
		e.Location = h.DisplayedLocation.Location
		e.ImageURL = absoluteImageURL(h.ThumbnailURL)
		e.Date = dateparse.ResolveRangeEndAt(h.SubmissionPeriod, now)

		events = append(events, e)
	}
	return events, nil
}

// absoluteImageURL fixes protocol-relative thumbnails ("//cdn...").
func absoluteImageURL(raw string) string {
	switch {
	case raw == "":
		return ""
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "http"):
		return raw
	default:
		return ""
	}
}

package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rsrinivasan/hackradar/internal/dateparse"
	"github.com/rsrinivasan/hackradar/internal/event"
)

// maxPerFeed caps how many entries a single feed contributes per run.
const maxPerFeed = 20

// Feed identifies one configured RSS/Atom feed of event announcements.
type Feed struct {
	Name string
	URL  string
}

// FeedSource turns user-configured RSS/Atom feeds into listings. Some
// organizers publish announcement feeds; deadlines are extracted from entry
// titles and descriptions through the usual cascade.
type FeedSource struct {
	parser *gofeed.Parser
	feeds  []Feed
}

// NewFeedSource creates a source over the given feeds.
func NewFeedSource(feeds []Feed) *FeedSource {
	parser := gofeed.NewParser()
	parser.UserAgent = UserAgent
	return &FeedSource{parser: parser, feeds: feeds}
}

// Name implements Source.
func (s *FeedSource) Name() string { return "Feeds" }

// Fetch implements Source.
func (s *FeedSource) Fetch(ctx context.Context) ([]*event.Event, error) {
	now := time.Now()
	var all []*event.Event
	var lastErr error

	for _, f := range s.feeds {
		feed, err := s.parser.ParseURLWithContext(f.URL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("parsing feed %s: %w", f.URL, err)
			continue
		}
		all = append(all, feedEvents(feed, f.Name, now)...)
	}

	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return all, nil
}

func feedEvents(feed *gofeed.Feed, sourceName string, now time.Time) []*event.Event {
	if sourceName == "" {
		sourceName = feed.Title
	}
	if sourceName == "" {
		sourceName = "Feed"
	}

	items := feed.Items
	if len(items) > maxPerFeed {
		items = items[:maxPerFeed]
	}

	events := make([]*event.Event, 0, len(items))
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		if title == "" || item.Link == "" {
			continue
		}

		e := event.New(title, item.Link, sourceName)
		if item.Image != nil {
			e.ImageURL = item.Image.URL
		}
		e.Date = dateparse.ExtractDeadlineAt(title+" "+item.Description, now)

		events = append(events, e)
	}
	return events
}

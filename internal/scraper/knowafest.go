package scraper

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/rsrinivasan/hackradar/internal/dateparse"
	"github.com/rsrinivasan/hackradar/internal/event"
)

// KnowafestURL lists college fests in the Chennai area.
const KnowafestURL = "https://www.knowafest.com/college-fests/city/chennai"

// knowafestDetailLimit caps how many detail pages one run visits.
const knowafestDetailLimit = 30

// techKeywords gate Knowafest listings to hackathon-adjacent events; the
// site mixes in cultural fests.
var techKeywords = []string{
	"hackathon", "hack", "code", "coding", "tech",
	"programming", "software", "ai", "ml", "data",
}

// KnowafestSource crawls the Knowafest listing and visits event detail pages
// for relevance and deadline extraction. Listings here are offline
// college-hosted events.
type KnowafestSource struct {
	fetcher     *Fetcher
	url         string
	detailLimit int
}

// NewKnowafestSource creates the Knowafest source.
func NewKnowafestSource(f *Fetcher) *KnowafestSource {
	return &KnowafestSource{fetcher: f, url: KnowafestURL, detailLimit: knowafestDetailLimit}
}

// SetDetailLimit overrides how many detail pages one run visits.
func (s *KnowafestSource) SetDetailLimit(n int) {
	if n > 0 {
		s.detailLimit = n
	}
}

// Name implements Source.
func (s *KnowafestSource) Name() string { return "Knowafest" }

// Fetch implements Source.
func (s *KnowafestSource) Fetch(ctx context.Context) ([]*event.Event, error) {
	listed, err := s.crawlListing()
	if err != nil {
		return nil, err
	}

	if len(listed) > s.detailLimit {
		listed = listed[:s.detailLimit]
	}

	now := time.Now()
	kept := make([]*event.Event, 0, len(listed))
	for _, e := range listed {
		body, err := s.fetcher.Get(ctx, e.Link)
		if err != nil {
			// A dead detail page drops just this listing.
			continue
		}
		text, err := htmlText(body)
		if err != nil {
			continue
		}
		if !enrichFromDetailAt(e, text, now) {
			continue
		}
		kept = append(kept, e)
	}
	return kept, nil
}

// crawlListing collects event links and titles from the listing page.
func (s *KnowafestSource) crawlListing() ([]*event.Event, error) {
	var listed []*event.Event
	seen := make(map[string]bool)

	c := colly.NewCollector(colly.UserAgent(UserAgent))
	c.SetRequestTimeout(Timeout)

	c.OnHTML("a[href*='/college-fests/events/']", func(el *colly.HTMLElement) {
		link := el.Request.AbsoluteURL(el.Attr("href"))
		title := strings.TrimSpace(el.Text)
		if link == "" || seen[link] || len(title) < 3 {
			return
		}
		seen[link] = true

		e := event.New(title, link, "Knowafest")
		e.Location = "Chennai"
		e.Offline = true
		listed = append(listed, e)
	})

	if err := c.Visit(s.url); err != nil {
		return nil, fmt.Errorf("crawling knowafest listing: %w", err)
	}
	return listed, nil
}

// enrichFromDetailAt applies the relevance gate and deadline extraction to a
// detail page's text. Returns false when the event is not hackathon-adjacent
// and should be dropped.
func enrichFromDetailAt(e *event.Event, text string, now time.Time) bool {
	lowered := strings.ToLower(text)

	relevant := false
	for _, kw := range techKeywords {
		if strings.Contains(lowered, kw) {
			relevant = true
			break
		}
	}
	if !relevant {
		return false
	}

	e.Date = dateparse.ExtractDeadlineAt(text, now)
	return true
}

// htmlText strips markup and returns the page's visible text.
func htmlText(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parsing detail page: %w", err)
	}
	return doc.Text(), nil
}

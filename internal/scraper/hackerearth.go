package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/rsrinivasan/hackradar/internal/dateparse"
	"github.com/rsrinivasan/hackradar/internal/event"
)

// HackerEarthURL lists live hackathon challenges.
const HackerEarthURL = "https://www.hackerearth.com/challenges/hackathon/"

var cssURLPattern = regexp.MustCompile(`url\(["']?(.*?)["']?\)`)

// HackerEarthSource parses the challenge listing HTML. Registration close is
// shown only as a countdown widget, so the date is recovered by adding the
// remaining time to the capture instant.
type HackerEarthSource struct {
	fetcher *Fetcher
	url     string
}

// NewHackerEarthSource creates the HackerEarth source.
func NewHackerEarthSource(f *Fetcher) *HackerEarthSource {
	return &HackerEarthSource{fetcher: f, url: HackerEarthURL}
}

// Name implements Source.
func (s *HackerEarthSource) Name() string { return "HackerEarth" }

// Fetch implements Source.
func (s *HackerEarthSource) Fetch(ctx context.Context) ([]*event.Event, error) {
	body, err := s.fetcher.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching hackerearth: %w", err)
	}
	return parseHackerEarthAt(bytes.NewReader(body), time.Now())
}

func parseHackerEarthAt(r io.Reader, now time.Time) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing hackerearth html: %w", err)
	}

	var events []*event.Event
	doc.Find(".challenge-card-modern").Each(func(i int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find(".challenge-name").First().Text())
		if title == "" {
			// Cards without a name are ads or placeholders.
			return
		}

		link, _ := card.Find("a.challenge-card-wrapper").First().Attr("href")
		if link == "" {
			return
		}
		if strings.HasPrefix(link, "/") {
			link = "https://www.hackerearth.com" + link
		}

		e := event.New(title, link, "HackerEarth")

		// Background image arrives as an inline style.
		if style, ok := card.Find(".event-image").First().Attr("style"); ok {
			if m := cssURLPattern.FindStringSubmatch(style); m != nil {
				e.ImageURL = m[1]
			}
		}

		// A missing or unparsable countdown leaves the date empty; the
		// pipeline's fallback stages take over from there.
		countdown := card.Find(".date-countdown").First().Text()
		e.Date = dateparse.ParseCountdownAt(countdown, now)

		events = append(events, e)
	})

	return events, nil
}

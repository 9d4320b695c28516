package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rsrinivasan/hackradar/internal/event"
)

// UnstopURL is the public opportunity search API filtered to open hackathons.
const UnstopURL = "https://unstop.com/api/public/opportunity/search-new?opportunity=hackathons&oppstatus=open"

// UnstopSource reads Unstop's search API. Registration end dates live in
// several alternative fields depending on the opportunity type; the first
// populated one wins.
type UnstopSource struct {
	fetcher *Fetcher
	url     string
}

// NewUnstopSource creates the Unstop source.
func NewUnstopSource(f *Fetcher) *UnstopSource {
	return &UnstopSource{fetcher: f, url: UnstopURL}
}

// Name implements Source.
func (s *UnstopSource) Name() string { return "Unstop" }

// Fetch implements Source.
func (s *UnstopSource) Fetch(ctx context.Context) ([]*event.Event, error) {
	body, err := s.fetcher.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("fetching unstop api: %w", err)
	}
	return parseUnstop(body)
}

type unstopOpportunity struct {
	Title            string `json:"title"`
	PublicURL        string `json:"public_url"`
	City             string `json:"city"`
	LogoURL          string `json:"logoUrl"`
	LogoURL2         string `json:"logoUrl2"`
	EndDate          string `json:"end_date"`
	Deadline         string `json:"deadline"`
	RegnRequirements struct {
		EndRegnDt string `json:"end_regn_dt"`
	} `json:"regnRequirements"`
	Organisation struct {
		Name string `json:"name"`
	} `json:"organisation"`
	EligibleFor struct {
		IsOffline bool `json:"is_offline"`
	} `json:"oppstatus_eligible_for"`
}

type unstopPayload struct {
	Data struct {
		Data []unstopOpportunity `json:"data"`
	} `json:"data"`
}

func parseUnstop(data []byte) ([]*event.Event, error) {
	var payload unstopPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decoding unstop api: %w", err)
	}

	events := make([]*event.Event, 0, len(payload.Data.Data))
	for _, opp := range payload.Data.Data {
		title := strings.TrimSpace(opp.Title)
		if title == "" || opp.PublicURL == "" {
			continue
		}

		e := event.New(title, "https://unstop.com/hackathon/"+opp.PublicURL, "Unstop")
		e.Organizer = opp.Organisation.Name
		e.Location = opp.City
		e.Offline = opp.EligibleFor.IsOffline
		e.Date = unstopEndDate(opp)

		if opp.LogoURL2 != "" {
			e.ImageURL = opp.LogoURL2
		} else {
			e.ImageURL = opp.LogoURL
		}

		events = append(events, e)
	}
	return events, nil
}

// unstopEndDate picks the first populated registration-end field and strips
// any time component ("2026-04-18T23:59:00" to "2026-04-18"). The value is
// still re-validated by the normalizer before persistence.
func unstopEndDate(opp unstopOpportunity) string {
	candidates := []string{opp.RegnRequirements.EndRegnDt, opp.EndDate, opp.Deadline}
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if idx := strings.IndexByte(c, 'T'); idx > 0 {
			c = c[:idx]
		}
		return c
	}
	return ""
}

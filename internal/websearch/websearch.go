// Package websearch implements the web search capability behind the
// title-based date fallback, against DuckDuckGo's HTML endpoint. It is the
// only network dependency the date-resolution cascade has, and it degrades
// to empty results rather than surfacing provider hiccups to the cascade.
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"

	"github.com/rsrinivasan/hackradar/internal/dateparse"
)

const (
	Endpoint  = "https://html.duckduckgo.com/html/"
	UserAgent = "hackradar/1.0 (github.com/rsrinivasan/hackradar)"
	Timeout   = 20 * time.Second

	maxRetries = 2
)

// Client queries the search endpoint and parses result titles and snippets.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New creates a search client.
func New() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: Timeout},
		endpoint:   Endpoint,
	}
}

// Search runs a query and returns up to maxResults hits. Transient failures
// are retried with exponential backoff; a non-200 after retries is an error
// the caller is expected to swallow.
func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]dateparse.SearchResult, error) {
	reqURL := c.endpoint + "?q=" + url.QueryEscape(query)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", UserAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("fetching results: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
				return backoff.Permanent(err)
			}
			return err
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("reading results: %w", err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}

	return parseResults(strings.NewReader(string(body)), maxResults)
}

// parseResults extracts result titles and snippets from the HTML endpoint's
// markup.
func parseResults(r io.Reader, maxResults int) ([]dateparse.SearchResult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing results page: %w", err)
	}

	results := make([]dateparse.SearchResult, 0, maxResults)
	doc.Find("div.result").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("a.result__a").First().Text())
		snippet := strings.TrimSpace(sel.Find(".result__snippet").First().Text())
		if title == "" && snippet == "" {
			return true
		}
		results = append(results, dateparse.SearchResult{Title: title, Snippet: snippet})
		return len(results) < maxResults
	})

	return results, nil
}

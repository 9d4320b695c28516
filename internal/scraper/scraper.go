package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/rsrinivasan/hackradar/internal/event"
	"github.com/rsrinivasan/hackradar/internal/logger"
)

const (
	UserAgent = "hackradar/1.0 (github.com/rsrinivasan/hackradar)"
	Timeout   = 30 * time.Second

	fetchRetries = 2
)

// Source collects hackathon listings from one platform.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]*event.Event, error)
}

// Fetcher is the shared HTTP client all sources use: common user agent,
// bounded timeout, and retry with exponential backoff on transient failures.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher with the default timeout.
func NewFetcher() *Fetcher {
	return NewFetcherWithTimeout(Timeout)
}

// NewFetcherWithTimeout creates a Fetcher with a custom per-request timeout.
func NewFetcherWithTimeout(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = Timeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Get fetches a URL and returns the response body.
func (f *Fetcher) Get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("creating request: %w", err))
		}
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "text/html,application/json")

		resp, err := f.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetching page: %w", err)
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
			return fmt.Errorf("reading body: %w", err)
		}
		return nil
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), fetchRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// RunAll fetches every source, isolating failures: a source that errors is
// logged and skipped, never aborting the batch.
func RunAll(ctx context.Context, sources []Source, log *logger.Logger) []*event.Event {
	var all []*event.Event
	for _, src := range sources {
		events, err := src.Fetch(ctx)
		if err != nil {
			log.Error("source failed", logger.Fields{"source": src.Name()}, err)
			continue
		}
		log.Info("source done", logger.Fields{"source": src.Name(), "items": len(events)})
		all = append(all, events...)
	}
	return all
}

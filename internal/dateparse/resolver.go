package dateparse

import (
	"context"
	"fmt"
	"time"

	"github.com/rsrinivasan/hackradar/internal/logger"
)

const maxSearchResults = 3

// SearchResult is one hit from a web search provider.
type SearchResult struct {
	Title   string
	Snippet string
}

// Searcher is the web search capability the title fallback depends on.
// Implementations live elsewhere (internal/websearch for the real provider);
// tests substitute a fixture.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// Resolver bundles the extraction cascade with its injected dependencies: a
// web search capability, a clock, and a logger. Resolvers hold no mutable
// state, so a single instance is safe for concurrent use across items.
type Resolver struct {
	searcher Searcher
	now      func() time.Time
	log      *logger.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithSearcher provides the web search capability used by ResolveViaTitle.
// Without one, the fallback degrades to no-date.
func WithSearcher(s Searcher) Option {
	return func(r *Resolver) { r.searcher = s }
}

// WithClock overrides the reference-time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) { r.now = now }
}

// WithLogger overrides the logger.
func WithLogger(l *logger.Logger) Option {
	return func(r *Resolver) { r.log = l }
}

// NewResolver creates a Resolver.
func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		now: time.Now,
		log: logger.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ExtractDeadline runs the in-page cascade over free text.
func (r *Resolver) ExtractDeadline(text string) string {
	return ExtractDeadlineAt(text, r.now())
}

// Normalize standardizes an already-collected date value.
func (r *Resolver) Normalize(value interface{}) string {
	return NormalizeAt(value, r.now())
}

// ResolveViaTitle is the escape valve for listings whose own pages expose no
// date anywhere: it searches the web for the event by title and re-runs the
// extraction cascade over the returned snippets. Provider failures degrade to
// "", never to an error.
func (r *Resolver) ResolveViaTitle(ctx context.Context, title string) string {
	if title == "" || r.searcher == nil {
		return ""
	}

	now := r.now()
	query := fmt.Sprintf("%s hackathon registration deadline %d", title, editionYear(now))
	r.log.Info("web search fallback", logger.Fields{"query": query})

	results, err := r.searcher.Search(ctx, query, maxSearchResults)
	if err != nil {
		r.log.Warn("web search failed", logger.Fields{"title": title, "error": err.Error()})
		return ""
	}

	for _, res := range results {
		if d := ExtractDeadlineAt(res.Snippet+" "+res.Title, now); d != "" {
			return d
		}
	}
	return ""
}

// editionYear picks the year to pin the search query to: the current year,
// rolling over to the next one from October, when most listings already refer
// to next year's edition.
func editionYear(now time.Time) int {
	if now.Month() >= time.October {
		return now.Year() + 1
	}
	return now.Year()
}

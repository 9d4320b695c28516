// Package pipeline runs one full collection cycle: scrape every enabled
// source, deduplicate, resolve missing registration deadlines, drop dateless
// and expired listings, and sync the survivors into the datastore.
package pipeline

import (
	"context"
	"time"

	"github.com/rsrinivasan/hackradar/internal/dateparse"
	"github.com/rsrinivasan/hackradar/internal/event"
	"github.com/rsrinivasan/hackradar/internal/filter"
	"github.com/rsrinivasan/hackradar/internal/logger"
	"github.com/rsrinivasan/hackradar/internal/scraper"
)

// Store is the persistence surface the pipeline writes to.
type Store interface {
	Upsert(ctx context.Context, events []*event.Event, batchSize int) (int, error)
	DeleteExpired(ctx context.Context, today time.Time) (int, error)
}

// Stats summarizes one run.
type Stats struct {
	Fetched        int `json:"fetched"`
	Duplicates     int `json:"duplicates"`
	Resolved       int `json:"resolved_via_search"`
	DroppedNoDate  int `json:"dropped_no_date"`
	DroppedExpired int `json:"dropped_expired"`
	Stored         int `json:"stored"`
	Purged         int `json:"purged"`
	Regional       int `json:"regional"`
}

// Pipeline wires sources, the date resolver, the region tagger, and the
// datastore into one runnable unit.
type Pipeline struct {
	sources   []scraper.Source
	resolver  *dateparse.Resolver
	region    *filter.Region
	store     Store
	batchSize int
	dryRun    bool
	now       func() time.Time
	log       *logger.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithResolver provides the deadline resolver used for listings that arrive
// without a date. Without one, such listings are dropped.
func WithResolver(r *dateparse.Resolver) Option {
	return func(p *Pipeline) { p.resolver = r }
}

// WithRegion overrides the region tagger.
func WithRegion(r *filter.Region) Option {
	return func(p *Pipeline) { p.region = r }
}

// WithBatchSize sets the upsert batch size.
func WithBatchSize(n int) Option {
	return func(p *Pipeline) { p.batchSize = n }
}

// WithDryRun skips all datastore writes.
func WithDryRun(dry bool) Option {
	return func(p *Pipeline) { p.dryRun = dry }
}

// WithClock overrides the reference-time source, for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

// WithLogger overrides the logger.
func WithLogger(l *logger.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New creates a Pipeline over the given sources and store.
func New(sources []scraper.Source, store Store, opts ...Option) *Pipeline {
	p := &Pipeline{
		sources:   sources,
		store:     store,
		region:    filter.NewRegion(nil),
		batchSize: 200,
		now:       time.Now,
		log:       logger.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one collection cycle and returns its stats. Source failures
// are isolated inside scraping; only datastore errors abort the run.
func (p *Pipeline) Run(ctx context.Context) (*Stats, error) {
	now := p.now()
	counters := logger.NewCounters()
	stats := &Stats{}

	fetched := scraper.RunAll(ctx, p.sources, p.log)
	stats.Fetched = len(fetched)

	unique := event.NewDeduper().Deduplicate(fetched)
	stats.Duplicates = len(fetched) - len(unique)

	kept := make([]*event.Event, 0, len(unique))
	for _, e := range unique {
		e.Date = dateparse.NormalizeAt(e.Date, now)

		if !e.HasDate() && p.resolver != nil {
			if d := p.resolver.ResolveViaTitle(ctx, e.Title); d != "" {
				e.Date = d
				stats.Resolved++
				counters.Incr("resolved_via_search")
			}
		}

		switch {
		case !e.HasDate():
			stats.DroppedNoDate++
			counters.Incr("dropped_no_date")
			p.log.Debug("dropping listing without deadline", logger.Fields{"title": e.Title, "link": e.Link})
		case e.IsExpiredAt(now):
			stats.DroppedExpired++
			counters.Incr("dropped_expired")
			p.log.Debug("dropping expired listing", logger.Fields{"title": e.Title, "date": e.Date})
		default:
			kept = append(kept, e)
		}
	}

	stats.Regional = p.region.Count(kept)

	if !p.dryRun {
		stored, err := p.store.Upsert(ctx, kept, p.batchSize)
		if err != nil {
			return stats, err
		}
		stats.Stored = stored

		purged, err := p.store.DeleteExpired(ctx, now)
		if err != nil {
			return stats, err
		}
		stats.Purged = purged
	} else {
		stats.Stored = len(kept)
	}

	fields := counters.Snapshot()
	fields["fetched"] = stats.Fetched
	fields["duplicates"] = stats.Duplicates
	fields["stored"] = stats.Stored
	fields["purged"] = stats.Purged
	fields["regional"] = stats.Regional
	p.log.Info("run complete", fields)

	return stats, nil
}

package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rsrinivasan/hackradar/internal/config"
	"github.com/rsrinivasan/hackradar/internal/dateparse"
	"github.com/rsrinivasan/hackradar/internal/filter"
	"github.com/rsrinivasan/hackradar/internal/logger"
	"github.com/rsrinivasan/hackradar/internal/pipeline"
	"github.com/rsrinivasan/hackradar/internal/scraper"
	"github.com/rsrinivasan/hackradar/internal/storage"
	"github.com/rsrinivasan/hackradar/internal/websearch"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig     string
	flagDB         string
	flagSources    []string
	flagFormat     string
	flagSort       string
	flagDryRun     bool
	flagSkipSearch bool
	flagVerbose    bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hackradar",
		Short: "Collect hackathon listings and their registration deadlines",
		Long: `Scrapes hackathon listings from Devpost, Unstop, HackerEarth, Knowafest
and configured RSS feeds, resolves each listing's registration deadline, and
keeps a local database of open hackathons. Expired and dateless listings are
dropped on every run.`,
		RunE:          runCollect,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: ./hackradar.yaml)")
	cmd.PersistentFlags().StringVar(&flagDB, "db", "", "Database path (overrides config)")
	cmd.PersistentFlags().StringVar(&flagFormat, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")

	cmd.Flags().StringSliceVar(&flagSources, "sources", nil, "Sources to run (default: all)")
	cmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "Collect and report without writing to the database")
	cmd.Flags().BoolVar(&flagSkipSearch, "skip-search", false, "Disable the web-search deadline fallback")

	cmd.AddCommand(newListCmd())

	return cmd
}

// runCollect executes one collection cycle.
func runCollect(cmd *cobra.Command, args []string) error {
	format, err := parseFormat(flagFormat)
	if err != nil {
		return err
	}
	log := setupLogger()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer store.Close()

	opts := []pipeline.Option{
		pipeline.WithRegion(filter.NewRegion(cfg.RegionKeywords)),
		pipeline.WithBatchSize(cfg.BatchSize),
		pipeline.WithDryRun(flagDryRun),
		pipeline.WithLogger(log),
	}
	if !cfg.SkipSearch {
		resolver := dateparse.NewResolver(
			dateparse.WithSearcher(websearch.New()),
			dateparse.WithLogger(log))
		opts = append(opts, pipeline.WithResolver(resolver))
	}

	p := pipeline.New(buildSources(cfg), store, opts...)

	stats, err := p.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("running pipeline: %w", err)
	}

	result := &RunResult{
		CollectedAt: time.Now().UTC(),
		DryRun:      flagDryRun,
		Stats:       stats,
	}
	if !flagDryRun {
		result.Events, err = store.List(cmd.Context())
		if err != nil {
			return fmt.Errorf("reading listings: %w", err)
		}
	}

	return WriteOutput(os.Stdout, result, format, flagVerbose)
}

// newListCmd creates the list subcommand, which prints stored listings
// without scraping anything.
func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print stored hackathon listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseFormat(flagFormat)
			if err != nil {
				return err
			}
			setupLogger()

			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			applyFlagOverrides(cfg)

			store, err := storage.Open(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer store.Close()

			events, err := store.List(cmd.Context())
			if err != nil {
				return fmt.Errorf("reading listings: %w", err)
			}
			sortEvents(events, SortOrder(flagSort))

			result := &RunResult{
				CollectedAt: time.Now().UTC(),
				Events:      events,
			}
			return WriteOutput(os.Stdout, result, format, flagVerbose)
		},
	}
	cmd.Flags().StringVar(&flagSort, "sort", "date", "Sort order: date, title, or source")
	return cmd
}

func parseFormat(s string) (OutputFormat, error) {
	format := OutputFormat(strings.ToLower(s))
	if format != FormatText && format != FormatJSON {
		return "", fmt.Errorf("invalid format: %s (must be 'text' or 'json')", s)
	}
	return format, nil
}

// setupLogger routes structured logs to stderr so stdout stays parseable.
func setupLogger() *logger.Logger {
	level := logger.LevelInfo
	if flagVerbose {
		level = logger.LevelDebug
	}
	log := logger.New(level, os.Stderr)
	logger.SetDefault(log)
	return log
}

func applyFlagOverrides(cfg *config.Config) {
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	if len(flagSources) > 0 {
		cfg.Sources = flagSources
	}
	if flagSkipSearch {
		cfg.SkipSearch = true
	}
}

// buildSources assembles the enabled sources in priority order. Order
// matters: when two platforms list the same hackathon, the earlier source's
// record wins deduplication.
func buildSources(cfg *config.Config) []scraper.Source {
	fetcher := scraper.NewFetcherWithTimeout(time.Duration(cfg.HTTPTimeoutSeconds) * time.Second)

	var sources []scraper.Source
	if cfg.SourceEnabled("Devpost") {
		sources = append(sources, scraper.NewDevpostSource(fetcher))
	}
	if cfg.SourceEnabled("Unstop") {
		sources = append(sources, scraper.NewUnstopSource(fetcher))
	}
	if cfg.SourceEnabled("HackerEarth") {
		sources = append(sources, scraper.NewHackerEarthSource(fetcher))
	}
	if cfg.SourceEnabled("Knowafest") {
		src := scraper.NewKnowafestSource(fetcher)
		src.SetDetailLimit(cfg.DetailLimit)
		sources = append(sources, src)
	}
	if cfg.SourceEnabled("Feeds") && len(cfg.Feeds) > 0 {
		feeds := make([]scraper.Feed, len(cfg.Feeds))
		for i, f := range cfg.Feeds {
			feeds[i] = scraper.Feed{Name: f.Name, URL: f.URL}
		}
		sources = append(sources, scraper.NewFeedSource(feeds))
	}
	return sources
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rsrinivasan/hackradar/internal/event"
	"github.com/rsrinivasan/hackradar/internal/pipeline"
)

// OutputFormat specifies the output format.
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// RunResult contains data to be output.
type RunResult struct {
	CollectedAt time.Time       `json:"collected_at"`
	DryRun      bool            `json:"dry_run,omitempty"`
	Stats       *pipeline.Stats `json:"stats,omitempty"`
	Events      []*event.Event  `json:"events"`
}

// WriteOutput writes the result in the specified format.
func WriteOutput(w io.Writer, result *RunResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

func writeJSON(w io.Writer, result *RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeText(w io.Writer, result *RunResult, verbose bool) error {
	if result.Stats != nil {
		s := result.Stats
		fmt.Fprintf(w, "Fetched %d listings (%d duplicates, %d resolved via search)\n",
			s.Fetched, s.Duplicates, s.Resolved)
		fmt.Fprintf(w, "Dropped %d without a deadline, %d expired; purged %d stale rows\n",
			s.DroppedNoDate, s.DroppedExpired, s.Purged)
		if s.Regional > 0 {
			fmt.Fprintf(w, "%d listings are in the configured region\n", s.Regional)
		}
		if result.DryRun {
			fmt.Fprintf(w, "Dry run: %d listings would be stored\n", s.Stored)
			return nil
		}
		fmt.Fprintln(w)
	}

	if len(result.Events) == 0 {
		fmt.Fprintln(w, "No open hackathons stored.")
		return nil
	}

	for _, e := range result.Events {
		date := e.Date
		if date == "" {
			date = "no date"
		}
		fmt.Fprintf(w, "%s  %-7s  %s\n", date, e.Mode(), e.Title)
		if verbose {
			fmt.Fprintf(w, "            Link: %s\n", e.Link)
			fmt.Fprintf(w, "            Source: %s\n", e.Source)
			if e.Organizer != "" {
				fmt.Fprintf(w, "            Organizer: %s\n", e.Organizer)
			}
			if e.Location != "" {
				fmt.Fprintf(w, "            Location: %s\n", e.Location)
			}
		}
	}
	fmt.Fprintf(w, "\nTotal: %d open hackathons\n", len(result.Events))

	return nil
}

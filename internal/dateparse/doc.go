// Package dateparse recovers registration-end dates from the noisy text that
// hackathon listing sites expose: countdown timers, date ranges, prose
// deadlines, or nothing at all.
//
// Extraction is an ordered cascade of strategies, each a pure function from
// text to an optional date, evaluated in fixed priority order with early exit:
//
//  1. countdown expressions ("2d:10h:30m") added to the current instant
//  2. deadline-labeled patterns ("registration closes on Apr 18, 2026")
//  3. keyword-windowed snippet search ("deadline", "apply by", ...)
//  4. whole-text date search, gated to short texts
//  5. a web search built from the event title, via an injected Searcher
//
// Two tie-break policies run through every strategy and are load-bearing:
// when a text contains several dates the last one wins (later mentions are
// more often the authoritative final deadline than the first, possibly
// navigational, one), and when a date expression is ambiguous about its year
// the nearest future occurrence is chosen.
//
// All results are canonical YYYY-MM-DD strings. Absence is the only failure
// shape: no function in this package returns an error or panics on malformed
// input.
package dateparse

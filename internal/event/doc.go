// Package event defines the hackathon listing record shared across the
// scraping pipeline, plus the identity hash used for cross-source
// deduplication.
package event

// Package cli implements the command-line interface for hackradar.
//
// The root command runs one collection cycle: it scrapes every enabled
// source, resolves registration deadlines, and syncs the results into the
// local database. The list command prints what is currently stored. Output
// is available as text or JSON.
package cli

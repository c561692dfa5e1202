// Package store provides SQLite-based persistence for run history.
//
// Every completed pipeline run can be recorded with its full report
// serialized as JSON, plus a few indexed columns for listing and lookup.
// The history database lives in the XDG data directory by default and is
// consulted by the history subcommand.
package store

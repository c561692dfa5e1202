// Package collect assembles the tabular dataset the pipeline analyzes.
//
// The collector first tries to extract a numeric table from the HTML the
// browser automation fetched; when the page yields nothing parseable it
// falls back to a fixed placeholder table. This keeps the pipeline
// runnable end to end against pages that carry no tabular data at all,
// which is the common case for the default target.
package collect

// Package visualize renders charts from analysis results.
//
// The renderer currently produces a single bar chart of per-column means,
// written as a PNG to an explicitly configured path. Output paths are
// passed in rather than hardcoded so concurrent runs with different output
// directories cannot race on the same file.
package visualize

// Package model defines the core data structures shared across the
// reportgen pipeline: the tabular dataset collected during a run, the
// statistical analysis derived from it, and the research report that
// accumulates every artifact the pipeline produces.
package model

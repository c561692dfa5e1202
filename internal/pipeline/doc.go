// Package pipeline implements the research run as a sequence of steps.
//
// A run is modeled as an ordered list of steps sharing a single
// ResearchReport accumulator: browse fetches the target page, collect
// assembles the dataset, analyze computes statistics, visualize renders
// charts, compile writes the report file, and present writes the slide
// outline. The Pipeline executes steps in order and stops on the first
// failure unless configured otherwise, so a failed collection never
// produces a half-written report file.
//
// BatchProcessor runs one pipeline per target concurrently for
// multi-target invocations.
package pipeline

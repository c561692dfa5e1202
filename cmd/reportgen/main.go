// Package main provides the entry point for the reportgen CLI.
//
// reportgen automates a small research workflow: it opens a target web
// page in a headless browser, extracts or fabricates a tabular dataset,
// computes descriptive statistics, renders a chart, and compiles
// everything into a self-contained HTML report.
//
// Usage:
//
//	reportgen run https://example.com
//	reportgen run --output-dir ./out https://example.com
//
// See --help for all available options.
package main

// main is the entry point for reportgen.
func main() {
	Execute()
}

// Package report renders research results for human and machine readers.
//
// This package contains writers for different output formats:
//   - HTMLWriter: Self-contained HTML page, the primary deliverable
//   - MarkdownWriter: Markdown summary for documentation and sharing
//   - JSONWriter: Structured JSON output for tool integration
//   - SlidesWriter: Markdown slide outline for presentations
//
// Design decision: We separate report writing from report data structures
// (which are in the model package) to follow the single responsibility
// principle. This allows adding new output formats without modifying
// the core data structures.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably and composed for multi-format output.
package report

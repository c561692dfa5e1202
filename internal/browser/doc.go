// Package browser fetches live page content through an automated
// Chromium instance.
//
// The pipeline uses it to navigate to each research target, wait for the
// page to load, and capture the title, final URL, and rendered HTML. The
// HTML feeds the collector's table extraction. Callers that do not have
// a browser available can substitute any Automator implementation.
package browser

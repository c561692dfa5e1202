// Package log provides logging functionality for reportgen, built on top
// of the standard slog package.
//
// The pipeline routinely handles values that are far too large to log in
// full: raw page HTML fetched by the browser step, serialized datasets,
// and rendered report bodies. The TruncateHandler caps the length of
// string attributes so verbose logging stays readable without dropping
// the information entirely.
//
// # Usage
//
//	// Create a truncating logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Debug("page fetched",
//	    "url", "https://example.com",
//	    "html", pageHTML, // Truncated to the configured limit
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log

package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and provide specific
// information about what is wrong with the configuration.
//
// Design decision: We use package-level sentinel errors rather than
// creating new error instances in Validate(). This allows callers to use
// errors.Is() for programmatic error handling while still providing
// human-readable messages.
var (
	// ErrInvalidTargetURL is returned when a target is not an absolute
	// http(s) URL. The browser automation can only navigate to web pages.
	ErrInvalidTargetURL = errors.New("invalid target: must be an absolute http or https URL")

	// ErrInvalidTimeout is returned when a timeout is not positive.
	// A zero or negative timeout would cause immediate failures.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	// A batch size of zero would mean no runs at all.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidChartSize is returned when chart dimensions are not positive.
	ErrInvalidChartSize = errors.New("invalid chart size: width and height must be positive")

	// ErrInvalidOutputDir is returned when the output directory is empty.
	ErrInvalidOutputDir = errors.New("invalid output directory: must not be empty")
)

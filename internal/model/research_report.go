package model

import "time"

// Dataset source identifiers recorded in ResearchReport.DatasetSource.
const (
	// DatasetSourcePage indicates the dataset was extracted from a table
	// on the automated page.
	DatasetSourcePage = "page_table"

	// DatasetSourcePlaceholder indicates the built-in placeholder table
	// was used because the page yielded no parseable numeric table.
	DatasetSourcePlaceholder = "placeholder"
)

// ResearchReport is the main pipeline result structure.
// Each pipeline step reads what earlier steps produced and records its own
// output here, so a single ResearchReport describes one complete run.
//
// Design decision: We use a single accumulating struct rather than passing
// per-step values between steps because it simplifies serialization for the
// run-history store and mirrors how partial results survive step failures:
// whatever was collected before a failure is still present in the report.
type ResearchReport struct {
	// === Target information ===

	// TargetURL is the URL the browser automation navigated to.
	TargetURL string `json:"target_url"`

	// PageTitle is the document title read from the target page.
	PageTitle string `json:"page_title,omitempty"`

	// FinalURL is the URL after any redirects.
	FinalURL string `json:"final_url,omitempty"`

	// PageHTML is the rendered HTML captured by the browser step.
	// It feeds table extraction and is excluded from serialization
	// because it can be arbitrarily large.
	PageHTML string `json:"-"`

	// === Timing ===

	// DateStarted is when the pipeline run began.
	DateStarted time.Time `json:"date_started"`

	// DateCompleted is when the pipeline run finished (success or failure).
	DateCompleted time.Time `json:"date_completed,omitempty"`

	// === Collected and derived data ===

	// Dataset is the tabular data assembled by the collect step.
	Dataset *Dataset `json:"dataset,omitempty"`

	// DatasetSource records where the dataset came from
	// (DatasetSourcePage or DatasetSourcePlaceholder).
	DatasetSource string `json:"dataset_source,omitempty"`

	// Analysis is the statistical analysis of the dataset.
	Analysis *AnalysisResult `json:"analysis,omitempty"`

	// === Artifacts ===

	// ChartPaths lists rendered chart images in render order.
	ChartPaths []string `json:"chart_paths,omitempty"`

	// ReportPath is the compiled report file (the terminal artifact).
	ReportPath string `json:"report_path,omitempty"`

	// SlidesPath is the presentation outline produced by the present step.
	SlidesPath string `json:"slides_path,omitempty"`

	// === Execution state ===

	// PerformedSteps lists the pipeline steps that ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// TimedOut indicates the run was cut short by context cancellation.
	TimedOut bool `json:"timed_out,omitempty"`

	// Error holds the failure that stopped the pipeline, if any.
	// Excluded from JSON; ErrorMessage carries the serializable text.
	Error error `json:"-"`

	// ErrorMessage is the human-readable form of Error.
	ErrorMessage string `json:"error_message,omitempty"`
}

// NewResearchReport creates a ResearchReport for the given target URL
// with the start timestamp set to now.
func NewResearchReport(targetURL string) *ResearchReport {
	return &ResearchReport{
		TargetURL:   targetURL,
		DateStarted: time.Now(),
	}
}

// Complete marks the report as finished.
func (r *ResearchReport) Complete() {
	r.DateCompleted = time.Now()
}

// Duration returns how long the run took. It returns zero until
// Complete is called.
func (r *ResearchReport) Duration() time.Duration {
	if r.DateCompleted.IsZero() {
		return 0
	}
	return r.DateCompleted.Sub(r.DateStarted)
}

// Succeeded reports whether the run finished without a recorded error.
func (r *ResearchReport) Succeeded() bool {
	return r.Error == nil && r.ErrorMessage == "" && !r.TimedOut
}

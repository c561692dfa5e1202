package model

// ColumnSummary holds the descriptive statistics for a single column.
// The quartile fields follow the usual five-number summary plus mean and
// sample standard deviation.
type ColumnSummary struct {
	// Count is the number of values in the column.
	Count int `json:"count"`

	// Mean is the arithmetic mean.
	Mean float64 `json:"mean"`

	// StdDev is the sample standard deviation.
	StdDev float64 `json:"std_dev"`

	// Min is the smallest value.
	Min float64 `json:"min"`

	// Q1 is the first quartile (25th percentile).
	Q1 float64 `json:"q1"`

	// Median is the second quartile (50th percentile).
	Median float64 `json:"median"`

	// Q3 is the third quartile (75th percentile).
	Q3 float64 `json:"q3"`

	// Max is the largest value.
	Max float64 `json:"max"`
}

// AnalysisResult is the two-part output of the analyzer: per-column
// descriptive statistics and a pairwise correlation matrix.
//
// Design decision: Summary and Correlations are maps keyed by column name
// for direct lookup, while ColumnOrder preserves the dataset's column order
// so that renderers can produce stable output. The result is created once
// by the analyzer and is read-only afterwards.
type AnalysisResult struct {
	// ColumnOrder lists the analyzed numeric columns in dataset order.
	// Only these columns take part in correlation and charting.
	ColumnOrder []string `json:"column_order"`

	// TextOrder lists the analyzed text columns in dataset order.
	// Text columns appear in Summary with the row count only.
	TextOrder []string `json:"text_order,omitempty"`

	// Summary maps each column name to its descriptive statistics.
	// For text columns only Count is meaningful.
	Summary map[string]ColumnSummary `json:"summary"`

	// Correlations holds the Pearson correlation coefficient for every
	// pair of analyzed columns, keyed by [column][column]. The diagonal
	// is always 1.
	Correlations map[string]map[string]float64 `json:"correlations"`
}

// SummaryFor returns the descriptive statistics for the named column.
// The second return value is false if the column was not analyzed.
func (a *AnalysisResult) SummaryFor(name string) (ColumnSummary, bool) {
	s, ok := a.Summary[name]
	return s, ok
}

// CorrelationBetween returns the correlation coefficient between two columns.
// The second return value is false if either column was not analyzed.
func (a *AnalysisResult) CorrelationBetween(x, y string) (float64, bool) {
	row, ok := a.Correlations[x]
	if !ok {
		return 0, false
	}
	v, ok := row[y]
	return v, ok
}

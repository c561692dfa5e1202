package analyze

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/montanaflynn/stats"

	"github.com/nao1215/reportgen/internal/model"
)

// Analysis errors.
var (
	// ErrNilDataset is returned when Analyze is called without a dataset.
	ErrNilDataset = errors.New("analyze: dataset is nil")

	// ErrNoNumericColumns is returned when the dataset contains no numeric
	// columns with data. Descriptive statistics and correlation are
	// undefined in that case.
	ErrNoNumericColumns = errors.New("analyze: dataset has no numeric columns")
)

// Analyzer computes an AnalysisResult from a Dataset.
//
// Design decision: We delegate the individual statistics to
// montanaflynn/stats rather than hand-rolling them. The library's
// behavior around empty input and quartile calculation is well defined,
// and using it keeps this package focused on dataset traversal.
type Analyzer struct {
	// logger for structured logging.
	logger *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithLogger sets a custom logger for the analyzer.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// New creates a new Analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{}

	for _, opt := range opts {
		opt(a)
	}

	if a.logger == nil {
		a.logger = slog.Default()
	}

	return a
}

// Analyze computes descriptive statistics per numeric column and a pairwise
// correlation matrix over the numeric columns of the dataset.
// Columns with no rows are excluded. Returns ErrNoNumericColumns when no
// column qualifies.
func (a *Analyzer) Analyze(dataset *model.Dataset) (*model.AnalysisResult, error) {
	if dataset == nil {
		return nil, ErrNilDataset
	}

	// Collect the columns eligible for analysis, preserving table order.
	numeric := make([]model.Column, 0, len(dataset.Columns))
	for _, col := range dataset.Columns {
		if len(col.Values) == 0 {
			a.logger.Debug("skipping empty column", "column", col.Name)
			continue
		}
		numeric = append(numeric, col)
	}

	if len(numeric) == 0 {
		return nil, ErrNoNumericColumns
	}

	result := &model.AnalysisResult{
		ColumnOrder:  make([]string, 0, len(numeric)),
		Summary:      make(map[string]model.ColumnSummary, len(numeric)),
		Correlations: make(map[string]map[string]float64, len(numeric)),
	}

	for _, col := range numeric {
		summary, err := summarize(col.Values)
		if err != nil {
			return nil, fmt.Errorf("analyze: column %q: %w", col.Name, err)
		}
		result.ColumnOrder = append(result.ColumnOrder, col.Name)
		result.Summary[col.Name] = summary
	}

	// Text columns contribute the row count only; they are excluded from
	// the numeric statistics and from correlation.
	for _, col := range dataset.TextColumns {
		if len(col.Values) == 0 {
			continue
		}
		result.TextOrder = append(result.TextOrder, col.Name)
		result.Summary[col.Name] = model.ColumnSummary{Count: len(col.Values)}
	}

	for _, x := range numeric {
		row := make(map[string]float64, len(numeric))
		for _, y := range numeric {
			row[y.Name] = correlate(x.Values, y.Values)
		}
		result.Correlations[x.Name] = row
	}

	a.logger.Info("analysis completed",
		"columns", len(result.ColumnOrder),
		"rows", dataset.Rows(),
	)

	return result, nil
}

// summarize computes the descriptive statistics for a single column.
func summarize(values []float64) (model.ColumnSummary, error) {
	data := stats.Float64Data(values)

	mean, err := stats.Mean(data)
	if err != nil {
		return model.ColumnSummary{}, err
	}

	minVal, err := stats.Min(data)
	if err != nil {
		return model.ColumnSummary{}, err
	}

	maxVal, err := stats.Max(data)
	if err != nil {
		return model.ColumnSummary{}, err
	}

	median, err := stats.Median(data)
	if err != nil {
		return model.ColumnSummary{}, err
	}

	summary := model.ColumnSummary{
		Count:  len(values),
		Mean:   mean,
		Min:    minVal,
		Median: median,
		Max:    maxVal,
		Q1:     median,
		Q3:     median,
	}

	// Sample standard deviation and quartiles need at least two values.
	if len(values) >= 2 {
		stdDev, err := stats.StandardDeviationSample(data)
		if err != nil {
			return model.ColumnSummary{}, err
		}
		summary.StdDev = stdDev

		quartiles, err := stats.Quartile(data)
		if err != nil {
			return model.ColumnSummary{}, err
		}
		summary.Q1 = quartiles.Q1
		summary.Q3 = quartiles.Q3
	}

	return summary, nil
}

// correlate returns the Pearson correlation coefficient between two columns.
// Zero-variance columns have no defined correlation; those pairs are
// recorded as 0 so the matrix stays JSON-serializable.
func correlate(x, y []float64) float64 {
	r, err := stats.Correlation(stats.Float64Data(x), stats.Float64Data(y))
	if err != nil || math.IsNaN(r) || math.IsInf(r, 0) {
		return 0
	}
	return r
}

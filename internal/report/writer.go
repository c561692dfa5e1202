package report

import (
	"io"
	"strconv"

	"github.com/nao1215/reportgen/internal/model"
)

// Writer defines the interface for report output.
// Implementations render a research report in a specific format.
//
// Design decision: We use an interface to allow different output formats
// and destinations. This enables writing to files, stdout, or network
// connections with the same API.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.ResearchReport) (int, error)
}

// MultiWriter writes to multiple Writers simultaneously.
// This is useful for outputting to both terminal and file.
//
// Design decision: We implement this as a separate type rather than
// using io.MultiWriter because our Writer interface is different
// from io.Writer - we write reports, not raw bytes.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(report *model.ResearchReport) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// formatFloat renders a statistic with a fixed precision so tables line
// up across columns.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

// summaryRow renders one summary table row for a column. Text columns
// carry only a count, so every other cell becomes a dash.
func summaryRow(name string, s model.ColumnSummary, numeric bool) []string {
	if !numeric {
		return []string{name, strconv.Itoa(s.Count), "-", "-", "-", "-", "-", "-", "-"}
	}
	return []string{
		name,
		strconv.Itoa(s.Count),
		formatFloat(s.Mean),
		formatFloat(s.StdDev),
		formatFloat(s.Min),
		formatFloat(s.Q1),
		formatFloat(s.Median),
		formatFloat(s.Q3),
		formatFloat(s.Max),
	}
}

// summaryHeader is the column order shared by the HTML and Markdown
// summary tables.
func summaryHeader() []string {
	return []string{"Column", "Count", "Mean", "Std Dev", "Min", "Q1", "Median", "Q3", "Max"}
}

// statusText renders the report completion state for humans.
func statusText(report *model.ResearchReport) string {
	switch {
	case report.TimedOut:
		return "Timed out (partial results)"
	case report.ErrorMessage != "":
		return "Error: " + report.ErrorMessage
	default:
		return "Complete"
	}
}

package report

import (
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/reportgen/internal/model"
)

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides:
// 1. Type-safe markdown generation
// 2. Support for tables, lists, and code blocks
// 3. GitHub-flavored markdown alerts
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.ResearchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeSummary(md, report)
	w.writeCorrelations(md, report)
	w.writeCharts(md, report)
	w.writeSteps(md, report)

	return len(md.String()), md.Build()
}

// writeHeader writes the run metadata table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.ResearchReport) {
	md.H1("Research Report")
	md.PlainText("")

	rows := [][]string{
		{"Target URL", "`" + report.TargetURL + "`"},
		{"Completed", report.DateCompleted.Format("2006-01-02 15:04:05 MST")},
		{"Duration", report.Duration().String()},
		{"Dataset Source", report.DatasetSource},
		{"Status", statusText(report)},
	}
	if report.PageTitle != "" {
		rows = append(rows[:1], append([][]string{{"Page Title", report.PageTitle}}, rows[1:]...)...)
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeSummary writes the per-column statistics table.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.ResearchReport) {
	md.H2("Summary Statistics")
	md.PlainText("")

	if report.Analysis == nil {
		md.PlainText("No data was collected.")
		md.PlainText("")
		return
	}

	var rows [][]string
	for _, name := range report.Analysis.ColumnOrder {
		if s, ok := report.Analysis.SummaryFor(name); ok {
			rows = append(rows, summaryRow(name, s, true))
		}
	}
	for _, name := range report.Analysis.TextOrder {
		if s, ok := report.Analysis.SummaryFor(name); ok {
			rows = append(rows, summaryRow(name, s, false))
		}
	}

	md.Table(markdown.TableSet{
		Header: summaryHeader(),
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCorrelations writes the correlation matrix when more than one
// numeric column exists.
func (w *MarkdownWriter) writeCorrelations(md *markdown.Markdown, report *model.ResearchReport) {
	if report.Analysis == nil || len(report.Analysis.ColumnOrder) < 2 {
		return
	}

	md.H2("Correlations")
	md.PlainText("")

	header := append([]string{""}, report.Analysis.ColumnOrder...)
	rows := make([][]string, 0, len(report.Analysis.ColumnOrder))
	for _, row := range report.Analysis.ColumnOrder {
		cells := []string{row}
		for _, col := range report.Analysis.ColumnOrder {
			v, _ := report.Analysis.CorrelationBetween(row, col)
			cells = append(cells, formatFloat(v))
		}
		rows = append(rows, cells)
	}

	md.Table(markdown.TableSet{
		Header: header,
		Rows:   rows,
	})
	md.PlainText("")
}

// writeCharts links the rendered chart images.
func (w *MarkdownWriter) writeCharts(md *markdown.Markdown, report *model.ResearchReport) {
	if len(report.ChartPaths) == 0 {
		return
	}

	md.H2("Charts")
	md.PlainText("")
	for _, p := range report.ChartPaths {
		md.PlainTextf("![chart](%s)", p)
	}
	md.PlainText("")
}

// writeSteps lists the pipeline steps that ran.
func (w *MarkdownWriter) writeSteps(md *markdown.Markdown, report *model.ResearchReport) {
	if len(report.PerformedSteps) == 0 {
		return
	}

	md.H2("Performed Steps")
	md.PlainText("")
	md.OrderedList(report.PerformedSteps...)
	md.PlainText("")
}

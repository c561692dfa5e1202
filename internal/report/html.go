package report

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"path/filepath"

	"github.com/nao1215/reportgen/internal/model"
)

// HTMLWriter outputs reports as a self-contained HTML page.
// This is the primary deliverable of a research run.
//
// Design decision: We use html/template rather than string concatenation
// because it escapes every interpolated value. Page titles and dataset
// cells come from arbitrary web pages and must never be able to inject
// markup into the report.
type HTMLWriter struct {
	baseWriter

	// baseDir, when set, is the directory the report file lives in.
	// Chart paths are rewritten relative to it so the img tags resolve
	// when the report is opened from disk.
	baseDir string
}

// HTMLWriterOption configures an HTMLWriter.
type HTMLWriterOption func(*HTMLWriter)

// WithBaseDir sets the directory the report file will be written to.
// Chart references are made relative to this directory.
func WithBaseDir(dir string) HTMLWriterOption {
	return func(w *HTMLWriter) {
		w.baseDir = dir
	}
}

// NewHTMLWriter creates an HTMLWriter that outputs to the given writer.
func NewHTMLWriter(output io.Writer, opts ...HTMLWriterOption) *HTMLWriter {
	w := &HTMLWriter{
		baseWriter: newBaseWriter(output),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// htmlReport is the template input. All float formatting happens before
// templating so the template stays purely structural.
type htmlReport struct {
	TargetURL     string
	PageTitle     string
	FinalURL      string
	DateCompleted string
	Duration      string
	DatasetSource string
	Status        string
	SummaryHeader []string
	SummaryRows   [][]string
	CorrColumns   []string
	CorrRows      [][]string
	Charts        []string
	Steps         []string
}

//nolint:lll // template lines read better unwrapped
var htmlTemplate = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Research Report</title>
<style>
body { font-family: sans-serif; margin: 2rem auto; max-width: 60rem; color: #222; }
table { border-collapse: collapse; margin: 1rem 0; }
th, td { border: 1px solid #999; padding: 0.3rem 0.6rem; text-align: right; }
th:first-child, td:first-child { text-align: left; }
img { max-width: 100%; margin: 1rem 0; }
footer { margin-top: 2rem; color: #777; font-size: 0.8rem; }
</style>
</head>
<body>
<h1>Research Report</h1>
<table>
<tr><th>Target URL</th><td>{{.TargetURL}}</td></tr>
{{if .PageTitle}}<tr><th>Page Title</th><td>{{.PageTitle}}</td></tr>{{end}}
{{if .FinalURL}}<tr><th>Final URL</th><td>{{.FinalURL}}</td></tr>{{end}}
<tr><th>Completed</th><td>{{.DateCompleted}}</td></tr>
<tr><th>Duration</th><td>{{.Duration}}</td></tr>
<tr><th>Dataset Source</th><td>{{.DatasetSource}}</td></tr>
<tr><th>Status</th><td>{{.Status}}</td></tr>
</table>
<h2>Summary Statistics</h2>
{{if .SummaryRows}}
<table>
<tr>{{range .SummaryHeader}}<th>{{.}}</th>{{end}}</tr>
{{range .SummaryRows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
{{else}}
<p>No data was collected.</p>
{{end}}
{{if .CorrRows}}
<h2>Correlations</h2>
<table>
<tr><th></th>{{range .CorrColumns}}<th>{{.}}</th>{{end}}</tr>
{{range .CorrRows}}<tr>{{range $i, $cell := .}}{{if eq $i 0}}<th>{{$cell}}</th>{{else}}<td>{{$cell}}</td>{{end}}{{end}}</tr>
{{end}}</table>
{{end}}
{{if .Charts}}
<h2>Charts</h2>
{{range .Charts}}<img src="{{.}}" alt="chart">
{{end}}{{end}}
{{if .Steps}}
<h2>Performed Steps</h2>
<ol>
{{range .Steps}}<li>{{.}}</li>
{{end}}</ol>
{{end}}
<footer>Generated by reportgen</footer>
</body>
</html>
`))

// Write renders the report as HTML.
func (w *HTMLWriter) Write(report *model.ResearchReport) (int, error) {
	data := w.buildData(report)

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return 0, fmt.Errorf("report: failed to render HTML: %w", err)
	}

	return w.output.Write(buf.Bytes())
}

// buildData flattens the report into template input.
func (w *HTMLWriter) buildData(report *model.ResearchReport) *htmlReport {
	data := &htmlReport{
		TargetURL:     report.TargetURL,
		PageTitle:     report.PageTitle,
		FinalURL:      report.FinalURL,
		DateCompleted: report.DateCompleted.Format("2006-01-02 15:04:05 MST"),
		Duration:      report.Duration().String(),
		DatasetSource: report.DatasetSource,
		Status:        statusText(report),
		SummaryHeader: summaryHeader(),
		Charts:        w.chartRefs(report.ChartPaths),
		Steps:         report.PerformedSteps,
	}

	if report.Analysis == nil {
		return data
	}

	for _, name := range report.Analysis.ColumnOrder {
		if s, ok := report.Analysis.SummaryFor(name); ok {
			data.SummaryRows = append(data.SummaryRows, summaryRow(name, s, true))
		}
	}
	for _, name := range report.Analysis.TextOrder {
		if s, ok := report.Analysis.SummaryFor(name); ok {
			data.SummaryRows = append(data.SummaryRows, summaryRow(name, s, false))
		}
	}

	if len(report.Analysis.ColumnOrder) > 1 {
		data.CorrColumns = report.Analysis.ColumnOrder
		for _, row := range report.Analysis.ColumnOrder {
			cells := []string{row}
			for _, col := range report.Analysis.ColumnOrder {
				v, _ := report.Analysis.CorrelationBetween(row, col)
				cells = append(cells, formatFloat(v))
			}
			data.CorrRows = append(data.CorrRows, cells)
		}
	}

	return data
}

// chartRefs rewrites chart paths relative to the report directory when a
// base directory is configured.
func (w *HTMLWriter) chartRefs(paths []string) []string {
	if w.baseDir == "" {
		return paths
	}

	refs := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(w.baseDir, p)
		if err != nil {
			rel = p
		}
		refs = append(refs, filepath.ToSlash(rel))
	}
	return refs
}

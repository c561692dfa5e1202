package report

import (
	"fmt"
	"io"

	"github.com/nao1215/markdown"
	"github.com/nao1215/reportgen/internal/model"
)

// SlidesWriter outputs a Markdown slide outline for presenting the run.
// Slides are separated with horizontal rules, the convention understood
// by Marp and most markdown presentation tools.
type SlidesWriter struct {
	baseWriter
}

// NewSlidesWriter creates a SlidesWriter that outputs to the given writer.
func NewSlidesWriter(output io.Writer) *SlidesWriter {
	return &SlidesWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the slide outline.
func (w *SlidesWriter) Write(report *model.ResearchReport) (int, error) {
	md := markdown.NewMarkdown(w.output)

	// Title slide
	md.H1("Research Report")
	md.PlainText("")
	md.PlainTextf("Target: %s", report.TargetURL)
	md.PlainText("")
	md.PlainText(report.DateCompleted.Format("2006-01-02"))
	md.PlainText("")
	md.HorizontalRule()

	w.writeCollectionSlide(md, report)
	w.writeStatisticsSlide(md, report)
	w.writeChartSlides(md, report)
	w.writeClosingSlide(md, report)

	return len(md.String()), md.Build()
}

// writeCollectionSlide summarizes where the dataset came from.
func (w *SlidesWriter) writeCollectionSlide(md *markdown.Markdown, report *model.ResearchReport) {
	md.H2("Data Collection")
	md.PlainText("")

	items := []string{
		fmt.Sprintf("Source: %s", report.DatasetSource),
	}
	if report.PageTitle != "" {
		items = append(items, fmt.Sprintf("Page: %s", report.PageTitle))
	}
	if report.Dataset != nil {
		items = append(items,
			fmt.Sprintf("Rows: %d", report.Dataset.Rows()),
			fmt.Sprintf("Numeric columns: %d", len(report.Dataset.Columns)),
		)
	}

	md.BulletList(items...)
	md.PlainText("")
	md.HorizontalRule()
}

// writeStatisticsSlide lists the headline figure of each numeric column.
func (w *SlidesWriter) writeStatisticsSlide(md *markdown.Markdown, report *model.ResearchReport) {
	md.H2("Key Statistics")
	md.PlainText("")

	if report.Analysis == nil || len(report.Analysis.ColumnOrder) == 0 {
		md.PlainText("No numeric data was analyzed.")
	} else {
		var items []string
		for _, name := range report.Analysis.ColumnOrder {
			s, ok := report.Analysis.SummaryFor(name)
			if !ok {
				continue
			}
			items = append(items, fmt.Sprintf(
				"%s: mean %s (min %s, max %s)",
				name, formatFloat(s.Mean), formatFloat(s.Min), formatFloat(s.Max),
			))
		}
		md.BulletList(items...)
	}

	md.PlainText("")
	md.HorizontalRule()
}

// writeChartSlides emits one slide per rendered chart.
func (w *SlidesWriter) writeChartSlides(md *markdown.Markdown, report *model.ResearchReport) {
	for _, p := range report.ChartPaths {
		md.H2("Visualization")
		md.PlainText("")
		md.PlainTextf("![chart](%s)", p)
		md.PlainText("")
		md.HorizontalRule()
	}
}

// writeClosingSlide summarizes the run outcome.
func (w *SlidesWriter) writeClosingSlide(md *markdown.Markdown, report *model.ResearchReport) {
	md.H2("Summary")
	md.PlainText("")
	md.BulletList(
		fmt.Sprintf("Status: %s", statusText(report)),
		fmt.Sprintf("Duration: %s", report.Duration()),
		fmt.Sprintf("Steps performed: %d", len(report.PerformedSteps)),
	)
}

package visualize

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	chart "github.com/wcharczuk/go-chart/v2"

	"github.com/nao1215/reportgen/internal/model"
)

// Rendering errors.
var (
	// ErrNilAnalysis is returned when Render is called without an
	// analysis result.
	ErrNilAnalysis = errors.New("visualize: analysis result is nil")

	// ErrNoChartData is returned when the analysis contains no numeric
	// columns to chart.
	ErrNoChartData = errors.New("visualize: analysis has no numeric columns to chart")
)

// Default chart dimensions in pixels.
const (
	DefaultWidth    = 1024
	DefaultHeight   = 512
	defaultBarWidth = 60
)

// Renderer draws a bar chart of per-column means and writes it to disk.
//
// Design decision: We use wcharczuk/go-chart because it renders PNGs in
// pure Go; no cgo or external plotting process is needed, which keeps the
// pipeline a single static binary.
type Renderer struct {
	// outputPath is the file the chart image is written to.
	// Existing files are truncated.
	outputPath string

	// width and height size the chart in pixels.
	width  int
	height int

	// logger for structured logging.
	logger *slog.Logger
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithSize sets the chart dimensions in pixels.
// Non-positive values are ignored and the defaults are kept.
func WithSize(width, height int) Option {
	return func(r *Renderer) {
		if width > 0 {
			r.width = width
		}
		if height > 0 {
			r.height = height
		}
	}
}

// WithLogger sets a custom logger for the renderer.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// New creates a Renderer that writes its chart to outputPath.
func New(outputPath string, opts ...Option) *Renderer {
	r := &Renderer{
		outputPath: outputPath,
		width:      DefaultWidth,
		height:     DefaultHeight,
	}

	for _, opt := range opts {
		opt(r)
	}

	if r.logger == nil {
		r.logger = slog.Default()
	}

	return r
}

// Render draws a bar chart of the mean of every numeric column and writes
// it to the configured path, overwriting any existing file. It returns the
// list of written image paths; the files are guaranteed to exist and be
// non-empty when Render returns without error.
func (r *Renderer) Render(analysis *model.AnalysisResult) ([]string, error) {
	if analysis == nil {
		return nil, ErrNilAnalysis
	}
	if len(analysis.ColumnOrder) == 0 {
		return nil, ErrNoChartData
	}

	bars := make([]chart.Value, 0, len(analysis.ColumnOrder))
	maxMean := 0.0
	for _, name := range analysis.ColumnOrder {
		summary, ok := analysis.SummaryFor(name)
		if !ok {
			continue
		}
		bars = append(bars, chart.Value{
			Label: name,
			Value: summary.Mean,
		})
		if summary.Mean > maxMean {
			maxMean = summary.Mean
		}
	}
	if len(bars) == 0 {
		return nil, ErrNoChartData
	}

	// An explicit y-axis range keeps bars anchored at zero and avoids
	// go-chart's zero-range error when all means are equal.
	if maxMean <= 0 {
		maxMean = 1
	}

	barChart := chart.BarChart{
		Title:    "Mean by Column",
		Width:    r.width,
		Height:   r.height,
		BarWidth: defaultBarWidth,
		Background: chart.Style{
			Padding: chart.Box{Top: 40},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxMean * 1.1},
		},
		Bars: bars,
	}

	if dir := filepath.Dir(r.outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, fmt.Errorf("visualize: failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(r.outputPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("visualize: failed to create chart file: %w", err)
	}

	if err := barChart.Render(chart.PNG, f); err != nil {
		_ = f.Close() //nolint:errcheck // Render error takes precedence
		return nil, fmt.Errorf("visualize: failed to render chart: %w", err)
	}

	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("visualize: failed to finalize chart file: %w", err)
	}

	r.logger.Info("chart rendered",
		"path", r.outputPath,
		"bars", len(bars),
	)

	return []string{r.outputPath}, nil
}

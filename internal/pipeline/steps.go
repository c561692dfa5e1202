package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/nao1215/reportgen/internal/analyze"
	"github.com/nao1215/reportgen/internal/browser"
	"github.com/nao1215/reportgen/internal/collect"
	"github.com/nao1215/reportgen/internal/config"
	"github.com/nao1215/reportgen/internal/model"
	"github.com/nao1215/reportgen/internal/report"
	"github.com/nao1215/reportgen/internal/visualize"
)

// BrowseStep navigates to the target URL with browser automation and
// captures the page title, final URL, and rendered HTML.
//
// Design decision: Browsing is the only step that touches the network,
// so it owns the navigation timeout. A timeout is recorded on the report
// before the error propagates, letting callers distinguish a slow target
// from a broken one.
type BrowseStep struct {
	// automator fetches pages. Tests inject a fake implementation.
	automator browser.Automator

	// logger for structured logging.
	logger *slog.Logger
}

// BrowseStepOption configures a BrowseStep.
type BrowseStepOption func(*BrowseStep)

// WithBrowseLogger sets a custom logger for the browse step.
func WithBrowseLogger(logger *slog.Logger) BrowseStepOption {
	return func(s *BrowseStep) {
		s.logger = logger
	}
}

// NewBrowseStep creates a new browse step using the given automator.
func NewBrowseStep(automator browser.Automator, opts ...BrowseStepOption) *BrowseStep {
	s := &BrowseStep{
		automator: automator,
		logger:    slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *BrowseStep) Name() string {
	return "browse"
}

// Do executes the browse step.
func (s *BrowseStep) Do(ctx context.Context, r *model.ResearchReport) error {
	result, err := s.automator.Fetch(ctx, r.TargetURL)
	if err != nil {
		if errors.Is(err, browser.ErrTimeout) {
			r.TimedOut = true
		}
		return fmt.Errorf("browse step: %w", err)
	}

	r.PageTitle = result.Title
	r.FinalURL = result.FinalURL
	r.PageHTML = result.HTML

	s.logger.Info("page fetched",
		"title", result.Title,
		"final_url", result.FinalURL,
		"elapsed", result.Elapsed,
	)
	return nil
}

// CollectStep assembles the dataset from the fetched page HTML, falling
// back to the built-in placeholder table when the page has no parseable
// numeric table.
type CollectStep struct {
	// collector extracts or fabricates the dataset.
	collector *collect.Collector

	// logger for structured logging.
	logger *slog.Logger
}

// CollectStepOption configures a CollectStep.
type CollectStepOption func(*CollectStep)

// WithCollectLogger sets a custom logger for the collect step.
func WithCollectLogger(logger *slog.Logger) CollectStepOption {
	return func(s *CollectStep) {
		s.logger = logger
	}
}

// NewCollectStep creates a new collect step.
func NewCollectStep(opts ...CollectStepOption) *CollectStep {
	s := &CollectStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.collector = collect.New(collect.WithLogger(s.logger))
	return s
}

// Name returns the step name.
func (s *CollectStep) Name() string {
	return "collect"
}

// Do executes the collect step.
func (s *CollectStep) Do(_ context.Context, r *model.ResearchReport) error {
	dataset, source := s.collector.Collect(r.PageHTML)
	r.Dataset = dataset
	r.DatasetSource = source

	s.logger.Info("dataset assembled",
		"source", source,
		"rows", dataset.Rows(),
		"numeric_columns", len(dataset.Columns),
	)
	return nil
}

// AnalyzeStep computes descriptive statistics and correlations for the
// collected dataset.
type AnalyzeStep struct {
	// analyzer computes the statistics.
	analyzer *analyze.Analyzer

	// logger for structured logging.
	logger *slog.Logger
}

// AnalyzeStepOption configures an AnalyzeStep.
type AnalyzeStepOption func(*AnalyzeStep)

// WithAnalyzeLogger sets a custom logger for the analyze step.
func WithAnalyzeLogger(logger *slog.Logger) AnalyzeStepOption {
	return func(s *AnalyzeStep) {
		s.logger = logger
	}
}

// NewAnalyzeStep creates a new analyze step.
func NewAnalyzeStep(opts ...AnalyzeStepOption) *AnalyzeStep {
	s := &AnalyzeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.analyzer = analyze.New(analyze.WithLogger(s.logger))
	return s
}

// Name returns the step name.
func (s *AnalyzeStep) Name() string {
	return "analyze"
}

// Do executes the analyze step.
func (s *AnalyzeStep) Do(_ context.Context, r *model.ResearchReport) error {
	result, err := s.analyzer.Analyze(r.Dataset)
	if err != nil {
		return fmt.Errorf("analyze step: %w", err)
	}

	r.Analysis = result
	s.logger.Info("analysis complete",
		"numeric_columns", len(result.ColumnOrder),
		"text_columns", len(result.TextOrder),
	)
	return nil
}

// VisualizeStep renders the analysis into chart images on disk.
type VisualizeStep struct {
	// renderer draws the charts.
	renderer *visualize.Renderer

	// logger for structured logging.
	logger *slog.Logger
}

// VisualizeStepOption configures a VisualizeStep.
type VisualizeStepOption func(*VisualizeStep)

// WithVisualizeLogger sets a custom logger for the visualize step.
func WithVisualizeLogger(logger *slog.Logger) VisualizeStepOption {
	return func(s *VisualizeStep) {
		s.logger = logger
	}
}

// NewVisualizeStep creates a new visualize step writing the chart to
// chartPath with the given dimensions.
func NewVisualizeStep(chartPath string, width, height int, opts ...VisualizeStepOption) *VisualizeStep {
	s := &VisualizeStep{
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.renderer = visualize.New(chartPath,
		visualize.WithSize(width, height),
		visualize.WithLogger(s.logger),
	)
	return s
}

// Name returns the step name.
func (s *VisualizeStep) Name() string {
	return "visualize"
}

// Do executes the visualize step.
func (s *VisualizeStep) Do(_ context.Context, r *model.ResearchReport) error {
	paths, err := s.renderer.Render(r.Analysis)
	if err != nil {
		return fmt.Errorf("visualize step: %w", err)
	}

	r.ChartPaths = paths
	s.logger.Info("charts rendered", "count", len(paths))
	return nil
}

// CompileStep writes the report artifacts to disk. The HTML report is
// always written; Markdown and JSON variants are written when their
// paths are set.
type CompileStep struct {
	// htmlPath is the HTML report destination.
	htmlPath string

	// markdownPath, when non-empty, enables the Markdown variant.
	markdownPath string

	// jsonPath, when non-empty, enables the JSON variant.
	jsonPath string

	// logger for structured logging.
	logger *slog.Logger
}

// CompileStepOption configures a CompileStep.
type CompileStepOption func(*CompileStep)

// WithMarkdownOutput enables writing a Markdown report to the given path.
func WithMarkdownOutput(path string) CompileStepOption {
	return func(s *CompileStep) {
		s.markdownPath = path
	}
}

// WithJSONOutput enables writing a JSON report to the given path.
func WithJSONOutput(path string) CompileStepOption {
	return func(s *CompileStep) {
		s.jsonPath = path
	}
}

// WithCompileLogger sets a custom logger for the compile step.
func WithCompileLogger(logger *slog.Logger) CompileStepOption {
	return func(s *CompileStep) {
		s.logger = logger
	}
}

// NewCompileStep creates a new compile step writing the HTML report to
// htmlPath.
func NewCompileStep(htmlPath string, opts ...CompileStepOption) *CompileStep {
	s := &CompileStep{
		htmlPath: htmlPath,
		logger:   slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *CompileStep) Name() string {
	return "compile"
}

// Do executes the compile step.
func (s *CompileStep) Do(_ context.Context, r *model.ResearchReport) error {
	// Stamp completion before rendering so the report shows its duration.
	if r.DateCompleted.IsZero() {
		r.Complete()
	}

	if err := s.writeArtifact(s.htmlPath, func(f *os.File) report.Writer {
		return report.NewHTMLWriter(f, report.WithBaseDir(filepath.Dir(s.htmlPath)))
	}, r); err != nil {
		return err
	}
	r.ReportPath = s.htmlPath
	s.logger.Info("report compiled", "path", s.htmlPath)

	if s.markdownPath != "" {
		if err := s.writeArtifact(s.markdownPath, func(f *os.File) report.Writer {
			return report.NewMarkdownWriter(f)
		}, r); err != nil {
			return err
		}
		s.logger.Info("markdown report written", "path", s.markdownPath)
	}

	if s.jsonPath != "" {
		if err := s.writeArtifact(s.jsonPath, func(f *os.File) report.Writer {
			return report.NewJSONWriter(f, report.WithPrettyPrint())
		}, r); err != nil {
			return err
		}
		s.logger.Info("json report written", "path", s.jsonPath)
	}

	return nil
}

// writeArtifact creates the destination file and renders the report
// into it with the writer the factory builds.
func (s *CompileStep) writeArtifact(path string, factory func(*os.File) report.Writer, r *model.ResearchReport) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("compile step: failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("compile step: failed to create %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck // error checked via the write below

	if _, err := factory(f).Write(r); err != nil {
		return fmt.Errorf("compile step: failed to write %s: %w", path, err)
	}
	return nil
}

// PresentStep writes a Markdown slide outline summarizing the run.
type PresentStep struct {
	// slidesPath is the slide outline destination.
	slidesPath string

	// logger for structured logging.
	logger *slog.Logger
}

// PresentStepOption configures a PresentStep.
type PresentStepOption func(*PresentStep)

// WithPresentLogger sets a custom logger for the present step.
func WithPresentLogger(logger *slog.Logger) PresentStepOption {
	return func(s *PresentStep) {
		s.logger = logger
	}
}

// NewPresentStep creates a new present step writing slides to slidesPath.
func NewPresentStep(slidesPath string, opts ...PresentStepOption) *PresentStep {
	s := &PresentStep{
		slidesPath: slidesPath,
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Name returns the step name.
func (s *PresentStep) Name() string {
	return "present"
}

// Do executes the present step.
func (s *PresentStep) Do(_ context.Context, r *model.ResearchReport) error {
	if r.DateCompleted.IsZero() {
		r.Complete()
	}

	if dir := filepath.Dir(s.slidesPath); dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("present step: failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(s.slidesPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("present step: failed to create %s: %w", s.slidesPath, err)
	}
	defer f.Close() //nolint:errcheck // error checked via the write below

	if _, err := report.NewSlidesWriter(f).Write(r); err != nil {
		return fmt.Errorf("present step: failed to write %s: %w", s.slidesPath, err)
	}

	r.SlidesPath = s.slidesPath
	s.logger.Info("slides written", "path", s.slidesPath)
	return nil
}

// DefaultPipeline assembles the standard research pipeline from the
// configuration: browse, collect, analyze, visualize, compile, present.
func DefaultPipeline(cfg *config.Config, automator browser.Automator, logger *slog.Logger) *Pipeline {
	p := New(WithLogger(logger))

	compileOpts := []CompileStepOption{WithCompileLogger(logger)}
	if cfg.MarkdownReport {
		compileOpts = append(compileOpts, WithMarkdownOutput(markdownVariantPath(cfg.ReportPath())))
	}
	if cfg.JSONReport {
		compileOpts = append(compileOpts, WithJSONOutput(jsonVariantPath(cfg.ReportPath())))
	}

	p.AddSteps(
		NewBrowseStep(automator, WithBrowseLogger(logger)),
		NewCollectStep(WithCollectLogger(logger)),
		NewAnalyzeStep(WithAnalyzeLogger(logger)),
		NewVisualizeStep(cfg.ChartPath(), cfg.ChartWidth, cfg.ChartHeight, WithVisualizeLogger(logger)),
		NewCompileStep(cfg.ReportPath(), compileOpts...),
		NewPresentStep(cfg.SlidesPath(), WithPresentLogger(logger)),
	)
	return p
}

// markdownVariantPath derives the Markdown report path from the HTML
// report path by swapping the extension.
func markdownVariantPath(htmlPath string) string {
	return swapExt(htmlPath, ".md")
}

// jsonVariantPath derives the JSON report path from the HTML report path
// by swapping the extension.
func jsonVariantPath(htmlPath string) string {
	return swapExt(htmlPath, ".json")
}

func swapExt(path, ext string) string {
	return path[:len(path)-len(filepath.Ext(path))] + ext
}

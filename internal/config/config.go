package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
// These defaults reproduce the pipeline's out-of-the-box behavior: one
// fixed target page, artifacts written to the working directory, and a
// bounded browser session.
const (
	// DefaultTargetURL is the page the browser automation opens when no
	// target is given on the command line.
	DefaultTargetURL = "https://example.com"

	// DefaultNavigationTimeout bounds a single browser navigation.
	// Without it an unresponsive page would block the pipeline forever.
	// 30 seconds is generous for a headless load of a single page.
	DefaultNavigationTimeout = 30 * time.Second

	// DefaultRunTimeout bounds one full pipeline run, covering browser
	// startup, navigation, analysis, rendering, and report writing.
	DefaultRunTimeout = 2 * time.Minute

	// DefaultBatchSize is the number of concurrent pipeline runs when
	// several targets are given. Each run launches its own browser, so
	// the default stays small to keep memory use reasonable.
	DefaultBatchSize = 4

	// DefaultChartFile is the bar-chart image written by the visualizer.
	DefaultChartFile = "visualization_mean.png"

	// DefaultReportFile is the compiled report document.
	DefaultReportFile = "research_report.html"

	// DefaultSlidesFile is the presentation outline written by the
	// present step.
	DefaultSlidesFile = "slides.md"

	// DefaultChartWidth and DefaultChartHeight size the rendered chart
	// in pixels. 1024x512 reads well both in the HTML report and on its
	// own.
	DefaultChartWidth  = 1024
	DefaultChartHeight = 512

	// AppName is the application name used for XDG directory paths.
	AppName = "reportgen"
)

// Config holds all configuration options for reportgen.
// This struct is designed to be populated from CLI flags and passed through
// the application via dependency injection rather than global state.
//
// Design decision: We use a single flat struct instead of nested structs
// (e.g., BrowserConfig, ChartConfig) for simplicity. The number of options
// is manageable, and nesting would add complexity without significant
// benefit.
type Config struct {
	// Targets is the list of URLs to run the pipeline against.
	// When empty, DefaultTargetURL is used as the single target.
	Targets []string

	// OutputDir is the directory artifacts (chart, report, slides) are
	// written to. Defaults to the current working directory.
	OutputDir string

	// ChartFile is the chart image filename within OutputDir.
	ChartFile string

	// ReportFile is the report filename within OutputDir.
	ReportFile string

	// SlidesFile is the presentation outline filename within OutputDir.
	SlidesFile string

	// NavigationTimeout bounds a single browser navigation.
	NavigationTimeout time.Duration

	// RunTimeout bounds one full pipeline run.
	RunTimeout time.Duration

	// Headless controls whether the browser runs without a window.
	// Disabling it is useful when debugging the automation step.
	Headless bool

	// BatchSize is the number of concurrent pipeline runs when multiple
	// targets are given.
	BatchSize int

	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// JSONReport additionally writes a JSON variant of the report
	// next to the HTML one. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport additionally writes a Markdown variant of the
	// report next to the HTML one. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ChartWidth and ChartHeight size the rendered chart in pixels.
	ChartWidth  int
	ChartHeight int

	// ConfigFilePath is the path to the configuration file.
	// If empty, the tool searches for .reportgen.yaml in the current
	// directory and then in the user's home directory.
	ConfigFilePath string

	// SaveToDB indicates whether to record runs in the history database.
	SaveToDB bool

	// DBDir is the directory holding the run-history SQLite database.
	// Defaults to the XDG data directory.
	DBDir string
}

// NewConfig creates a new Config with default values.
// All fields are set to safe, sensible defaults that work for most use
// cases. Users can override specific values after creation.
//
// Design decision: We use a constructor function instead of relying on
// zero values because many defaults are non-zero (timeouts, filenames,
// chart dimensions). This also serves as documentation of the defaults.
func NewConfig() *Config {
	return &Config{
		OutputDir:         ".",
		ChartFile:         DefaultChartFile,
		ReportFile:        DefaultReportFile,
		SlidesFile:        DefaultSlidesFile,
		NavigationTimeout: DefaultNavigationTimeout,
		RunTimeout:        DefaultRunTimeout,
		Headless:          true,
		BatchSize:         DefaultBatchSize,
		ChartWidth:        DefaultChartWidth,
		ChartHeight:       DefaultChartHeight,
	}
}

// ChartPath returns the full path of the chart image.
func (c *Config) ChartPath() string {
	return filepath.Join(c.OutputDir, c.ChartFile)
}

// ReportPath returns the full path of the report document.
func (c *Config) ReportPath() string {
	return filepath.Join(c.OutputDir, c.ReportFile)
}

// SlidesPath returns the full path of the presentation outline.
func (c *Config) SlidesPath() string {
	return filepath.Join(c.OutputDir, c.SlidesFile)
}

// XDGDataDir returns the XDG data directory for reportgen.
// This follows the XDG Base Directory Specification.
// On Linux: ~/.local/share/reportgen
// On macOS: ~/Library/Application Support/reportgen
// On Windows: %LOCALAPPDATA%\reportgen
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for reportgen.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns a specific error describing what is invalid.
//
// Design decision: We validate at the config level rather than at each
// point of use to fail fast and provide clear error messages upfront.
// This is called once after CLI parsing, before the pipeline starts.
func (c *Config) Validate() error {
	for _, target := range c.Targets {
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return ErrInvalidTargetURL
		}
	}

	if c.NavigationTimeout <= 0 || c.RunTimeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}

	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return ErrInvalidChartSize
	}

	if c.OutputDir == "" {
		return ErrInvalidOutputDir
	}

	return nil
}

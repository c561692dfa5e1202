package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".reportgen.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .reportgen.yaml configuration file.
// Every field is optional; unset fields keep their flag or default value.
type File struct {
	// Target is the URL the pipeline runs against.
	Target string `yaml:"target,omitempty"`

	// OutputDir is the directory artifacts are written to.
	OutputDir string `yaml:"outputDir,omitempty"`

	// ChartFile overrides the chart image filename.
	ChartFile string `yaml:"chartFile,omitempty"`

	// ReportFile overrides the report filename.
	ReportFile string `yaml:"reportFile,omitempty"`

	// SlidesFile overrides the presentation outline filename.
	SlidesFile string `yaml:"slidesFile,omitempty"`

	// NavigationTimeout bounds a single browser navigation.
	NavigationTimeout time.Duration `yaml:"navigationTimeout,omitempty"`

	// RunTimeout bounds one full pipeline run.
	RunTimeout time.Duration `yaml:"runTimeout,omitempty"`

	// Headless controls windowless browser operation.
	// A pointer distinguishes "unset" from an explicit false.
	Headless *bool `yaml:"headless,omitempty"`

	// ChartWidth and ChartHeight size the rendered chart in pixels.
	ChartWidth  int `yaml:"chartWidth,omitempty"`
	ChartHeight int `yaml:"chartHeight,omitempty"`
}

// UnmarshalYAML decodes the configuration file, accepting Go duration
// strings like "30s" or "2m" for the timeout fields. yaml.v3 cannot
// decode such strings into time.Duration directly.
func (f *File) UnmarshalYAML(value *yaml.Node) error {
	type rawFile struct {
		Target            string `yaml:"target"`
		OutputDir         string `yaml:"outputDir"`
		ChartFile         string `yaml:"chartFile"`
		ReportFile        string `yaml:"reportFile"`
		SlidesFile        string `yaml:"slidesFile"`
		NavigationTimeout string `yaml:"navigationTimeout"`
		RunTimeout        string `yaml:"runTimeout"`
		Headless          *bool  `yaml:"headless"`
		ChartWidth        int    `yaml:"chartWidth"`
		ChartHeight       int    `yaml:"chartHeight"`
	}

	var raw rawFile
	if err := value.Decode(&raw); err != nil {
		return err
	}

	f.Target = raw.Target
	f.OutputDir = raw.OutputDir
	f.ChartFile = raw.ChartFile
	f.ReportFile = raw.ReportFile
	f.SlidesFile = raw.SlidesFile
	f.Headless = raw.Headless
	f.ChartWidth = raw.ChartWidth
	f.ChartHeight = raw.ChartHeight

	if raw.NavigationTimeout != "" {
		d, err := time.ParseDuration(raw.NavigationTimeout)
		if err != nil {
			return err
		}
		f.NavigationTimeout = d
	}
	if raw.RunTimeout != "" {
		d, err := time.ParseDuration(raw.RunTimeout)
		if err != nil {
			return err
		}
		f.RunTimeout = d
	}

	return nil
}

// Apply merges the file settings into cfg.
// Only fields that are set in the file override the existing values, so
// CLI flags and defaults survive for everything else.
func (f *File) Apply(cfg *Config) {
	if f.Target != "" && len(cfg.Targets) == 0 {
		cfg.Targets = []string{f.Target}
	}
	if f.OutputDir != "" {
		cfg.OutputDir = f.OutputDir
	}
	if f.ChartFile != "" {
		cfg.ChartFile = f.ChartFile
	}
	if f.ReportFile != "" {
		cfg.ReportFile = f.ReportFile
	}
	if f.SlidesFile != "" {
		cfg.SlidesFile = f.SlidesFile
	}
	if f.NavigationTimeout > 0 {
		cfg.NavigationTimeout = f.NavigationTimeout
	}
	if f.RunTimeout > 0 {
		cfg.RunTimeout = f.RunTimeout
	}
	if f.Headless != nil {
		cfg.Headless = *f.Headless
	}
	if f.ChartWidth > 0 {
		cfg.ChartWidth = f.ChartWidth
	}
	if f.ChartHeight > 0 {
		cfg.ChartHeight = f.ChartHeight
	}
}

// LoadConfigFile loads settings from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers should
// handle this error based on whether the path was explicitly specified by
// the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
//  1. If configPath is specified, use it directly
//  2. Look for .reportgen.yaml in the current directory
//  3. Look for .reportgen.yaml in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if
// not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}

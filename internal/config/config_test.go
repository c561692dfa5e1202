package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns a Config with all expected
// default values. This test ensures that defaults are documented through
// tests and that changes to defaults are intentional.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default chart file is visualization_mean.png", func(t *testing.T) {
		t.Parallel()
		if cfg.ChartFile != "visualization_mean.png" {
			t.Errorf("expected ChartFile to be 'visualization_mean.png', got '%s'", cfg.ChartFile)
		}
	})

	t.Run("default report file is research_report.html", func(t *testing.T) {
		t.Parallel()
		if cfg.ReportFile != "research_report.html" {
			t.Errorf("expected ReportFile to be 'research_report.html', got '%s'", cfg.ReportFile)
		}
	})

	t.Run("default navigation timeout is 30 seconds", func(t *testing.T) {
		t.Parallel()
		if cfg.NavigationTimeout != 30*time.Second {
			t.Errorf("expected NavigationTimeout to be 30s, got %v", cfg.NavigationTimeout)
		}
	})

	t.Run("default run timeout is 2 minutes", func(t *testing.T) {
		t.Parallel()
		if cfg.RunTimeout != 2*time.Minute {
			t.Errorf("expected RunTimeout to be 2m, got %v", cfg.RunTimeout)
		}
	})

	t.Run("default is headless", func(t *testing.T) {
		t.Parallel()
		if !cfg.Headless {
			t.Error("expected Headless to be true")
		}
	})

	t.Run("default batch size is 4", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 4 {
			t.Errorf("expected BatchSize to be 4, got %d", cfg.BatchSize)
		}
	})

	t.Run("default output dir is current directory", func(t *testing.T) {
		t.Parallel()
		if cfg.OutputDir != "." {
			t.Errorf("expected OutputDir to be '.', got '%s'", cfg.OutputDir)
		}
	})
}

// TestConfigValidate tests configuration validation.
func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:    "default config is valid",
			mutate:  func(*Config) {},
			wantErr: nil,
		},
		{
			name:    "valid https target",
			mutate:  func(c *Config) { c.Targets = []string{"https://example.com"} },
			wantErr: nil,
		},
		{
			name:    "rejects non-http scheme",
			mutate:  func(c *Config) { c.Targets = []string{"ftp://example.com"} },
			wantErr: ErrInvalidTargetURL,
		},
		{
			name:    "rejects relative URL",
			mutate:  func(c *Config) { c.Targets = []string{"example.com"} },
			wantErr: ErrInvalidTargetURL,
		},
		{
			name:    "rejects zero navigation timeout",
			mutate:  func(c *Config) { c.NavigationTimeout = 0 },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "rejects negative run timeout",
			mutate:  func(c *Config) { c.RunTimeout = -time.Second },
			wantErr: ErrInvalidTimeout,
		},
		{
			name:    "rejects zero batch size",
			mutate:  func(c *Config) { c.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name: "rejects conflicting report formats",
			mutate: func(c *Config) {
				c.JSONReport = true
				c.MarkdownReport = true
			},
			wantErr: ErrConflictingReportFormats,
		},
		{
			name:    "rejects zero chart width",
			mutate:  func(c *Config) { c.ChartWidth = 0 },
			wantErr: ErrInvalidChartSize,
		},
		{
			name:    "rejects empty output dir",
			mutate:  func(c *Config) { c.OutputDir = "" },
			wantErr: ErrInvalidOutputDir,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

// TestConfigPaths tests artifact path helpers.
func TestConfigPaths(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()
	cfg.OutputDir = "/tmp/out"

	if cfg.ChartPath() != filepath.Join("/tmp/out", "visualization_mean.png") {
		t.Errorf("unexpected chart path: %s", cfg.ChartPath())
	}
	if cfg.ReportPath() != filepath.Join("/tmp/out", "research_report.html") {
		t.Errorf("unexpected report path: %s", cfg.ReportPath())
	}
	if cfg.SlidesPath() != filepath.Join("/tmp/out", "slides.md") {
		t.Errorf("unexpected slides path: %s", cfg.SlidesPath())
	}
}

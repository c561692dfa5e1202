package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestLoadConfigFile tests YAML config file loading.
func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("loads valid config file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		content := `target: https://example.org
outputDir: /tmp/reports
navigationTimeout: 45s
headless: false
chartWidth: 640
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		cf, err := LoadConfigFile(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if cf.Target != "https://example.org" {
			t.Errorf("unexpected target: %s", cf.Target)
		}
		if cf.OutputDir != "/tmp/reports" {
			t.Errorf("unexpected output dir: %s", cf.OutputDir)
		}
		if cf.NavigationTimeout != 45*time.Second {
			t.Errorf("unexpected navigation timeout: %v", cf.NavigationTimeout)
		}
		if cf.Headless == nil || *cf.Headless {
			t.Error("expected headless to be explicitly false")
		}
		if cf.ChartWidth != 640 {
			t.Errorf("unexpected chart width: %d", cf.ChartWidth)
		}
	})

	t.Run("returns ErrConfigNotFound for missing file", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("expected ErrConfigNotFound, got %v", err)
		}
	})

	t.Run("returns error for malformed YAML", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte("target: [unclosed"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfigFile(path); err == nil {
			t.Error("expected error for malformed YAML")
		}
	})
}

// TestFileApply tests merging file settings into a Config.
func TestFileApply(t *testing.T) {
	t.Parallel()

	t.Run("set fields override defaults", func(t *testing.T) {
		t.Parallel()

		headless := false
		cf := &File{
			Target:      "https://example.org",
			OutputDir:   "/tmp/reports",
			ChartHeight: 400,
			Headless:    &headless,
		}

		cfg := NewConfig()
		cf.Apply(cfg)

		if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://example.org" {
			t.Errorf("unexpected targets: %v", cfg.Targets)
		}
		if cfg.OutputDir != "/tmp/reports" {
			t.Errorf("unexpected output dir: %s", cfg.OutputDir)
		}
		if cfg.ChartHeight != 400 {
			t.Errorf("unexpected chart height: %d", cfg.ChartHeight)
		}
		if cfg.Headless {
			t.Error("expected headless override to apply")
		}
	})

	t.Run("unset fields keep defaults", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		(&File{}).Apply(cfg)

		if cfg.ChartFile != DefaultChartFile {
			t.Errorf("unexpected chart file: %s", cfg.ChartFile)
		}
		if !cfg.Headless {
			t.Error("expected headless default to survive")
		}
		if cfg.NavigationTimeout != DefaultNavigationTimeout {
			t.Errorf("unexpected navigation timeout: %v", cfg.NavigationTimeout)
		}
	})

	t.Run("CLI targets win over file target", func(t *testing.T) {
		t.Parallel()

		cfg := NewConfig()
		cfg.Targets = []string{"https://cli.example.com"}
		(&File{Target: "https://file.example.com"}).Apply(cfg)

		if len(cfg.Targets) != 1 || cfg.Targets[0] != "https://cli.example.com" {
			t.Errorf("expected CLI target to win, got %v", cfg.Targets)
		}
	})
}

// TestFindConfigFile tests config file discovery.
func TestFindConfigFile(t *testing.T) {
	// Not parallel: changes the working directory.

	t.Run("explicit existing path is returned", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cfg.yaml")
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if got := FindConfigFile(path); got != path {
			t.Errorf("expected %s, got %s", path, got)
		}
	})

	t.Run("explicit missing path returns empty", func(t *testing.T) {
		if got := FindConfigFile(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
			t.Errorf("expected empty result, got %s", got)
		}
	})

	t.Run("finds config in current directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, DefaultConfigFile)
		if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		wd, err := os.Getwd()
		if err != nil {
			t.Fatalf("failed to get working directory: %v", err)
		}
		if err := os.Chdir(dir); err != nil {
			t.Fatalf("failed to change directory: %v", err)
		}
		t.Cleanup(func() {
			if err := os.Chdir(wd); err != nil {
				t.Fatalf("failed to restore working directory: %v", err)
			}
		})

		got := FindConfigFile("")
		if filepath.Base(got) != DefaultConfigFile {
			t.Errorf("expected to find %s, got %s", DefaultConfigFile, got)
		}
	})
}

package visualize

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nao1215/reportgen/internal/model"
)

// sampleAnalysis returns an analysis result with two numeric columns.
func sampleAnalysis() *model.AnalysisResult {
	return &model.AnalysisResult{
		ColumnOrder: []string{"Values", "Weight"},
		Summary: map[string]model.ColumnSummary{
			"Values": {Count: 4, Mean: 29.25},
			"Weight": {Count: 4, Mean: 12.5},
		},
	}
}

// TestRenderWritesChart verifies the chart file is created and non-empty.
func TestRenderWritesChart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "visualization_mean.png")
	renderer := New(path)

	paths, err := renderer.Render(sampleAnalysis())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(paths) != 1 {
		t.Fatalf("expected exactly one path, got %d", len(paths))
	}
	if paths[0] != path {
		t.Errorf("unexpected path: %s", paths[0])
	}

	info, err := os.Stat(paths[0])
	if err != nil {
		t.Fatalf("chart file missing: %v", err)
	}
	if info.Size() == 0 {
		t.Error("chart file is empty")
	}
}

// TestRenderOverwritesExistingFile verifies repeated runs truncate rather
// than append.
func TestRenderOverwritesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "chart.png")
	renderer := New(path)

	if _, err := renderer.Render(sampleAnalysis()); err != nil {
		t.Fatalf("first render failed: %v", err)
	}
	first, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	if _, err := renderer.Render(sampleAnalysis()); err != nil {
		t.Fatalf("second render failed: %v", err)
	}
	second, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}

	// Identical input renders an identical image; appending would grow it.
	if second.Size() != first.Size() {
		t.Errorf("expected overwrite, sizes differ: %d vs %d", first.Size(), second.Size())
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected exactly one file, got %d", len(entries))
	}
}

// TestRenderCreatesOutputDirectory verifies missing directories are created.
func TestRenderCreatesOutputDirectory(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "out", "chart.png")

	if _, err := New(path).Render(sampleAnalysis()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("chart file missing: %v", err)
	}
}

// TestRenderEqualMeans verifies charts render when all means are equal.
func TestRenderEqualMeans(t *testing.T) {
	t.Parallel()

	analysis := &model.AnalysisResult{
		ColumnOrder: []string{"A", "B"},
		Summary: map[string]model.ColumnSummary{
			"A": {Count: 2, Mean: 5},
			"B": {Count: 2, Mean: 5},
		},
	}

	path := filepath.Join(t.TempDir(), "flat.png")
	if _, err := New(path).Render(analysis); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestRenderErrors tests error classification.
func TestRenderErrors(t *testing.T) {
	t.Parallel()

	t.Run("nil analysis", func(t *testing.T) {
		t.Parallel()

		_, err := New(filepath.Join(t.TempDir(), "c.png")).Render(nil)
		if !errors.Is(err, ErrNilAnalysis) {
			t.Errorf("expected ErrNilAnalysis, got %v", err)
		}
	})

	t.Run("no numeric columns", func(t *testing.T) {
		t.Parallel()

		analysis := &model.AnalysisResult{
			TextOrder: []string{"Category"},
			Summary: map[string]model.ColumnSummary{
				"Category": {Count: 4},
			},
		}

		_, err := New(filepath.Join(t.TempDir(), "c.png")).Render(analysis)
		if !errors.Is(err, ErrNoChartData) {
			t.Errorf("expected ErrNoChartData, got %v", err)
		}
	})
}

// TestWithSize verifies size options are applied and guarded.
func TestWithSize(t *testing.T) {
	t.Parallel()

	r := New("chart.png", WithSize(640, 480))
	if r.width != 640 || r.height != 480 {
		t.Errorf("unexpected size: %dx%d", r.width, r.height)
	}

	r = New("chart.png", WithSize(0, -1))
	if r.width != DefaultWidth || r.height != DefaultHeight {
		t.Errorf("expected defaults for invalid size, got %dx%d", r.width, r.height)
	}
}

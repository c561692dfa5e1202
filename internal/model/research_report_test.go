package model

import (
	"errors"
	"testing"
)

// TestNewResearchReport tests report construction.
func TestNewResearchReport(t *testing.T) {
	t.Parallel()

	report := NewResearchReport("https://example.com")

	if report.TargetURL != "https://example.com" {
		t.Errorf("unexpected target URL: %s", report.TargetURL)
	}
	if report.DateStarted.IsZero() {
		t.Error("expected DateStarted to be set")
	}
	if !report.DateCompleted.IsZero() {
		t.Error("expected DateCompleted to be unset")
	}
}

// TestResearchReportCompletion tests completion and duration tracking.
func TestResearchReportCompletion(t *testing.T) {
	t.Parallel()

	report := NewResearchReport("https://example.com")

	if report.Duration() != 0 {
		t.Error("expected zero duration before completion")
	}

	report.Complete()

	if report.DateCompleted.IsZero() {
		t.Error("expected DateCompleted to be set after Complete")
	}
	if report.Duration() < 0 {
		t.Errorf("expected non-negative duration, got %v", report.Duration())
	}
}

// TestResearchReportSucceeded tests success classification.
func TestResearchReportSucceeded(t *testing.T) {
	t.Parallel()

	t.Run("clean run succeeds", func(t *testing.T) {
		t.Parallel()

		report := NewResearchReport("https://example.com")
		if !report.Succeeded() {
			t.Error("expected clean report to have succeeded")
		}
	})

	t.Run("recorded error fails", func(t *testing.T) {
		t.Parallel()

		report := NewResearchReport("https://example.com")
		report.Error = errors.New("collect failed")
		report.ErrorMessage = report.Error.Error()
		if report.Succeeded() {
			t.Error("expected errored report to have failed")
		}
	})

	t.Run("timeout fails", func(t *testing.T) {
		t.Parallel()

		report := NewResearchReport("https://example.com")
		report.TimedOut = true
		if report.Succeeded() {
			t.Error("expected timed-out report to have failed")
		}
	})
}

// TestAnalysisResultLookups tests map-backed accessor helpers.
func TestAnalysisResultLookups(t *testing.T) {
	t.Parallel()

	result := &AnalysisResult{
		ColumnOrder: []string{"Values"},
		Summary: map[string]ColumnSummary{
			"Values": {Count: 4, Mean: 29.25},
		},
		Correlations: map[string]map[string]float64{
			"Values": {"Values": 1},
		},
	}

	t.Run("SummaryFor finds analyzed column", func(t *testing.T) {
		t.Parallel()

		s, ok := result.SummaryFor("Values")
		if !ok {
			t.Fatal("expected summary for Values")
		}
		if s.Mean != 29.25 {
			t.Errorf("expected mean 29.25, got %v", s.Mean)
		}
	})

	t.Run("CorrelationBetween finds diagonal", func(t *testing.T) {
		t.Parallel()

		v, ok := result.CorrelationBetween("Values", "Values")
		if !ok || v != 1 {
			t.Errorf("expected diagonal correlation 1, got %v (ok=%v)", v, ok)
		}
	})

	t.Run("lookups report missing columns", func(t *testing.T) {
		t.Parallel()

		if _, ok := result.SummaryFor("missing"); ok {
			t.Error("expected missing summary lookup to fail")
		}
		if _, ok := result.CorrelationBetween("missing", "Values"); ok {
			t.Error("expected missing correlation lookup to fail")
		}
	})
}

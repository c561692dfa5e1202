package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/nao1215/reportgen/internal/model"
	"github.com/nao1215/reportgen/internal/store"
)

// TestNewHistoryCmd tests the history command creation.
func TestNewHistoryCmd(t *testing.T) {
	t.Parallel()

	cmd := NewHistoryCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "history" {
			t.Errorf("expected use 'history', got %q", cmd.Use)
		}
	})

	t.Run("has limit flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.Flags().Lookup("limit")
		if flag == nil {
			t.Fatal("expected limit flag")
		}
		if flag.Shorthand != "n" {
			t.Errorf("expected shorthand 'n', got %q", flag.Shorthand)
		}
		if flag.DefValue != "20" {
			t.Errorf("expected default '20', got %q", flag.DefValue)
		}
	})

	t.Run("has db-dir flag", func(t *testing.T) {
		t.Parallel()
		if cmd.Flags().Lookup("db-dir") == nil {
			t.Fatal("expected db-dir flag")
		}
	})
}

// TestRunHistoryCmd tests the history command execution.
func TestRunHistoryCmd(t *testing.T) {
	t.Parallel()

	t.Run("lists saved runs", func(t *testing.T) {
		t.Parallel()

		dbDir := t.TempDir()
		db, err := store.Open(dbDir, store.DefaultOptions())
		if err != nil {
			t.Fatal(err)
		}

		r := model.NewResearchReport("https://example.com")
		r.DatasetSource = model.DatasetSourcePlaceholder
		r.ReportPath = "research_report.html"
		r.Complete()
		if _, err := db.SaveRun(context.Background(), r); err != nil {
			t.Fatal(err)
		}
		if err := db.Close(); err != nil {
			t.Fatal(err)
		}

		cmd := NewHistoryCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetArgs([]string{"--db-dir", dbDir})

		if err := cmd.Execute(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		output := out.String()
		if !strings.Contains(output, "https://example.com") {
			t.Errorf("expected target in output, got %q", output)
		}
		if !strings.Contains(output, "ok") {
			t.Errorf("expected success status in output, got %q", output)
		}
		if !strings.Contains(output, "placeholder") {
			t.Errorf("expected dataset source in output, got %q", output)
		}
	})

	t.Run("fails when no database exists", func(t *testing.T) {
		t.Parallel()

		cmd := NewHistoryCmd()
		cmd.SetOut(new(bytes.Buffer))
		cmd.SetErr(new(bytes.Buffer))
		cmd.SetArgs([]string{"--db-dir", t.TempDir()})

		if err := cmd.Execute(); err == nil {
			t.Error("expected error for missing database, got nil")
		}
	})
}

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/nao1215/reportgen/internal/model"
)

// openTestStore creates a store in a temp directory and closes it when
// the test finishes.
func openTestStore(t *testing.T) *RunStore {
	t.Helper()

	s, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
	return s
}

// completedReport builds a finished report for the given target.
func completedReport(target string) *model.ResearchReport {
	r := model.NewResearchReport(target)
	r.PageTitle = "Example Domain"
	r.DatasetSource = model.DatasetSourcePlaceholder
	r.ReportPath = "research_report.html"
	r.PerformedSteps = []string{"browse", "collect", "analyze", "visualize", "compile"}
	r.Complete()
	return r
}

func TestRunStoreSaveAndGet(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRun(ctx, completedReport("https://example.com"))
	if err != nil {
		t.Fatalf("SaveRun() error = %v, want nil", err)
	}
	if id == 0 {
		t.Fatal("SaveRun() id = 0, want non-zero")
	}

	got, err := s.GetRun(ctx, id)
	if err != nil {
		t.Fatalf("GetRun() error = %v, want nil", err)
	}
	if got.TargetURL != "https://example.com" {
		t.Errorf("TargetURL = %q, want %q", got.TargetURL, "https://example.com")
	}
	if got.PageTitle != "Example Domain" {
		t.Errorf("PageTitle = %q, want %q", got.PageTitle, "Example Domain")
	}
	if got.DatasetSource != model.DatasetSourcePlaceholder {
		t.Errorf("DatasetSource = %q, want %q", got.DatasetSource, model.DatasetSourcePlaceholder)
	}
	if len(got.PerformedSteps) != 5 {
		t.Errorf("len(PerformedSteps) = %d, want 5", len(got.PerformedSteps))
	}
}

func TestRunStoreGetRunNotFound(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)

	if _, err := s.GetRun(context.Background(), 12345); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("GetRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestRunStoreLatestRun(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	first := completedReport("https://example.com")
	first.PageTitle = "First"
	if _, err := s.SaveRun(ctx, first); err != nil {
		t.Fatalf("SaveRun() error = %v, want nil", err)
	}

	second := completedReport("https://example.com")
	second.PageTitle = "Second"
	if _, err := s.SaveRun(ctx, second); err != nil {
		t.Fatalf("SaveRun() error = %v, want nil", err)
	}

	got, err := s.LatestRun(ctx, "https://example.com")
	if err != nil {
		t.Fatalf("LatestRun() error = %v, want nil", err)
	}
	if got.PageTitle != "Second" {
		t.Errorf("PageTitle = %q, want %q", got.PageTitle, "Second")
	}

	if _, err := s.LatestRun(ctx, "https://other.example.com"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LatestRun() error = %v, want ErrRunNotFound", err)
	}
}

func TestRunStoreListRuns(t *testing.T) {
	t.Parallel()

	s := openTestStore(t)
	ctx := context.Background()

	targets := []string{
		"https://a.example.com",
		"https://b.example.com",
		"https://c.example.com",
	}
	for _, target := range targets {
		r := completedReport(target)
		if _, err := s.SaveRun(ctx, r); err != nil {
			t.Fatalf("SaveRun(%s) error = %v, want nil", target, err)
		}
	}

	failed := model.NewResearchReport("https://bad.example.com")
	failed.ErrorMessage = "navigation failed"
	failed.Complete()
	if _, err := s.SaveRun(ctx, failed); err != nil {
		t.Fatalf("SaveRun() error = %v, want nil", err)
	}

	t.Run("all runs newest first", func(t *testing.T) {
		t.Parallel()

		runs, err := s.ListRuns(ctx, 0)
		if err != nil {
			t.Fatalf("ListRuns() error = %v, want nil", err)
		}
		if len(runs) != 4 {
			t.Fatalf("len(runs) = %d, want 4", len(runs))
		}
		if runs[0].TargetURL != "https://bad.example.com" {
			t.Errorf("runs[0].TargetURL = %q, want newest run first", runs[0].TargetURL)
		}
		if runs[0].Succeeded {
			t.Error("runs[0].Succeeded = true, want false for failed run")
		}
		if !runs[3].Succeeded {
			t.Error("runs[3].Succeeded = false, want true")
		}
	})

	t.Run("limit caps results", func(t *testing.T) {
		t.Parallel()

		runs, err := s.ListRuns(ctx, 2)
		if err != nil {
			t.Fatalf("ListRuns() error = %v, want nil", err)
		}
		if len(runs) != 2 {
			t.Errorf("len(runs) = %d, want 2", len(runs))
		}
	})
}

func TestOpenWithoutCreate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	if _, err := Open(dir, Options{CreateIfNotExists: false}); err == nil {
		t.Error("Open() error = nil, want error for missing database")
	}

	s, err := Open(dir, DefaultOptions())
	if err != nil {
		t.Fatalf("Open() error = %v, want nil", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(dir, Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		t.Fatalf("Open() existing database error = %v, want nil", err)
	}
	if err := reopened.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/pagelint/pagelint/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *RunDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testReport(url string, broken int) *model.PageReport {
	report := model.NewPageReport(url, "US/EN")
	report.Title = "Test Page"
	for i := 0; i < broken; i++ {
		report.PageLinks = append(report.PageLinks, model.LinkCheck{
			URL:        "https://example.com/gone",
			StatusCode: 404,
			State:      model.LinkStateBroken,
		})
	}
	report.PageLinks = append(report.PageLinks, model.LinkCheck{
		URL:        "https://example.com/ok",
		StatusCode: 200,
		State:      model.LinkStateValid,
	})
	return report
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer func() { _ = db.Close() }()

		if _, err := os.Stat(filepath.Join(dbDir, "pagelint.db")); os.IsNotExist(err) {
			t.Error("database file was not created")
		}
	})

	t.Run("CreateIfNotExists=false requires existing database", func(t *testing.T) {
		t.Parallel()

		opts := DefaultOptions()
		opts.CreateIfNotExists = false
		if _, err := Open(t.TempDir(), opts); err == nil {
			t.Error("expected error opening missing database")
		}
	})
}

func TestSaveAndLatestRun(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	url := "https://www.solidigm.com/products/data-center.html"

	id, err := db.SaveRun(ctx, testReport(url, 2))
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}
	if id == 0 {
		t.Error("SaveRun() returned zero ID")
	}

	got, err := db.LatestRun(ctx, url)
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if got == nil {
		t.Fatal("LatestRun() = nil, want stored report")
	}
	if got.URL != url || got.Title != "Test Page" {
		t.Errorf("LatestRun() = %q/%q, want stored report", got.URL, got.Title)
	}
	if got.Summarize().BrokenLinks != 2 {
		t.Errorf("BrokenLinks = %d, want 2", got.Summarize().BrokenLinks)
	}
}

func TestLatestRunUnknownURL(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	got, err := db.LatestRun(context.Background(), "https://never-scanned.example.com")
	if err != nil {
		t.Fatalf("LatestRun() error = %v", err)
	}
	if got != nil {
		t.Errorf("LatestRun() = %+v, want nil", got)
	}
}

func TestLastTwoRuns(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	url := "https://www.solidigm.com/products/data-center/d7.html"

	t.Run("errors with fewer than two runs", func(t *testing.T) {
		if _, _, err := db.LastTwoRuns(ctx, url); err == nil {
			t.Error("expected error with no stored runs")
		}
	})

	t.Run("returns newest first", func(t *testing.T) {
		if _, err := db.SaveRun(ctx, testReport(url, 3)); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
		if _, err := db.SaveRun(ctx, testReport(url, 0)); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}

		latest, previous, err := db.LastTwoRuns(ctx, url)
		if err != nil {
			t.Fatalf("LastTwoRuns() error = %v", err)
		}
		if latest.Summarize().BrokenLinks != 0 {
			t.Errorf("latest broken links = %d, want 0", latest.Summarize().BrokenLinks)
		}
		if previous.Summarize().BrokenLinks != 3 {
			t.Errorf("previous broken links = %d, want 3", previous.Summarize().BrokenLinks)
		}
	})
}

func TestRunByID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	id, err := db.SaveRun(ctx, testReport("https://example.com/a.html", 1))
	if err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	got, err := db.RunByID(ctx, id)
	if err != nil {
		t.Fatalf("RunByID() error = %v", err)
	}
	if got == nil || got.URL != "https://example.com/a.html" {
		t.Errorf("RunByID() = %+v, want stored report", got)
	}

	missing, err := db.RunByID(ctx, id+999)
	if err != nil {
		t.Fatalf("RunByID() error = %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID() for unknown ID = %+v, want nil", missing)
	}
}

func TestHistoryAndValidatedURLs(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()

	urls := []string{
		"https://example.com/a.html",
		"https://example.com/b.html",
	}
	for _, u := range urls {
		if _, err := db.SaveRun(ctx, testReport(u, 0)); err != nil {
			t.Fatalf("SaveRun() error = %v", err)
		}
	}
	if _, err := db.SaveRun(ctx, testReport(urls[0], 1)); err != nil {
		t.Fatalf("SaveRun() error = %v", err)
	}

	history, err := db.History(ctx, urls[0])
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("History() returned %d rows, want 2", len(history))
	}
	if history[0].Passed {
		t.Error("newest run should have failed (1 broken link)")
	}
	if !history[1].Passed {
		t.Error("older run should have passed")
	}

	got, err := db.ValidatedURLs(ctx)
	if err != nil {
		t.Fatalf("ValidatedURLs() error = %v", err)
	}
	if len(got) != 2 || got[0] != urls[0] || got[1] != urls[1] {
		t.Errorf("ValidatedURLs() = %v, want %v", got, urls)
	}
}

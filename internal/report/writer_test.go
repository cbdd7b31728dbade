package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pagelint/pagelint/internal/model"
)

// createTestReport builds a report with enough findings to exercise
// every writer section.
func createTestReport() *model.PageReport {
	report := model.NewPageReport("https://www.solidigm.com/products/data-center.html", "US/EN")
	report.Title = "Data Center SSDs"
	report.DateScanned = time.Date(2026, 8, 28, 10, 30, 0, 0, time.UTC)
	report.Duration = 42 * time.Second
	report.HeaderFound = true
	report.FooterFound = true

	report.Navigation = &model.NavigationSnapshot{
		Found: true,
		Menus: []model.MenuItem{
			{Name: "Product", Visible: true, Expected: true},
			{Name: "Support", Visible: true, Expected: true},
		},
		FontStyles: []model.FontStyle{
			{Element: "menu_item", Size: "16.00px", Weight: "600", Color: "rgb(0, 0, 0)"},
		},
	}
	report.Hero = &model.HeroSnapshot{
		Found:            true,
		Title:            model.TextStyle{Found: true, Text: "D7 Series"},
		IdentifiedSeries: "D7",
	}
	report.SeriesCards = &model.SeriesCardsSnapshot{
		Found:          true,
		ExpectedSeries: []string{"D7", "D5", "D3"},
		AllPresent:     true,
		Cards: []model.SeriesCard{
			{Series: "D7", Href: "/products/data-center/d7.html", URLFormatValid: true},
			{Series: "D5", Href: "/products/data-center/d5.html", URLFormatValid: true},
			{Series: "D3", Href: "/products/data-center/d3.html", URLFormatValid: true},
		},
	}
	report.PageLinks = []model.LinkCheck{
		{URL: "https://www.solidigm.com/support.html", StatusCode: 200, State: model.LinkStateValid},
		{URL: "https://www.solidigm.com/gone.html", StatusCode: 404, State: model.LinkStateBroken},
		{URL: "https://slow.example.com/", State: model.LinkStateNotChecked, Message: "timeout"},
		{URL: "mailto:press@solidigm.com", State: model.LinkStateSkipped},
	}
	return report
}

func TestTextWriter(t *testing.T) {
	t.Parallel()

	t.Run("writes header and summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{
			"PAGE VALIDATION REPORT",
			"https://www.solidigm.com/products/data-center.html",
			"US/EN",
			"1 broken",
			"FAIL",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q", want)
			}
		}
	})

	t.Run("lists broken links", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "BROKEN LINKS") {
			t.Error("expected broken links section")
		}
		if !strings.Contains(out, "[404] https://www.solidigm.com/gone.html") {
			t.Error("expected broken link entry with status code")
		}
	})

	t.Run("verbose lists every link", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf, WithVerbose()).Write(createTestReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		out := buf.String()
		if !strings.Contains(out, "ALL LINKS") {
			t.Error("expected all-links section in verbose mode")
		}
		if !strings.Contains(out, "mailto:press@solidigm.com") {
			t.Error("expected skipped link in verbose output")
		}
	})

	t.Run("passing report says PASS", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.PageLinks = report.PageLinks[:1]

		var buf bytes.Buffer
		if _, err := NewTextWriter(&buf).Write(report); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !strings.Contains(buf.String(), "PASS") {
			t.Error("expected PASS for report without broken links")
		}
	})
}

func TestJSONWriter(t *testing.T) {
	t.Parallel()

	t.Run("emits valid json with summary", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		var decoded struct {
			Summary model.Summary     `json:"summary"`
			Report  *model.PageReport `json:"report"`
		}
		if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
			t.Fatalf("output is not valid JSON: %v", err)
		}
		if decoded.Summary.BrokenLinks != 1 {
			t.Errorf("summary.BrokenLinks = %d, want 1", decoded.Summary.BrokenLinks)
		}
		if decoded.Report.URL != "https://www.solidigm.com/products/data-center.html" {
			t.Errorf("report.URL = %q", decoded.Report.URL)
		}
	})

	t.Run("pretty print indents", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewJSONWriter(&buf, WithPrettyPrint()).Write(createTestReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if !strings.Contains(buf.String(), "\n  ") {
			t.Error("expected indented output")
		}
	})
}

func TestMarkdownWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewMarkdownWriter(&buf).Write(createTestReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# Page Validation Report",
		"## Summary",
		"## Components",
		"## Broken Links",
		"## Font Styles",
		"series D7",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown output missing %q", want)
		}
	}
}

func TestHTMLWriter(t *testing.T) {
	t.Parallel()

	t.Run("renders complete document", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(createTestReport()); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		out := buf.String()
		for _, want := range []string{
			"<!DOCTYPE html>",
			"Page Validation Report",
			"Broken Links",
			"https://www.solidigm.com/gone.html",
			"</html>",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("html output missing %q", want)
			}
		}
	})

	t.Run("escapes untrusted text", func(t *testing.T) {
		t.Parallel()

		report := createTestReport()
		report.Title = `<script>alert("x")</script>`

		var buf bytes.Buffer
		if _, err := NewHTMLWriter(&buf).Write(report); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		if strings.Contains(buf.String(), "<script>alert") {
			t.Error("expected page title to be HTML-escaped")
		}
	})
}

func TestExcelWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if _, err := NewExcelWriter(&buf).Write(createTestReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a valid workbook: %v", err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.Errorf("close workbook: %v", err)
		}
	}()

	sheets := f.GetSheetList()
	want := []string{sheetSummary, sheetComponents, sheetLinks, sheetFontStyles}
	if len(sheets) != len(want) {
		t.Fatalf("sheets = %v, want %v", sheets, want)
	}
	for i, name := range want {
		if sheets[i] != name {
			t.Errorf("sheets[%d] = %q, want %q", i, sheets[i], name)
		}
	}

	url, err := f.GetCellValue(sheetSummary, "B1")
	if err != nil {
		t.Fatalf("GetCellValue() error = %v", err)
	}
	if url != "https://www.solidigm.com/products/data-center.html" {
		t.Errorf("Summary B1 = %q, want report URL", url)
	}
}

func TestMultiWriter(t *testing.T) {
	t.Parallel()

	var text, jsonBuf bytes.Buffer
	mw := NewMultiWriter(NewTextWriter(&text), NewJSONWriter(&jsonBuf))

	if _, err := mw.Write(createTestReport()); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if text.Len() == 0 {
		t.Error("expected text output")
	}
	if jsonBuf.Len() == 0 {
		t.Error("expected json output")
	}
}

package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/pagelint/pagelint/internal/model"
)

// Excel sheet names, in workbook order.
const (
	sheetSummary    = "Summary"
	sheetComponents = "Components"
	sheetLinks      = "Links"
	sheetFontStyles = "Font Styles"
)

// ExcelWriter renders reports as an .xlsx workbook with one sheet per
// concern: summary, components, links, and collected font styles.
type ExcelWriter struct {
	baseWriter
}

// NewExcelWriter creates an ExcelWriter writing the workbook bytes to
// output.
func NewExcelWriter(output io.Writer) *ExcelWriter {
	return &ExcelWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the report as an Excel workbook.
func (w *ExcelWriter) Write(report *model.PageReport) (int, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close() //nolint:errcheck // in-memory workbook, nothing to flush
	}()

	if err := w.writeSummarySheet(f, report); err != nil {
		return 0, err
	}
	if err := w.writeComponentsSheet(f, report); err != nil {
		return 0, err
	}
	if err := w.writeLinksSheet(f, report); err != nil {
		return 0, err
	}
	if err := w.writeFontStylesSheet(f, report); err != nil {
		return 0, err
	}

	n, err := f.WriteTo(w.output)
	return int(n), err
}

func (w *ExcelWriter) writeSummarySheet(f *excelize.File, report *model.PageReport) error {
	// The default sheet becomes Summary so the workbook opens on it.
	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return err
	}
	summary := report.Summarize()

	rows := [][2]interface{}{
		{"URL", report.URL},
		{"Locale", report.Locale},
		{"Title", report.Title},
		{"Scanned", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
		{"Duration", report.Duration.Round(timeRounding).String()},
		{"Result", passFail(summary)},
		{"Components probed", summary.ComponentsProbed},
		{"Components found", summary.ComponentsFound},
		{"Component errors", summary.ComponentErrors},
		{"Total links", summary.TotalLinks},
		{"Valid links", summary.ValidLinks},
		{"Broken links", summary.BrokenLinks},
		{"Not checked", summary.UncheckedLinks},
		{"Skipped", summary.SkippedLinks},
		{"Header found", report.HeaderFound},
		{"Footer found", report.FooterFound},
	}
	for i, row := range rows {
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("A%d", i+1), row[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(sheetSummary, fmt.Sprintf("B%d", i+1), row[1]); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetSummary, "A", "B", 40)
}

func (w *ExcelWriter) writeComponentsSheet(f *excelize.File, report *model.PageReport) error {
	if _, err := f.NewSheet(sheetComponents); err != nil {
		return err
	}
	if err := setRow(f, sheetComponents, 1, "Component", "Status", "Detail"); err != nil {
		return err
	}
	for i, r := range componentRows(report) {
		if err := setRow(f, sheetComponents, i+2, r.name, r.status, r.detail); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetComponents, "A", "C", 35)
}

func (w *ExcelWriter) writeLinksSheet(f *excelize.File, report *model.PageReport) error {
	if _, err := f.NewSheet(sheetLinks); err != nil {
		return err
	}
	if err := setRow(f, sheetLinks, 1, "URL", "Text", "Status Code", "State", "Message"); err != nil {
		return err
	}
	for i, l := range report.AllLinks() {
		if err := setRow(f, sheetLinks, i+2, l.URL, l.Text, l.StatusCode, string(l.State), l.Message); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetLinks, "A", "A", 70)
}

func (w *ExcelWriter) writeFontStylesSheet(f *excelize.File, report *model.PageReport) error {
	if _, err := f.NewSheet(sheetFontStyles); err != nil {
		return err
	}
	if err := setRow(f, sheetFontStyles, 1, "Source", "Element", "Size", "Weight", "Color", "Family"); err != nil {
		return err
	}

	row := 2
	add := func(source string, styles []model.FontStyle) error {
		for _, s := range styles {
			if err := setRow(f, sheetFontStyles, row, source, s.Element, s.Size, s.Weight, s.Color, s.Family); err != nil {
				return err
			}
			row++
		}
		return nil
	}

	if report.Navigation != nil {
		if err := add("navigation", report.Navigation.FontStyles); err != nil {
			return err
		}
	}
	if report.Carousels != nil {
		for _, c := range report.Carousels.Carousels {
			if err := add(fmt.Sprintf("carousel %d", c.Index), c.FontStyles); err != nil {
				return err
			}
		}
	}
	if report.Hero != nil && report.Hero.Title.Found {
		if err := add("hero", []model.FontStyle{report.Hero.Title.Font, report.Hero.Description.Font}); err != nil {
			return err
		}
	}
	return f.SetColWidth(sheetFontStyles, "A", "F", 25)
}

// setRow writes one row of values starting at column A.
func setRow(f *excelize.File, sheet string, row int, values ...interface{}) error {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return err
		}
	}
	return nil
}

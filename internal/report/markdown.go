package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/pagelint/pagelint/internal/model"
)

// MarkdownWriter renders reports as Markdown for sharing and review.
//
// Design decision: the nao1215/markdown builder instead of hand-rolled
// string concatenation. Tables dominate this report, and the builder
// keeps column escaping and alignment correct.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter writing to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write renders the report as a Markdown document.
func (w *MarkdownWriter) Write(report *model.PageReport) (int, error) {
	md := markdown.NewMarkdown(w.output)
	summary := report.Summarize()

	md.H1("Page Validation Report")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URL", "`" + report.URL + "`"},
			{"Locale", report.Locale},
			{"Title", report.Title},
			{"Scanned", report.DateScanned.Format("2006-01-02 15:04:05 MST")},
			{"Duration", report.Duration.Round(timeRounding).String()},
			{"Result", passFail(summary)},
		},
	})
	md.PlainText("")

	md.H2("Summary")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Count"},
		Rows: [][]string{
			{"Components probed", strconv.Itoa(summary.ComponentsProbed)},
			{"Components found", strconv.Itoa(summary.ComponentsFound)},
			{"Component errors", strconv.Itoa(summary.ComponentErrors)},
			{"Total links", strconv.Itoa(summary.TotalLinks)},
			{"Valid links", strconv.Itoa(summary.ValidLinks)},
			{"Broken links", strconv.Itoa(summary.BrokenLinks)},
			{"Not checked", strconv.Itoa(summary.UncheckedLinks)},
			{"Skipped", strconv.Itoa(summary.SkippedLinks)},
		},
	})
	md.PlainText("")

	w.writeComponents(md, report)
	w.writeBrokenLinks(md, report)
	w.writeFontStyles(md, report)

	if report.Error != "" {
		md.H2("Run Error")
		md.PlainText(report.Error)
	}

	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeComponents(md *markdown.Markdown, report *model.PageReport) {
	rows := componentRows(report)
	if len(rows) == 0 {
		return
	}
	md.H2("Components")
	table := markdown.TableSet{Header: []string{"Component", "Status", "Detail"}}
	for _, r := range rows {
		table.Rows = append(table.Rows, []string{r.name, r.status, r.detail})
	}
	md.Table(table)
	md.PlainText("")
}

func (w *MarkdownWriter) writeBrokenLinks(md *markdown.Markdown, report *model.PageReport) {
	var rows [][]string
	for _, l := range report.AllLinks() {
		if l.State == model.LinkStateBroken {
			rows = append(rows, []string{strconv.Itoa(l.StatusCode), "`" + l.URL + "`"})
		}
	}
	if len(rows) == 0 {
		return
	}
	md.H2("Broken Links")
	md.Table(markdown.TableSet{
		Header: []string{"Status", "URL"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFontStyles lists the computed font properties probes collected,
// the raw material for design review.
func (w *MarkdownWriter) writeFontStyles(md *markdown.Markdown, report *model.PageReport) {
	var rows [][]string
	add := func(source string, styles []model.FontStyle) {
		for _, s := range styles {
			rows = append(rows, []string{source, s.Element, s.Size, s.Weight, s.Color})
		}
	}

	if report.Navigation != nil {
		add("navigation", report.Navigation.FontStyles)
	}
	if report.Carousels != nil {
		for _, c := range report.Carousels.Carousels {
			add(fmt.Sprintf("carousel %d", c.Index), c.FontStyles)
		}
	}
	if len(rows) == 0 {
		return
	}

	md.H2("Font Styles")
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Element", "Size", "Weight", "Color"},
		Rows:   rows,
	})
	md.PlainText("")
}

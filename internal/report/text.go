package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pagelint/pagelint/internal/model"
)

// TextWriter renders reports as plain text for terminals and .txt files.
type TextWriter struct {
	baseWriter

	// verbose includes per-link detail instead of just the counts.
	verbose bool
}

// TextWriterOption configures a TextWriter.
type TextWriterOption func(*TextWriter)

// WithVerbose includes every checked link in the output, not only the
// broken ones.
func WithVerbose() TextWriterOption {
	return func(w *TextWriter) {
		w.verbose = true
	}
}

// NewTextWriter creates a TextWriter writing to output.
func NewTextWriter(output io.Writer, opts ...TextWriterOption) *TextWriter {
	w := &TextWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write renders the report as plain text.
func (w *TextWriter) Write(report *model.PageReport) (int, error) {
	var buf bytes.Buffer
	summary := report.Summarize()

	rule := strings.Repeat("=", 70)
	fmt.Fprintln(&buf, rule)
	fmt.Fprintln(&buf, "PAGE VALIDATION REPORT")
	fmt.Fprintln(&buf, rule)
	fmt.Fprintf(&buf, "URL:       %s\n", report.URL)
	if report.Locale != "" {
		fmt.Fprintf(&buf, "Locale:    %s\n", report.Locale)
	}
	if report.Title != "" {
		fmt.Fprintf(&buf, "Title:     %s\n", report.Title)
	}
	fmt.Fprintf(&buf, "Scanned:   %s\n", report.DateScanned.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(&buf, "Duration:  %s\n", report.Duration.Round(timeRounding))
	fmt.Fprintf(&buf, "Result:    %s\n", passFail(summary))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUMMARY")
	fmt.Fprintf(&buf, "  Components probed: %d (found %d, errors %d)\n",
		summary.ComponentsProbed, summary.ComponentsFound, summary.ComponentErrors)
	fmt.Fprintf(&buf, "  Links: %d total, %d valid, %d broken, %d not checked, %d skipped\n",
		summary.TotalLinks, summary.ValidLinks, summary.BrokenLinks,
		summary.UncheckedLinks, summary.SkippedLinks)
	fmt.Fprintf(&buf, "  Header: %s  Footer: %s\n",
		foundText(report.HeaderFound), foundText(report.FooterFound))
	fmt.Fprintln(&buf)

	w.writeComponents(&buf, report)
	w.writeLinks(&buf, report)

	if report.Error != "" {
		fmt.Fprintf(&buf, "RUN ERROR: %s\n", report.Error)
	}
	if report.TimedOut {
		fmt.Fprintln(&buf, "RUN TIMED OUT before completing all probes")
	}

	return w.output.Write(buf.Bytes())
}

func (w *TextWriter) writeComponents(buf *bytes.Buffer, report *model.PageReport) {
	fmt.Fprintln(buf, "COMPONENTS")
	for _, c := range componentRows(report) {
		fmt.Fprintf(buf, "  %-18s %s", c.name, c.status)
		if c.detail != "" {
			fmt.Fprintf(buf, "  (%s)", c.detail)
		}
		fmt.Fprintln(buf)
	}
	fmt.Fprintln(buf)
}

func (w *TextWriter) writeLinks(buf *bytes.Buffer, report *model.PageReport) {
	links := report.AllLinks()
	if len(links) == 0 {
		return
	}

	var broken []model.LinkCheck
	for _, l := range links {
		if l.State == model.LinkStateBroken {
			broken = append(broken, l)
		}
	}

	if len(broken) > 0 {
		fmt.Fprintln(buf, "BROKEN LINKS")
		for _, l := range broken {
			fmt.Fprintf(buf, "  [%d] %s\n", l.StatusCode, l.URL)
		}
		fmt.Fprintln(buf)
	}

	if w.verbose {
		fmt.Fprintln(buf, "ALL LINKS")
		for _, l := range links {
			fmt.Fprintf(buf, "  %-11s %3d  %s\n", l.State, l.StatusCode, l.URL)
		}
		fmt.Fprintln(buf)
	}
}

func passFail(s model.Summary) string {
	if s.Passed() {
		return "PASS"
	}
	return "FAIL"
}

func foundText(found bool) string {
	if found {
		return "found"
	}
	return "missing"
}
